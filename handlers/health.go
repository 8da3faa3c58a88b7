package handlers

import (
	"net/http"

	"github.com/upb/prompt-router/app"
	"github.com/upb/prompt-router/utils"
)

// HealthCheck handles GET /health. It has no dependencies and always succeeds.
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// ReadinessResponse is the body of GET /health/ready
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ReadinessCheck handles GET /health/ready. The service is ready when at
// least one provider is configured.
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := ReadinessResponse{
			Status: "ready",
			Checks: map[string]string{"providers": "configured"},
		}
		status := http.StatusOK

		if deps.Router == nil || len(deps.Router.Available()) == 0 {
			response.Status = "not_ready"
			response.Checks["providers"] = "none_configured"
			status = http.StatusServiceUnavailable
		}

		_ = utils.WriteJSON(w, status, response)
	}
}
