package handlers

import (
	"net/http"

	"github.com/upb/prompt-router/app"
	"github.com/upb/prompt-router/services/templates"
	"github.com/upb/prompt-router/utils"
)

// StatusResponse is the body of GET /api/v1/status
type StatusResponse struct {
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Providers   []string `json:"providers"`
}

// StatusHandler returns application status information. Only provider
// names are reported.
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		available := []string{}
		if deps.Router != nil {
			available = append(available, deps.Router.Available()...)
		}

		_ = utils.WriteJSON(w, http.StatusOK, StatusResponse{
			Version:     deps.Config.Version,
			Environment: deps.Config.Environment,
			Providers:   available,
		})
	}
}

// IntentsHandler lists the supported intents in catalog order
func IntentsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		intents := []templates.IntentTemplate{}
		if deps.Templates != nil {
			intents = append(intents, deps.Templates.Intents()...)
		}
		_ = utils.WriteJSON(w, http.StatusOK, intents)
	}
}
