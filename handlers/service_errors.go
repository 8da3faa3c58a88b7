package handlers

import (
	"net/http"

	"github.com/upb/prompt-router/services"
	"github.com/upb/prompt-router/services/providers"
	"github.com/upb/prompt-router/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain and provider errors to HTTP responses.
// Every branch writes {"error": "<description>"}.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var status int
	switch {
	case services.IsValidationError(err):
		logger.Debug("request rejected",
			zap.String("reason", err.Error()),
			zap.Any("details", services.GetErrorDetails(err)))
		if err := utils.WriteBadRequest(w, err.Error()); err != nil {
			logger.Error("failed to write bad request response", zap.Error(err))
		}
		return

	case services.IsConfigurationError(err):
		logger.Error("configuration error", zap.Error(err))
		status = http.StatusInternalServerError

	case providers.IsProviderError(err):
		// provider descriptions are passed through to the caller
		status = http.StatusInternalServerError

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		if err := utils.WriteInternalServerError(w, "An internal error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
		return

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		status = http.StatusInternalServerError
	}

	if err := utils.WriteError(w, status, err.Error()); err != nil {
		logger.Error("failed to write error response", zap.Int("status", status), zap.Error(err))
	}
}
