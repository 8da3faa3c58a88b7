package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/upb/prompt-router/app"
	"github.com/upb/prompt-router/middleware"
	"github.com/upb/prompt-router/services"
	"github.com/upb/prompt-router/services/generation"
	"github.com/upb/prompt-router/utils"
	"go.uber.org/zap"
)

// maxRequestBody bounds the size of a generate request body
const maxRequestBody = 1 << 20

// GenerateHandler handles POST /generate
func GenerateHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context(), deps.Logger)

		var req generation.GenerationRequest
		if err := decodeGenerationRequest(r, w, &req); err != nil {
			logger.Warn("invalid generate request body", zap.Error(err))
			HandleServiceError(w, services.ErrInvalidBody, logger)
			return
		}

		result, err := deps.Generation.Generate(r.Context(), req)
		if err != nil {
			HandleServiceError(w, err, logger)
			return
		}

		if err := utils.WriteJSON(w, http.StatusOK, result); err != nil {
			logger.Error("failed to write generate response", zap.Error(err))
		}
	}
}

// decodeGenerationRequest reads a JSON object into req. An empty body decodes
// to an empty request so that it is reported as missing fields.
func decodeGenerationRequest(r *http.Request, w http.ResponseWriter, req *generation.GenerationRequest) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
