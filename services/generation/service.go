package generation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/prompt-router/internal/observability"
	"github.com/upb/prompt-router/services"
	"github.com/upb/prompt-router/utils"
	"go.uber.org/zap"
)

// GenerationRequest is the inbound body of POST /generate
type GenerationRequest struct {
	BasePrompt string `json:"base_prompt" validate:"required"`
	Intent     string `json:"intent" validate:"required"`
}

// Normalize trims surrounding whitespace from both fields
func (r *GenerationRequest) Normalize() {
	r.BasePrompt = strings.TrimSpace(r.BasePrompt)
	r.Intent = strings.TrimSpace(r.Intent)
}

// GenerationResult is the success body of POST /generate
type GenerationResult struct {
	OriginalPrompt string `json:"original_prompt"`
	Intent         string `json:"intent"`
	RefinedPrompt  string `json:"refined_prompt"`
	LLMOutput      string `json:"llm_output"`
	Success        bool   `json:"success"`

	// Provider is logged but not part of the response body
	Provider string `json:"-"`
}

// Refiner turns a base prompt into the intent-specific prompt
type Refiner interface {
	RefineMatched(basePrompt, intent string) (string, bool)
}

// Router sends a prompt to one provider
type Router interface {
	Route(ctx context.Context, prompt string) (string, string, error)
}

// Service orchestrates validate -> refine -> route for a single request
type Service struct {
	refiner Refiner
	router  Router
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewService creates a new generation service
func NewService(refiner Refiner, router Router, metrics *observability.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		refiner: refiner,
		router:  router,
		metrics: metrics,
		logger:  logger,
	}
}

// Generate validates req, refines the prompt and routes it. Validation
// failures return services.ErrMissingFields; router and provider failures
// are returned unchanged.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	req.Normalize()
	if err := utils.ValidateStruct(req); err != nil {
		if !utils.IsValidationError(err) {
			return nil, services.WrapError(services.ErrorTypeInternal, "validate generation request", err)
		}
		fields := utils.GetValidationFields(err)
		s.logger.Warn("generation request rejected", zap.Any("fields", fields))
		return nil, services.ErrMissingFields.WithDetail("fields", fields)
	}

	generationID := uuid.New().String()
	start := time.Now()

	refined, matched := s.refiner.RefineMatched(req.BasePrompt, req.Intent)
	s.metrics.ObserveRefinement(req.Intent, matched)

	s.logger.Info("generation started",
		zap.String("generation_id", generationID),
		zap.String("intent", req.Intent),
		zap.Bool("template_matched", matched),
		zap.Int("prompt_length", len(req.BasePrompt)),
	)

	output, provider, err := s.router.Route(ctx, refined)
	if err != nil {
		s.metrics.ObserveGeneration(provider, observability.StatusError)
		s.logger.Error("generation failed",
			zap.String("generation_id", generationID),
			zap.String("provider", provider),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.ObserveGeneration(provider, observability.StatusSuccess)
	s.logger.Info("generation completed",
		zap.String("generation_id", generationID),
		zap.String("provider", provider),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	return &GenerationResult{
		OriginalPrompt: req.BasePrompt,
		Intent:         req.Intent,
		RefinedPrompt:  refined,
		LLMOutput:      output,
		Success:        true,
		Provider:       provider,
	}, nil
}
