package routing

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/upb/prompt-router/internal/observability"
	"github.com/upb/prompt-router/services"
	"github.com/upb/prompt-router/services/providers"
	"go.uber.org/zap"
)

// RandomSource picks an index in [0, n)
type RandomSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// ProviderSet is the read side of the provider registry used for routing
type ProviderSet interface {
	Available() []string
	GetProvider(name string) (providers.Provider, error)
}

// Select picks one name uniformly at random. It returns
// services.ErrNoProviderAvailable when names is empty.
func Select(names []string, rng RandomSource) (string, error) {
	if len(names) == 0 {
		return "", services.ErrNoProviderAvailable
	}
	if rng == nil {
		rng = globalRand{}
	}
	return names[rng.IntN(len(names))], nil
}

// Option configures a Router
type Option func(*Router)

// WithRandomSource replaces the default math/rand/v2 source
func WithRandomSource(rng RandomSource) Option {
	return func(r *Router) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithMetrics records provider call counts and latency
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// Router sends each prompt to exactly one provider chosen uniformly at
// random from the configured set. Failures are returned as-is; there is
// no retry and no failover.
type Router struct {
	providers ProviderSet
	logger    *zap.Logger

	mu      sync.Mutex
	rng     RandomSource
	metrics *observability.Metrics
}

// NewRouter creates a new router over set
func NewRouter(set ProviderSet, logger *zap.Logger, opts ...Option) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		providers: set,
		logger:    logger,
		rng:       globalRand{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route invokes one randomly selected provider with prompt and returns the
// answer text together with the provider name.
func (r *Router) Route(ctx context.Context, prompt string) (string, string, error) {
	name, err := r.pick()
	if err != nil {
		r.logger.Warn("no provider available for routing")
		return "", "", err
	}

	provider, err := r.providers.GetProvider(name)
	if err != nil {
		return "", name, services.WrapError(services.ErrorTypeInternal, "selected provider missing from registry", err)
	}

	r.logger.Debug("routing prompt", zap.String("provider", name), zap.Int("prompt_length", len(prompt)))

	start := time.Now()
	text, err := provider.Invoke(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		r.metrics.ObserveProviderCall(name, observability.StatusError, elapsed)
		r.logger.Error("provider call failed",
			zap.String("provider", name),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return "", name, err
	}

	r.metrics.ObserveProviderCall(name, observability.StatusSuccess, elapsed)
	r.logger.Info("provider call succeeded",
		zap.String("provider", name),
		zap.Duration("duration", elapsed),
		zap.Int("response_length", len(text)),
	)
	return text, name, nil
}

// Available lists the providers the router can currently choose from
func (r *Router) Available() []string {
	return r.providers.Available()
}

func (r *Router) pick() (string, error) {
	names := r.providers.Available()

	r.mu.Lock()
	defer r.mu.Unlock()
	return Select(names, r.rng)
}
