package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/upb/prompt-router/config"
	"github.com/upb/prompt-router/internal/observability"
	"github.com/upb/prompt-router/services/generation"
	"github.com/upb/prompt-router/services/prompt"
	"github.com/upb/prompt-router/services/providers"
	"github.com/upb/prompt-router/services/providers/claude"
	"github.com/upb/prompt-router/services/providers/cohere"
	"github.com/upb/prompt-router/services/providers/gemini"
	"github.com/upb/prompt-router/services/providers/openai"
	"github.com/upb/prompt-router/services/routing"
	"github.com/upb/prompt-router/services/templates"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Metrics is nil when metrics are disabled
	Metrics *observability.Metrics

	// Domain
	Templates        *templates.Registry
	ProviderRegistry *providers.Registry
	Router           *routing.Router
	Generation       *generation.Service

	routerOpts []routing.Option
}

// Option customizes dependency construction
type Option func(*Dependencies)

// WithRouterOptions passes extra options to the router (e.g. a seeded random source)
func WithRouterOptions(opts ...routing.Option) Option {
	return func(d *Dependencies) {
		d.routerOpts = append(d.routerOpts, opts...)
	}
}

// NewDependencies creates and wires up all application dependencies.
// Zero configured providers is not an error: the service starts and every
// generate request fails with a configuration error.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}
	for _, opt := range opts {
		opt(deps)
	}

	// Initialize metrics
	if err := deps.initMetrics(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Load intent templates
	deps.Templates = templates.Default()
	logger.Info("intent templates loaded", zap.Int("count", deps.Templates.Len()))

	// Initialize provider registry
	if err := deps.initProviders(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	// Initialize router and generation service
	deps.initServices()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initMetrics creates a dedicated Prometheus registry when metrics are enabled
func (d *Dependencies) initMetrics(cfg *config.Config) error {
	if !cfg.Observability.MetricsEnabled {
		d.Logger.Info("metrics disabled")
		return nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return err
	}

	d.Metrics = metrics
	return nil
}

// initProviders builds an adapter for every provider that has an API key
func (d *Dependencies) initProviders(cfg *config.Config) error {
	builder := NewProviderRegistryBuilder(cfg.Providers)

	registry, err := builder.Build(Credentials(cfg.Providers))
	if err != nil {
		return err
	}

	for _, name := range registry.Available() {
		d.Logger.Info("registered provider", zap.String("provider", name))
	}
	if registry.Count() == 0 {
		d.Logger.Warn("no LLM providers configured; generate requests will fail until an API key is set",
			zap.Strings("known_providers", builder.Known()))
	}

	d.ProviderRegistry = registry
	return nil
}

func (d *Dependencies) initServices() {
	routerOpts := append([]routing.Option{routing.WithMetrics(d.Metrics)}, d.routerOpts...)
	d.Router = routing.NewRouter(d.ProviderRegistry, d.Logger.Named("router"), routerOpts...)

	refiner := prompt.NewRefiner(d.Templates)
	d.Generation = generation.NewService(refiner, d.Router, d.Metrics, d.Logger.Named("generation"))
}

// Credentials lists one credential per known provider, empty when no key is set
func Credentials(cfg config.ProvidersConfig) []providers.Credential {
	return []providers.Credential{
		{Provider: openai.Name, Secret: cfg.OpenAI.APIKey},
		{Provider: gemini.Name, Secret: cfg.Gemini.APIKey},
		{Provider: claude.Name, Secret: cfg.Claude.APIKey},
		{Provider: cohere.Name, Secret: cfg.Cohere.APIKey},
	}
}

// NewProviderRegistryBuilder returns a builder that knows the four adapters
func NewProviderRegistryBuilder(cfg config.ProvidersConfig) *providers.RegistryBuilder {
	adapterConfig := func(pc config.ProviderConfig, secret string) providers.ProviderConfig {
		return providers.ProviderConfig{
			APIKey:  secret,
			BaseURL: pc.BaseURL,
			Timeout: pc.Timeout,
		}
	}

	return providers.NewRegistryBuilder().
		WithProviderBuilder(openai.Name, func(secret string) (providers.Provider, error) {
			return openai.NewOpenAIAdapter(adapterConfig(cfg.OpenAI, secret)), nil
		}).
		WithProviderBuilder(gemini.Name, func(secret string) (providers.Provider, error) {
			return gemini.NewGeminiAdapter(adapterConfig(cfg.Gemini, secret)), nil
		}).
		WithProviderBuilder(claude.Name, func(secret string) (providers.Provider, error) {
			return claude.NewClaudeAdapter(adapterConfig(cfg.Claude, secret)), nil
		}).
		WithProviderBuilder(cohere.Name, func(secret string) (providers.Provider, error) {
			return cohere.NewCohereAdapter(adapterConfig(cfg.Cohere, secret)), nil
		})
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	if d.Logger != nil {
		d.Logger.Info("shutting down dependencies")
		_ = d.Logger.Sync()
	}
	return nil
}
