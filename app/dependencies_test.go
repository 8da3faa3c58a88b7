package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/prompt-router/config"
	"github.com/upb/prompt-router/services"
	"github.com/upb/prompt-router/services/generation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		Version:     "test",
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 5000,
		},
		Providers: config.ProvidersConfig{
			OpenAI: config.ProviderConfig{Timeout: 5 * time.Second},
			Gemini: config.ProviderConfig{Timeout: 5 * time.Second},
			Claude: config.ProviderConfig{Timeout: 5 * time.Second},
			Cohere: config.ProviderConfig{Timeout: 5 * time.Second},
		},
		Observability: config.ObservabilityConfig{
			LogLevel:       "error",
			LogFormat:      "json",
			MetricsEnabled: true,
		},
	}
}

func TestNewDependencies(t *testing.T) {
	t.Run("no providers configured", func(t *testing.T) {
		ctx := context.Background()
		deps, err := NewDependencies(ctx, testConfig(t), zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, deps)

		assert.NotNil(t, deps.Templates)
		assert.NotNil(t, deps.Router)
		assert.NotNil(t, deps.Generation)
		assert.NotNil(t, deps.Metrics)
		assert.NotNil(t, deps.Metrics.Registry())
		assert.Equal(t, 0, deps.ProviderRegistry.Count())

		_, err = deps.Generation.Generate(ctx, generation.GenerationRequest{BasePrompt: "a cat", Intent: "research"})
		assert.ErrorIs(t, err, services.ErrNoProviderAvailable)

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("only keyed providers are registered", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Providers.Gemini.APIKey = "g-key"
		cfg.Providers.Claude.APIKey = "c-key"

		deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"claude", "gemini"}, deps.ProviderRegistry.Available())
	})

	t.Run("metrics disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Observability.MetricsEnabled = false

		deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Nil(t, deps.Metrics)
		assert.Nil(t, deps.Metrics.Registry())
	})
}

func TestNewDependencies_GeneratesThroughConfiguredAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer co-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"generated"}`))
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Providers.Cohere.APIKey = "co-key"
	cfg.Providers.Cohere.BaseURL = server.URL

	deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	result, err := deps.Generation.Generate(context.Background(), generation.GenerationRequest{
		BasePrompt: "binary search",
		Intent:     "code_generation",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", result.LLMOutput)
	assert.Equal(t, "cohere", result.Provider)
}

func TestCredentials(t *testing.T) {
	creds := Credentials(config.ProvidersConfig{
		OpenAI: config.ProviderConfig{APIKey: "sk"},
	})

	require.Len(t, creds, 4)
	configured := 0
	for _, c := range creds {
		if c.Configured() {
			configured++
			assert.Equal(t, "openai", c.Provider)
		}
	}
	assert.Equal(t, 1, configured)
}

func TestNewProviderRegistryBuilder_Known(t *testing.T) {
	assert.Equal(t, []string{"claude", "cohere", "gemini", "openai"},
		NewProviderRegistryBuilder(config.ProvidersConfig{}).Known())
}

func TestNewDependencies_WarnsWithKnownProviders(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	_, err := NewDependencies(context.Background(), testConfig(t), zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterField(zap.Strings("known_providers", []string{"claude", "cohere", "gemini", "openai"})).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}
