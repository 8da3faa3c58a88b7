package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultProviderTimeout applies when <PROVIDER>_TIMEOUT is unset or zero
	DefaultProviderTimeout = 60 * time.Second

	// DefaultRequestTimeout applies when SERVER_WRITE_TIMEOUT is zero
	DefaultRequestTimeout = 90 * time.Second
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Providers     ProvidersConfig
	Observability ObservabilityConfig
	Environment   string
	Version       string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// ProvidersConfig holds the settings of the four LLM backends.
// A provider with an empty APIKey is disabled.
type ProvidersConfig struct {
	OpenAI ProviderConfig
	Gemini ProviderConfig
	Claude ProviderConfig
	Cohere ProviderConfig
}

// ProviderConfig holds configuration for a single provider
type ProviderConfig struct {
	APIKey  string
	BaseURL string // empty means the provider's public endpoint
	Timeout time.Duration
}

// ObservabilityConfig holds monitoring and logging configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or console
	MetricsEnabled bool
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Version:     getEnv("APP_VERSION", "0.1.0"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", DefaultRequestTimeout),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Providers: ProvidersConfig{
			OpenAI: loadProviderConfig("OPENAI"),
			Gemini: loadProviderConfig("GEMINI"),
			Claude: loadProviderConfig("CLAUDE"),
			Cohere: loadProviderConfig("COHERE"),
		},
	}
	cfg.Observability = ObservabilityConfig{
		LogLevel:       logLevel(),
		LogFormat:      getEnv("LOG_FORMAT", cfg.defaultLogFormat()),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set.
// Having no provider configured is not an error; requests fail instead.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	requestTimeout := c.Server.RequestTimeout()
	for _, name := range providerNames {
		timeout := c.Providers.ByName()[name].Timeout
		if timeout < 0 {
			return fmt.Errorf("%s timeout must not be negative", name)
		}
		if timeout == 0 {
			timeout = DefaultProviderTimeout
		}
		// the provider call must give up before the request is cut off
		if timeout >= requestTimeout {
			return fmt.Errorf("%s timeout %s must be shorter than the server write timeout %s",
				name, timeout, requestTimeout)
		}
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	if _, err := zapcore.ParseLevel(strings.ToLower(c.Observability.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Observability.LogLevel, err)
	}

	switch c.Observability.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Observability.LogFormat)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// defaultLogFormat is console in development and json everywhere else
func (c *Config) defaultLogFormat() string {
	if c.IsDevelopment() {
		return "console"
	}
	return "json"
}

var providerNames = []string{"claude", "cohere", "gemini", "openai"}

// ByName returns the provider settings keyed by provider name
func (p ProvidersConfig) ByName() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		"openai": p.OpenAI,
		"gemini": p.Gemini,
		"claude": p.Claude,
		"cohere": p.Cohere,
	}
}

// Configured returns the names of providers that have an API key
func (p ProvidersConfig) Configured() []string {
	var names []string
	for _, name := range providerNames {
		if p.ByName()[name].APIKey != "" {
			names = append(names, name)
		}
	}
	return names
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RequestTimeout bounds a whole request. It is the write timeout, or
// DefaultRequestTimeout when that is unset.
func (c *ServerConfig) RequestTimeout() time.Duration {
	if c.WriteTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.WriteTimeout
}

// Helper functions

func loadProviderConfig(prefix string) ProviderConfig {
	return ProviderConfig{
		APIKey:  strings.TrimSpace(os.Getenv(prefix + "_API_KEY")),
		BaseURL: getEnv(prefix+"_BASE_URL", ""),
		Timeout: getEnvAsDuration(prefix+"_TIMEOUT", DefaultProviderTimeout),
	}
}

// logLevel honors LOG_LEVEL first, then DEBUG=true as a shortcut for debug
func logLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	if getEnvAsBool("DEBUG", false) {
		return "debug"
	}
	return "info"
}

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 5000)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 5000
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
