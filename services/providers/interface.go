package providers

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Provider represents one LLM backend behind a uniform prompt -> text call
type Provider interface {
	// Name returns the provider name (e.g., "openai", "gemini", "claude", "cohere")
	Name() string

	// Invoke sends prompt to the backend and returns the answer text.
	// Any transport, status or shape failure is returned as *ProviderError.
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Credential is the secret configured for one provider. An empty Secret
// means the provider is disabled.
type Credential struct {
	Provider string
	Secret   string
}

// Configured reports whether the credential carries a secret
func (c Credential) Configured() bool {
	return c.Secret != ""
}

// ProviderConfig holds common configuration for provider adapters
type ProviderConfig struct {
	// APIKey for authentication
	APIKey string

	// BaseURL for the API (optional override)
	BaseURL string

	// Timeout bounds a single outbound call
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout (tests)
	HTTPClient *http.Client
}

// DefaultTimeout is used when ProviderConfig.Timeout is zero
const DefaultTimeout = 60 * time.Second

// Client returns the HTTP client an adapter should use
func (c ProviderConfig) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Error codes carried by ProviderError
const (
	CodeMarshal           = "MARSHAL_ERROR"
	CodeRequest           = "REQUEST_ERROR"
	CodeHTTP              = "HTTP_ERROR"
	CodeRead              = "READ_ERROR"
	CodeStatus            = "STATUS_ERROR"
	CodeUnmarshal         = "UNMARSHAL_ERROR"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
)

// ProviderError represents a failed call to a provider
type ProviderError struct {
	// Provider that generated the error
	Provider string

	// Code is the error code
	Code string

	// Message is the error message
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	msg := e.Provider + ": " + e.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, statusCode int, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// MalformedResponse reports a response that lacks the expected answer field
func MalformedResponse(provider, field string, statusCode int) *ProviderError {
	return NewProviderError(provider, CodeMalformedResponse, "unexpected response shape: missing "+field, statusCode, nil)
}

// IsProviderError checks if an error is (or wraps) a ProviderError
func IsProviderError(err error) bool {
	var provErr *ProviderError
	return errors.As(err, &provErr)
}

// AsProviderError extracts a ProviderError from err
func AsProviderError(err error) (*ProviderError, bool) {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr, true
	}
	return nil, false
}
