package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name     string
	response string
	err      error
	calls    int
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name, response: "response from " + name}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestCredential_Configured(t *testing.T) {
	assert.True(t, Credential{Provider: "openai", Secret: "sk-1"}.Configured())
	assert.False(t, Credential{Provider: "openai"}.Configured())
}

func TestProviderConfig_Client(t *testing.T) {
	t.Run("default timeout", func(t *testing.T) {
		client := ProviderConfig{}.Client()
		assert.Equal(t, DefaultTimeout, client.Timeout)
	})

	t.Run("custom timeout", func(t *testing.T) {
		client := ProviderConfig{Timeout: 5 * time.Second}.Client()
		assert.Equal(t, 5*time.Second, client.Timeout)
	})

	t.Run("explicit client wins", func(t *testing.T) {
		custom := &http.Client{Timeout: time.Second}
		client := ProviderConfig{Timeout: 5 * time.Second, HTTPClient: custom}.Client()
		assert.Same(t, custom, client)
	})
}

func TestProviderError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewProviderError("cohere", CodeHTTP, "HTTP request failed", 0, cause)

		assert.Equal(t, "cohere: HTTP request failed: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewProviderError("gemini", CodeStatus, "provider returned status 500: oops", 500, nil)

		assert.Equal(t, "gemini: provider returned status 500: oops", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("malformed response", func(t *testing.T) {
		err := MalformedResponse("claude", "content[0].text", 200)

		assert.Equal(t, CodeMalformedResponse, err.Code)
		assert.Equal(t, 200, err.StatusCode)
		assert.Contains(t, err.Error(), "content[0].text")
	})

	t.Run("detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("route: %w", NewProviderError("openai", CodeStatus, "bad", 401, nil))

		assert.True(t, IsProviderError(err))
		provErr, ok := AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, "openai", provErr.Provider)
		assert.Equal(t, 401, provErr.StatusCode)

		assert.False(t, IsProviderError(errors.New("plain")))
	})
}
