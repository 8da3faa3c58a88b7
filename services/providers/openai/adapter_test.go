package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/upb/prompt-router/services/providers"
)

func TestNewOpenAIAdapter(t *testing.T) {
	adapter := NewOpenAIAdapter(providers.ProviderConfig{APIKey: "test-key"})

	if adapter == nil {
		t.Fatal("NewOpenAIAdapter() returned nil")
	}

	if adapter.Name() != "openai" {
		t.Errorf("Name() = %s, want openai", adapter.Name())
	}

	if adapter.config.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", adapter.config.BaseURL, defaultBaseURL)
	}

	if adapter.client.Timeout != providers.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", adapter.client.Timeout, providers.DefaultTimeout)
	}
}

func TestOpenAIAdapter_Invoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}

		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}

		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want %q", auth, "Bearer test-key")
		}

		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}

		if req["model"] != "gpt-3.5-turbo" {
			t.Errorf("model = %v, want gpt-3.5-turbo", req["model"])
		}
		if req["temperature"] != 0.7 {
			t.Errorf("temperature = %v, want 0.7", req["temperature"])
		}
		messages := req["messages"].([]interface{})
		if len(messages) != 1 {
			t.Fatalf("len(messages) = %d, want 1", len(messages))
		}
		msg := messages[0].(map[string]interface{})
		if msg["role"] != "user" || msg["content"] != "Hello" {
			t.Errorf("message = %v, want user/Hello", msg)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-test123",
			"object": "chat.completion",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "This is a test response"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(providers.ProviderConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/",
		Timeout: 5 * time.Second,
	})

	text, err := adapter.Invoke(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if text != "This is a test response" {
		t.Errorf("Invoke() = %q, want %q", text, "This is a test response")
	}
}

func TestOpenAIAdapter_Invoke_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices": []}`},
		{name: "choices missing", body: `{"id": "x"}`},
		{name: "null content", body: `{"choices": [{"message": {"role": "assistant", "content": null}}]}`},
		{name: "content missing", body: `{"choices": [{"message": {"role": "assistant"}}]}`},
		{name: "empty content", body: `{"choices": [{"message": {"content": ""}}]}`},
		{name: "wrong type", body: `{"choices": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := NewOpenAIAdapter(providers.ProviderConfig{APIKey: "k", BaseURL: server.URL})

			text, err := adapter.Invoke(context.Background(), "test")
			if err == nil {
				t.Fatalf("Expected error, got text %q", text)
			}
			if text != "" {
				t.Errorf("text = %q, want empty on error", text)
			}

			if _, ok := providers.AsProviderError(err); !ok {
				t.Fatalf("Expected ProviderError, got %T", err)
			}
		})
	}
}

func TestOpenAIAdapter_Invoke_Error(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(providers.ProviderConfig{APIKey: "invalid-key", BaseURL: server.URL})

	_, err := adapter.Invoke(context.Background(), "test")
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	provErr, ok := providers.AsProviderError(err)
	if !ok {
		t.Fatalf("Expected ProviderError, got %T", err)
	}

	if provErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", provErr.StatusCode, http.StatusUnauthorized)
	}

	if provErr.Provider != "openai" {
		t.Errorf("Provider = %s, want openai", provErr.Provider)
	}

	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry)", attempts)
	}
}

func BenchmarkInvoke(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "response"}}]}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(providers.ProviderConfig{APIKey: "test-key", BaseURL: server.URL})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = adapter.Invoke(ctx, "test")
	}
}
