package cohere

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/prompt-router/services/providers"
)

const (
	defaultBaseURL = "https://api.cohere.ai"

	// Name is the registry name of this provider
	Name = "cohere"

	model = "command-r-plus"
)

// CohereAdapter implements the Provider interface for the Cohere chat API
type CohereAdapter struct {
	config providers.ProviderConfig
	client *http.Client
}

// NewCohereAdapter creates a new Cohere adapter
func NewCohereAdapter(config providers.ProviderConfig) *CohereAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &CohereAdapter{
		config: config,
		client: config.Client(),
	}
}

// Name returns the provider name
func (a *CohereAdapter) Name() string {
	return Name
}

// Invoke calls /v1/chat and returns the top-level text field
func (a *CohereAdapter) Invoke(ctx context.Context, prompt string) (string, error) {
	var resp ChatResponse
	err := providers.DoJSON(ctx, a.client, providers.JSONCall{
		Provider: Name,
		URL:      a.config.BaseURL + "/v1/chat",
		Headers:  map[string]string{"Authorization": "Bearer " + a.config.APIKey},
		Payload:  ChatRequest{Message: prompt, Model: model},
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Text == nil || *resp.Text == "" {
		return "", providers.MalformedResponse(Name, "text", 200)
	}
	return *resp.Text, nil
}

type ChatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model"`
}

type ChatResponse struct {
	ResponseID   string  `json:"response_id"`
	Text         *string `json:"text"`
	GenerationID string  `json:"generation_id"`
	FinishReason string  `json:"finish_reason"`
}
