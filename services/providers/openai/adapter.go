package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/prompt-router/services/providers"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	// Name is the registry name of this provider
	Name = "openai"

	model       = "gpt-3.5-turbo"
	temperature = 0.7
)

// OpenAIAdapter implements the Provider interface for OpenAI chat completions
type OpenAIAdapter struct {
	config providers.ProviderConfig
	client *http.Client
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(config providers.ProviderConfig) *OpenAIAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &OpenAIAdapter{
		config: config,
		client: config.Client(),
	}
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return Name
}

// Invoke performs a single chat completion and returns choices[0].message.content
func (a *OpenAIAdapter) Invoke(ctx context.Context, prompt string) (string, error) {
	var resp OpenAIChatResponse
	err := providers.DoJSON(ctx, a.client, providers.JSONCall{
		Provider: Name,
		URL:      a.config.BaseURL + "/chat/completions",
		Headers:  map[string]string{"Authorization": "Bearer " + a.config.APIKey},
		Payload:  buildOpenAIRequest(prompt),
	}, &resp)
	if err != nil {
		return "", err
	}

	return extractContent(&resp)
}

func buildOpenAIRequest(prompt string) *OpenAIChatRequest {
	return &OpenAIChatRequest{
		Model:       model,
		Messages:    []OpenAIMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}
}

func extractContent(resp *OpenAIChatResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", providers.MalformedResponse(Name, "choices[0]", 200)
	}
	content := resp.Choices[0].Message.Content
	if content == nil || *content == "" {
		return "", providers.MalformedResponse(Name, "choices[0].message.content", 200)
	}
	return *content, nil
}

// OpenAI-specific request/response types

type OpenAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIChatResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
}

type OpenAIChoice struct {
	Index        int                   `json:"index"`
	Message      OpenAIResponseMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

type OpenAIResponseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}
