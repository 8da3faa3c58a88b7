package claude

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/prompt-router/services/providers"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	// Name is the registry name of this provider
	Name = "claude"

	model     = "claude-3-opus-20240229"
	maxTokens = 500
)

// ClaudeAdapter implements the Provider interface for the Anthropic messages API
type ClaudeAdapter struct {
	config providers.ProviderConfig
	client *http.Client
}

// NewClaudeAdapter creates a new Claude adapter
func NewClaudeAdapter(config providers.ProviderConfig) *ClaudeAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &ClaudeAdapter{
		config: config,
		client: config.Client(),
	}
}

// Name returns the provider name
func (a *ClaudeAdapter) Name() string {
	return Name
}

// Invoke sends a single user message and returns content[0].text
func (a *ClaudeAdapter) Invoke(ctx context.Context, prompt string) (string, error) {
	var resp MessagesResponse
	err := providers.DoJSON(ctx, a.client, providers.JSONCall{
		Provider: Name,
		URL:      a.config.BaseURL + "/v1/messages",
		Headers: map[string]string{
			"x-api-key":         a.config.APIKey,
			"anthropic-version": anthropicVersion,
		},
		Payload: MessagesRequest{
			Model:     model,
			MaxTokens: maxTokens,
			Messages:  []Message{{Role: "user", Content: prompt}},
		},
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Content) == 0 {
		return "", providers.MalformedResponse(Name, "content[0]", 200)
	}
	if text := resp.Content[0].Text; text != nil && *text != "" {
		return *text, nil
	}
	return "", providers.MalformedResponse(Name, "content[0].text", 200)
}

type MessagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type MessagesResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

type ContentBlock struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}
