package gemini

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/upb/prompt-router/services/providers"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	generatePath   = "/v1beta/models/gemini-pro:generateContent"

	// Name is the registry name of this provider
	Name = "gemini"
)

// GeminiAdapter implements the Provider interface for the Gemini generateContent API.
// The API key travels as the "key" query parameter.
type GeminiAdapter struct {
	config providers.ProviderConfig
	client *http.Client
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(config providers.ProviderConfig) *GeminiAdapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &GeminiAdapter{
		config: config,
		client: config.Client(),
	}
}

// Name returns the provider name
func (a *GeminiAdapter) Name() string {
	return Name
}

// Invoke calls generateContent and returns candidates[0].content.parts[0].text
func (a *GeminiAdapter) Invoke(ctx context.Context, prompt string) (string, error) {
	var resp GenerateContentResponse
	err := providers.DoJSON(ctx, a.client, providers.JSONCall{
		Provider: Name,
		URL:      a.config.BaseURL + generatePath,
		Query:    url.Values{"key": {a.config.APIKey}},
		Payload: GenerateContentRequest{
			Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		},
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", providers.MalformedResponse(Name, "candidates[0]", 200)
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", providers.MalformedResponse(Name, "candidates[0].content.parts[0]", 200)
	}
	if parts[0].Text == nil || *parts[0].Text == "" {
		return "", providers.MalformedResponse(Name, "candidates[0].content.parts[0].text", 200)
	}

	return *parts[0].Text, nil
}

type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content struct {
		Parts []struct {
			Text *string `json:"text"`
		} `json:"parts"`
		Role string `json:"role"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}
