package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxErrorBody caps how much of a non-2xx body is echoed into an error message
const maxErrorBody = 512

// JSONCall describes one outbound JSON POST
type JSONCall struct {
	Provider string
	URL      string
	Query    url.Values
	Headers  map[string]string
	Payload  interface{}
}

// DoJSON posts call.Payload as JSON and decodes a 2xx response body into out.
// Every failure is returned as *ProviderError; nothing is retried.
func DoJSON(ctx context.Context, client *http.Client, call JSONCall, out interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}

	reqBody, err := json.Marshal(call.Payload)
	if err != nil {
		return NewProviderError(call.Provider, CodeMarshal, "failed to marshal request", 0, err)
	}

	endpoint := call.URL
	if len(call.Query) > 0 {
		endpoint += "?" + call.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return NewProviderError(call.Provider, CodeRequest, "failed to create request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range call.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return NewProviderError(call.Provider, CodeHTTP, "HTTP request failed", 0, stripQuery(err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return NewProviderError(call.Provider, CodeRead, "failed to read response", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body := respBody
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return NewProviderError(call.Provider, CodeStatus,
			fmt.Sprintf("provider returned status %d: %s", httpResp.StatusCode, body),
			httpResp.StatusCode, nil)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return NewProviderError(call.Provider, CodeUnmarshal, "failed to unmarshal response", httpResp.StatusCode, err)
	}

	return nil
}

// stripQuery drops the query string, which may carry an API key, from a *url.Error.
func stripQuery(err error) error {
	urlErr, ok := err.(*url.Error)
	if !ok {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
	}
	return &url.Error{Op: urlErr.Op, URL: "", Err: urlErr.Err}
}
