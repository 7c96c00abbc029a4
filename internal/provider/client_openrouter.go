package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ideacouncil/internal/logging"
)

// OpenRouterClient implements Caller over the OpenRouter chat-completions
// API. OpenRouter fronts multiple LLM providers behind a single endpoint,
// so the model is chosen per call and one client serves every council seat.
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	siteURL    string // Optional: Your site URL for rankings
	siteName   string // Optional: Your app name for rankings
}

// OpenRouterConfig holds configuration for the OpenRouter client.
type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	SiteURL  string
	SiteName string
}

// DefaultOpenRouterConfig returns sensible defaults. The timeout is the
// per-call ceiling applied when the caller's context carries no deadline;
// it is what turns an unresponsive model into a per-member error instead
// of a stalled stage.
func DefaultOpenRouterConfig(apiKey string) OpenRouterConfig {
	return OpenRouterConfig{
		APIKey:   apiKey,
		BaseURL:  "https://openrouter.ai/api/v1",
		Timeout:  120 * time.Second,
		SiteName: "ideacouncil",
	}
}

// NewOpenRouterClient creates a new OpenRouter client with default config.
func NewOpenRouterClient(apiKey string) *OpenRouterClient {
	return NewOpenRouterClientWithConfig(DefaultOpenRouterConfig(apiKey))
}

// NewOpenRouterClientWithConfig creates a new OpenRouter client with custom config.
func NewOpenRouterClientWithConfig(config OpenRouterConfig) *OpenRouterClient {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenRouterClient{
		apiKey:   config.APIKey,
		baseURL:  baseURL,
		siteURL:  config.SiteURL,
		siteName: config.SiteName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// Call sends one chat-completion request to the named model. It issues
// exactly one attempt; rate limits and quota failures come back as typed
// errors for the caller to record, never to retry here.
func (c *OpenRouterClient) Call(ctx context.Context, model string, messages []Message, maxTokens int, temperature float64) (string, error) {
	// Auto-apply timeout if context has no deadline (centralized timeout handling)
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	if c.apiKey == "" {
		return "", &CallError{Kind: KindGeneric, Msg: "API key not configured"}
	}

	startTime := time.Now()
	logging.APIDebug("[OpenRouter] Call: model=%s messages=%d max_tokens=%d", model, len(messages), maxTokens)

	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// OpenRouter-specific headers
	req.Header.Set("HTTP-Referer", c.siteURL)
	req.Header.Set("X-Title", c.siteName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[OpenRouter] Call: model=%s request failed after %v: %v", model, time.Since(startTime), err)
		return "", &CallError{Kind: KindGeneric, Msg: fmt.Sprintf("request failed: %v", err)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	resp.Body.Close()
	if err != nil {
		return "", &CallError{Kind: KindGeneric, Msg: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		callErr := classifyFailure(resp.StatusCode, body)
		logging.APIError("[OpenRouter] Call: model=%s status=%d kind=%d: %s", model, resp.StatusCode, callErr.Kind, callErr.Msg)
		return "", callErr
	}

	var orResp chatResponse
	if err := json.Unmarshal(body, &orResp); err != nil {
		return "", &CallError{Kind: KindGeneric, Msg: fmt.Sprintf("failed to parse response: %v", err)}
	}

	if orResp.Error != nil {
		callErr := classifyAPIError(orResp.Error)
		logging.APIError("[OpenRouter] Call: model=%s API error kind=%d: %s", model, callErr.Kind, callErr.Msg)
		return "", callErr
	}

	if len(orResp.Choices) == 0 {
		return "", &CallError{Kind: KindGeneric, Msg: "no completion returned"}
	}

	response := strings.TrimSpace(orResp.Choices[0].Message.Content)
	logging.API("[OpenRouter] Call: model=%s completed in %v response_len=%d", model, time.Since(startTime), len(response))
	return response, nil
}

// classifyFailure maps a non-200 response to a typed call error.
// OpenRouter usually nests the detail as {"error": {"message": ..., "code": ...}}.
func classifyFailure(status int, body []byte) *CallError {
	msg := strings.TrimSpace(string(body))
	code := status

	var wrapper struct {
		Error apiError `json:"error"`
	}
	if json.Unmarshal(body, &wrapper) == nil && wrapper.Error.Message != "" {
		msg = wrapper.Error.Message
		if wrapper.Error.Code != 0 {
			code = wrapper.Error.Code
		}
	}

	kind := KindGeneric
	switch code {
	case http.StatusPaymentRequired:
		kind = KindQuota
	case http.StatusTooManyRequests:
		kind = KindRateLimit
	}
	return &CallError{Kind: kind, Msg: fmt.Sprintf("API request failed with status %d: %s", status, msg)}
}

// classifyAPIError handles the error object some providers return inside a
// 200 response body.
func classifyAPIError(e *apiError) *CallError {
	kind := KindGeneric
	switch e.Code {
	case http.StatusPaymentRequired:
		kind = KindQuota
	case http.StatusTooManyRequests:
		kind = KindRateLimit
	}
	return &CallError{Kind: kind, Msg: fmt.Sprintf("API error: %s", e.Message)}
}
