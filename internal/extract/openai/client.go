package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"activitymagic/internal/config"
	"activitymagic/internal/extract"
	"activitymagic/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements port.CompletionClient using the OpenAI Chat
// Completions API. Timeouts are enforced per request via context, since
// each task profile carries its own budget.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a completion client from config.
func NewClient(cfg *config.OpenAIConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newClient(cfg, endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.OpenAIConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.OpenAIConfig, endpoint string) *Client {
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

type chatRequest struct {
	Model       string         `json:"model"`
	Messages    []port.Message `json:"messages"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	Temperature float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the raw text of
// the first choice. A missing API key fails immediately without a
// network round trip.
func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", &extract.AuthError{Err: errors.New("no API key configured")}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bodyBytes, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &extract.TimeoutError{Budget: timeout, Err: err}
		}
		return "", &extract.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &extract.TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &extract.AuthError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, respBody)}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := extract.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return "", &extract.UpstreamError{
			StatusCode: resp.StatusCode,
			RetryAfter: time.Duration(retryAfter) * time.Second,
			Body:       string(respBody),
		}
	case resp.StatusCode != http.StatusOK:
		return "", &extract.UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
