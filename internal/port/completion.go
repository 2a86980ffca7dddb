package port

import (
	"context"
	"time"
)

// Message is a single chat message sent to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries one prompt and its execution budget. Timeout
// is enforced client-side; the upstream API does not reliably honor a
// server-side deadline.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// CompletionClient abstracts the language model completion API. A single
// attempt with a hard deadline; retry policy, if any, belongs to the
// caller.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
