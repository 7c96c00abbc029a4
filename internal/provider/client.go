package provider

import "context"

// Message is one chat turn sent to a backing model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Caller performs one request/response exchange against a named model.
// Implementations issue exactly one attempt per call: the council records
// failures per member and never retries, so a Caller must not retry either.
type Caller interface {
	Call(ctx context.Context, model string, messages []Message, maxTokens int, temperature float64) (string, error)
}
