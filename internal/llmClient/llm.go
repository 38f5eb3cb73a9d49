package llmclient

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Message roles understood by chat completion endpoints.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Per-call defaults.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultTemperature = float32(0.7)
	DefaultMaxTokens   = 2048
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single chat completion call.
type ChatRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// ChatClient sends one chat completion request and returns the raw text of
// the first choice. Implementations must not retry; callers own the retry policy.
type ChatClient interface {
	Name() string
	Complete(ctx context.Context, req ChatRequest) (string, error)
	Close() error
}

var (
	ErrEmptyResponse = errors.New("llm returned no content")
	ErrMissingAPIKey = errors.New("llm api key is not configured")
)

// TransportError is a network or HTTP failure while calling a provider.
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: http %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}
