package llmtool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"infralab/internal/llm"
	llmclient "infralab/internal/llmClient"
	"infralab/internal/util/jsonutil"
)

// Defaults for the generation policy.
const (
	DefaultMaxRetries = 3
	DefaultBackoff    = time.Second
)

// Request is one structured generation call.
type Request struct {
	// Phase tags the call in logs and the ledger.
	Phase        string
	SystemPrompt string
	Prompt       string
	Schema       *Schema
	// Check runs after schema validation for invariants a schema cannot
	// express. A returned *SchemaError is retried like any schema failure.
	Check func(raw json.RawMessage) error
}

// Generator sends prompts to a ChatClient and returns validated JSON.
// Attempts are sequential; a failed attempt is retried with the same payload.
type Generator struct {
	client      llmclient.ChatClient
	maxRetries  int
	backoff     time.Duration
	timeout     time.Duration
	maxTokens   int
	temperature float32
}

type Option func(*Generator)

func WithMaxRetries(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxRetries = n
		}
	}
}

// WithBackoff sets the fixed wait between attempts. Zero disables waiting.
func WithBackoff(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 {
			g.backoff = d
		}
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func NewGenerator(client llmclient.ChatClient, opts ...Option) *Generator {
	g := &Generator{
		client:      client,
		maxRetries:  DefaultMaxRetries,
		backoff:     DefaultBackoff,
		timeout:     llmclient.DefaultTimeout,
		maxTokens:   llmclient.DefaultMaxTokens,
		temperature: llmclient.DefaultTemperature,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate runs the request until a reply passes extraction, schema
// validation and Check, or until the retry limit is reached. Errors that are
// not retryable are returned immediately.
func (g *Generator) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	if g.client == nil {
		return nil, fmt.Errorf("llmtool: client is nil")
	}
	msgs, err := buildMessages(req)
	if err != nil {
		return nil, err
	}
	if req.Phase != "" {
		ctx = llm.WithPhase(ctx, req.Phase)
	}

	var last error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		raw, err := g.attempt(llm.WithAttempt(ctx, attempt), req, msgs)
		if err == nil {
			return raw, nil
		}
		if !Retryable(err) {
			return nil, err
		}
		last = err
		if attempt < g.maxRetries {
			if err := g.wait(ctx); err != nil {
				return nil, err
			}
		}
	}
	return nil, &ExhaustedError{Attempts: g.maxRetries, Last: last}
}

func (g *Generator) attempt(ctx context.Context, req Request, msgs []llmclient.Message) (json.RawMessage, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.client.Complete(callCtx, llmclient.ChatRequest{
		Messages:    msgs,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, err
	}
	return parseReply(text, req)
}

func (g *Generator) wait(ctx context.Context) error {
	if g.backoff <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// parseReply extracts, decodes and validates one model reply.
func parseReply(text string, req Request) (json.RawMessage, error) {
	obj, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(obj))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ExtractionError{Reason: "invalid JSON", Err: err}
	}
	if err := Validate(req.Schema, v); err != nil {
		return nil, err
	}
	raw := json.RawMessage(obj)
	if req.Check != nil {
		if err := req.Check(raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func buildMessages(req Request) ([]llmclient.Message, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("llmtool: prompt is empty")
	}
	var msgs []llmclient.Message
	if req.SystemPrompt != "" {
		msgs = append(msgs, llmclient.Message{Role: llmclient.RoleSystem, Content: req.SystemPrompt})
	}
	if req.Schema != nil {
		schema, err := jsonutil.MarshalNoEscapeIndent(req.Schema, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("llmtool: encode schema: %w", err)
		}
		msgs = append(msgs, llmclient.Message{
			Role:    llmclient.RoleSystem,
			Content: "Respond with valid JSON matching this schema:\n" + string(schema),
		})
	}
	return append(msgs, llmclient.Message{Role: llmclient.RoleUser, Content: req.Prompt}), nil
}

// GenerateInto runs req and decodes the validated reply into T. When
// req.Schema is nil it is derived from T's struct tags. A reply that passes
// the schema but cannot be decoded into T is retried as a schema failure.
func GenerateInto[T any](ctx context.Context, g *Generator, req Request) (T, error) {
	var out T
	if req.Schema == nil {
		s, err := SchemaFromStruct(out)
		if err != nil {
			return out, err
		}
		req.Schema = s
	}
	check := req.Check
	req.Check = func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return &SchemaError{Reason: err.Error()}
		}
		if check != nil {
			if err := check(raw); err != nil {
				return err
			}
		}
		out = v
		return nil
	}
	if _, err := g.Generate(ctx, req); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
