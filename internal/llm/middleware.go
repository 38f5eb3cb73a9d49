package llm

import (
	"context"
	"log"
	"time"

	"infralab/internal/ledger"
	llmclient "infralab/internal/llmClient"
)

// Middleware decorates a ChatClient to inject cross-cutting concerns
// (logging, attempt recording).
type Middleware func(llmclient.ChatClient) llmclient.ChatClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.ChatClient, mws ...Middleware) llmclient.ChatClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Logging --------

// WithLogging logs request sizes and errors per phase. Pass nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.ChatClient) llmclient.ChatClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.ChatClient
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }
func (l *logging) Complete(ctx context.Context, req llmclient.ChatRequest) (string, error) {
	l.log.Printf("LLM request (%s #%d): %d bytes", PhaseFrom(ctx), AttemptFrom(ctx), requestBytes(req))
	out, err := l.next.Complete(ctx, req)
	if err != nil {
		l.log.Printf("LLM error (%s #%d): %v", PhaseFrom(ctx), AttemptFrom(ctx), err)
	}
	return out, err
}

// -------- Ledger --------

// WithLedger records one ledger entry per Complete call. Ledger write
// failures are logged and never change the call's outcome.
func WithLedger(l ledger.Ledger, logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.ChatClient) llmclient.ChatClient {
		if l == nil {
			return next
		}
		return &ledgered{next: next, ledger: l, log: logger, now: time.Now}
	}
}

type ledgered struct {
	next   llmclient.ChatClient
	ledger ledger.Ledger
	log    *log.Logger
	now    func() time.Time
}

func (c *ledgered) Name() string { return c.next.Name() }
func (c *ledgered) Close() error { return c.next.Close() }
func (c *ledgered) Complete(ctx context.Context, req llmclient.ChatRequest) (string, error) {
	start := c.now()
	out, err := c.next.Complete(ctx, req)
	e := ledger.Entry{
		Time:          start,
		Phase:         PhaseFrom(ctx),
		Provider:      c.next.Name(),
		Attempt:       AttemptFrom(ctx),
		PromptBytes:   requestBytes(req),
		ResponseBytes: len(out),
		DurationMs:    c.now().Sub(start).Milliseconds(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	if lerr := c.ledger.Record(context.WithoutCancel(ctx), e); lerr != nil {
		c.log.Printf("ledger record (%s #%d): %v", e.Phase, e.Attempt, lerr)
	}
	return out, err
}

func requestBytes(req llmclient.ChatRequest) int {
	n := 0
	for _, m := range req.Messages {
		n += len(m.Content)
	}
	return n
}
