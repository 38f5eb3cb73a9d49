package llmtool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"infralab/internal/llm"
	llmclient "infralab/internal/llmClient"
	"infralab/internal/tester"
)

type scriptedClient struct {
	replies  []string
	errs     []error
	calls    int
	attempts []int
	phases   []string
	last     llmclient.ChatRequest
}

func (s *scriptedClient) Name() string { return "scripted" }
func (s *scriptedClient) Close() error { return nil }
func (s *scriptedClient) Complete(ctx context.Context, req llmclient.ChatRequest) (string, error) {
	i := s.calls
	s.calls++
	s.last = req
	s.attempts = append(s.attempts, llm.AttemptFrom(ctx))
	s.phases = append(s.phases, llm.PhaseFrom(ctx))
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return s.replies[len(s.replies)-1], nil
}

type explanationReply struct {
	Explanation string `json:"explanation" prompt:"required,min=10"`
}

func newTestGenerator(c llmclient.ChatClient, n int) *Generator {
	return NewGenerator(c, WithMaxRetries(n), WithBackoff(0))
}

func TestGenerate_RetriesExactlyMaxRetries(t *testing.T) {
	c := &scriptedClient{replies: []string{"no json at all"}}
	g := newTestGenerator(c, 4)

	_, err := g.Generate(context.Background(), Request{Prompt: "p", Schema: MustSchemaFromStruct(explanationReply{})})

	var ex *ExhaustedError
	tester.True(t, errors.As(err, &ex), "expected ExhaustedError, got %v", err)
	tester.Eq(t, ex.Attempts, 4)
	tester.Eq(t, c.calls, 4)
	tester.Eq(t, c.attempts, []int{1, 2, 3, 4})
	var ee *ExtractionError
	tester.True(t, errors.As(err, &ee), "last cause should be the extraction error")
}

func TestGenerate_SucceedsOnSecondAttempt(t *testing.T) {
	c := &scriptedClient{replies: []string{
		`{"explanation": "short"}`,
		`Sure: {"explanation": "This layout is balanced for latency."} hope it helps`,
	}}
	g := newTestGenerator(c, 3)

	got, err := GenerateInto[explanationReply](context.Background(), g, Request{Phase: llm.PhaseExplain, Prompt: "p"})
	tester.NoErr(t, err)
	tester.Eq(t, got.Explanation, "This layout is balanced for latency.")
	tester.Eq(t, c.calls, 2)
	tester.Eq(t, c.phases, []string{llm.PhaseExplain, llm.PhaseExplain})
}

func TestGenerate_TransportErrorsAreRetried(t *testing.T) {
	terr := &llmclient.TransportError{Provider: "x", StatusCode: 502, Err: errors.New("bad gateway")}
	c := &scriptedClient{errs: []error{terr, terr, terr}, replies: []string{""}}
	g := newTestGenerator(c, 3)

	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	var ex *ExhaustedError
	tester.True(t, errors.As(err, &ex))
	tester.True(t, llmclient.IsTransport(err))
	tester.Eq(t, c.calls, 3)
}

func TestGenerate_NonRetryableStopsImmediately(t *testing.T) {
	boom := errors.New("boom")
	c := &scriptedClient{errs: []error{boom}, replies: []string{"{}"}}
	g := newTestGenerator(c, 3)

	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	tester.ErrIs(t, err, boom)
	tester.Eq(t, c.calls, 1)
}

func TestGenerate_CheckFailureIsRetried(t *testing.T) {
	c := &scriptedClient{replies: []string{`{"pairs": [["a"]]}`, `{"pairs": [["a","b"]]}`}}
	g := newTestGenerator(c, 3)
	checks := 0
	raw, err := g.Generate(context.Background(), Request{
		Prompt: "p",
		Check: func(raw json.RawMessage) error {
			checks++
			var v struct{ Pairs [][]string }
			_ = json.Unmarshal(raw, &v)
			for _, p := range v.Pairs {
				if len(p) != 2 {
					return &SchemaError{Path: "pairs", Reason: "need two ids"}
				}
			}
			return nil
		},
	})
	tester.NoErr(t, err)
	tester.Eq(t, string(raw), `{"pairs": [["a","b"]]}`)
	tester.Eq(t, checks, 2)
}

func TestGenerate_MessagesCarrySchema(t *testing.T) {
	c := &scriptedClient{replies: []string{`{"explanation": "long enough text"}`}}
	g := newTestGenerator(c, 1)
	_, err := GenerateInto[explanationReply](context.Background(), g, Request{SystemPrompt: "sys", Prompt: "user prompt"})
	tester.NoErr(t, err)

	msgs := c.last.Messages
	tester.Eq(t, len(msgs), 3)
	tester.Eq(t, msgs[0], llmclient.Message{Role: llmclient.RoleSystem, Content: "sys"})
	tester.True(t, strings.HasPrefix(msgs[1].Content, "Respond with valid JSON matching this schema:\n{"))
	tester.True(t, strings.Contains(msgs[1].Content, `"minLength": 10`), msgs[1].Content)
	tester.Eq(t, msgs[2], llmclient.Message{Role: llmclient.RoleUser, Content: "user prompt"})
	tester.Eq(t, c.last.MaxTokens, 2048)
	tester.Eq(t, c.last.Temperature, float32(0.7))
}

func TestGenerate_BackoffHonorsContext(t *testing.T) {
	c := &scriptedClient{replies: []string{"nothing"}}
	g := NewGenerator(c, WithMaxRetries(3), WithBackoff(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Generate(ctx, Request{Prompt: "p"})
	tester.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	tester.Eq(t, c.calls, 1)
	tester.True(t, time.Since(start) < time.Minute)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	g := newTestGenerator(&scriptedClient{replies: []string{"{}"}}, 1)
	_, err := g.Generate(context.Background(), Request{})
	tester.True(t, err != nil)
}
