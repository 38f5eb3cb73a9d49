package llm

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"infralab/internal/ledger"
	llmclient "infralab/internal/llmClient"
	"infralab/internal/tester"
)

type stubClient struct {
	out   string
	err   error
	calls int
}

func (s *stubClient) Name() string { return "stub" }
func (s *stubClient) Close() error { return nil }
func (s *stubClient) Complete(ctx context.Context, req llmclient.ChatRequest) (string, error) {
	s.calls++
	return s.out, s.err
}

var _ llmclient.ChatClient = (*stubClient)(nil)

func TestWrap_Order(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next llmclient.ChatClient) llmclient.ChatClient {
			return &tagged{next: next, tag: tag, order: &order}
		}
	}
	cli := Wrap(&stubClient{out: "x"}, mw("A"), mw("B"))
	_, err := cli.Complete(context.Background(), llmclient.ChatRequest{})
	tester.NoErr(t, err)
	tester.Eq(t, strings.Join(order, ""), "AB")
}

type tagged struct {
	next  llmclient.ChatClient
	tag   string
	order *[]string
}

func (t *tagged) Name() string { return t.next.Name() }
func (t *tagged) Close() error { return t.next.Close() }
func (t *tagged) Complete(ctx context.Context, req llmclient.ChatRequest) (string, error) {
	*t.order = append(*t.order, t.tag)
	return t.next.Complete(ctx, req)
}

func TestWithLogging_PrintsPhaseAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	stub := &stubClient{err: errors.New("boom")}
	cli := Wrap(stub, WithLogging(logger))

	ctx := WithAttempt(WithPhase(context.Background(), PhaseExplain), 2)
	_, err := cli.Complete(ctx, llmclient.ChatRequest{Messages: []llmclient.Message{{Role: llmclient.RoleUser, Content: "hello"}}})
	tester.True(t, err != nil)

	out := buf.String()
	tester.True(t, strings.Contains(out, "LLM request (explain #2): 5 bytes"), out)
	tester.True(t, strings.Contains(out, "LLM error (explain #2): boom"), out)
}

func TestWithLedger_RecordsEveryCall(t *testing.T) {
	mem := ledger.NewMemory(10)
	stub := &stubClient{out: `{"a":1}`}
	cli := Wrap(stub, WithLedger(mem, nil))

	ctx := WithPhase(context.Background(), PhaseTopology)
	_, err := cli.Complete(ctx, llmclient.ChatRequest{Messages: []llmclient.Message{{Content: "abc"}}})
	tester.NoErr(t, err)
	stub.err = errors.New("down")
	_, _ = cli.Complete(WithAttempt(ctx, 2), llmclient.ChatRequest{})

	got, err := mem.Recent(context.Background(), 10)
	tester.NoErr(t, err)
	tester.Eq(t, len(got), 2)
	tester.Eq(t, got[0].Attempt, 2)
	tester.Eq(t, got[0].Error, "down")
	tester.Eq(t, got[1].Phase, PhaseTopology)
	tester.Eq(t, got[1].Provider, "stub")
	tester.Eq(t, got[1].PromptBytes, 3)
	tester.Eq(t, got[1].ResponseBytes, 7)
}

type brokenLedger struct{ ledger.MemoryLedger }

func (*brokenLedger) Record(context.Context, ledger.Entry) error {
	return errors.New("ledger offline")
}

func TestWithLedger_LogsWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	stub := &stubClient{out: `{"a":1}`}
	cli := Wrap(stub, WithLedger(&brokenLedger{}, log.New(&buf, "", 0)))

	out, err := cli.Complete(WithPhase(context.Background(), PhaseProposal), llmclient.ChatRequest{})
	tester.NoErr(t, err)
	tester.Eq(t, out, `{"a":1}`)
	tester.True(t, strings.Contains(buf.String(), "ledger record (proposal #1): ledger offline"), buf.String())
}

func TestPhaseFrom_Default(t *testing.T) {
	tester.Eq(t, PhaseFrom(context.Background()), "unknown")
	tester.Eq(t, AttemptFrom(context.Background()), 1)
}

func TestFakeClient_WrapsJSONInProse(t *testing.T) {
	f := NewFakeClient()
	for _, phase := range []string{PhaseExplain, PhaseSuggest, PhaseTopology, PhaseProposal} {
		out, err := f.Complete(WithPhase(context.Background(), phase), llmclient.ChatRequest{})
		tester.NoErr(t, err)
		tester.True(t, strings.HasPrefix(out, "Sure!"), phase)
		tester.True(t, strings.Contains(out, "{"), phase)
	}
}
