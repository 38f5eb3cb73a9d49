package llm

import "context"

// Phases tag which call site issued a request.
const (
	PhaseExplain  = "explain"
	PhaseSuggest  = "suggest"
	PhaseTopology = "topology"
	PhaseProposal = "proposal"
)

type ctxKeyPhase struct{}
type ctxKeyAttempt struct{}

func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase string stored in the context.
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}

// WithAttempt records the 1-based attempt number of a retried call.
func WithAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, ctxKeyAttempt{}, attempt)
}

func AttemptFrom(ctx context.Context) int {
	if v, ok := ctx.Value(ctxKeyAttempt{}).(int); ok {
		return v
	}
	return 1
}
