package advisor

import (
	"context"
	"fmt"
	"strings"

	"infralab/internal/llm"
	"infralab/internal/llmtool"
	"infralab/internal/metrics"
	"infralab/internal/topology"
)

type explanationReply struct {
	Explanation string `json:"explanation" prompt_desc:"2-3 sentence analysis explaining key trade-offs and goal achievement" prompt:"required,min=10"`
}

type suggestionsReply struct {
	Suggestions string `json:"suggestions" prompt_desc:"2-3 specific, actionable recommendations" prompt:"required"`
}

// Explain describes how the layout performs against goal.
func (a *Advisor) Explain(ctx context.Context, layout topology.Layout, goal topology.Goal, m metrics.Result) (string, error) {
	prompt, err := buildPrompt(llmtool.PromptSpec{
		Purpose: "Analyze this infrastructure simulation.",
		Facts: []string{
			"Components: " + componentSummary(layout),
			fmt.Sprintf("Connections: %d links", len(layout.Connections)),
			"Goal: " + goal.String(),
			fmt.Sprintf("Latency: %dms, Scalability: %d/100, Cost: %d/100", m.LatencyMs, m.Scalability, m.CostIndex),
		},
	}.With(llmtool.StrictJSON, llmtool.NoInvent), explanationReply{})
	if err != nil {
		return "", fail(SiteExplanation, err)
	}
	out, err := llmtool.GenerateInto[explanationReply](ctx, a.gen, llmtool.Request{
		Phase:        llm.PhaseExplain,
		SystemPrompt: "You are an expert cloud infrastructure architect. Respond with valid JSON only.",
		Prompt:       prompt,
	})
	if err != nil {
		return "", fail(SiteExplanation, err)
	}
	return strings.TrimSpace(out.Explanation), nil
}

// Suggest recommends changes that move the layout towards goal.
func (a *Advisor) Suggest(ctx context.Context, layout topology.Layout, goal topology.Goal, m metrics.Result) (string, error) {
	prompt, err := buildPrompt(llmtool.PromptSpec{
		Purpose: "Analyze this cloud infrastructure and suggest improvements.",
		Facts: []string{
			fmt.Sprintf("Goal: %s (%s)", goal, SuggestionFocus(goal)),
			"Components: " + kindSummary(layout),
			fmt.Sprintf("Total: %d components, %d connections", len(layout.Components), len(layout.Connections)),
			fmt.Sprintf("Metrics: Latency=%dms, Scalability=%d/100, Cost=%d/100", m.LatencyMs, m.Scalability, m.CostIndex),
		},
		Rules: []string{"Every recommendation must improve the layout for " + goal.String() + "."},
	}.With(llmtool.StrictJSON, llmtool.Concise), suggestionsReply{})
	if err != nil {
		return "", fail(SiteSuggestions, err)
	}
	out, err := llmtool.GenerateInto[suggestionsReply](ctx, a.gen, llmtool.Request{
		Phase:        llm.PhaseSuggest,
		SystemPrompt: "You are an expert cloud architect. Respond with valid JSON only.",
		Prompt:       prompt,
	})
	if err != nil {
		return "", fail(SiteSuggestions, err)
	}
	return strings.TrimSpace(out.Suggestions), nil
}
