package advisor

import (
	"context"
	"fmt"
	"strings"

	"infralab/internal/llm"
	"infralab/internal/llmtool"
	"infralab/internal/metrics"
	"infralab/internal/pricing"
	"infralab/internal/proposal"
	"infralab/internal/topology"
)

// ProposalInput is what a proposal is written about.
type ProposalInput struct {
	Layout          topology.Layout
	Goal            topology.Goal
	UseCase         string
	Costs           []pricing.LineItem
	TotalMonthlyUSD float64
	Metrics         metrics.Result
}

// ProposalSections is the narrative of a proposal.
type ProposalSections struct {
	ExecutiveSummary      string `json:"executive_summary" prompt_desc:"2-3 sentence business summary"`
	ArchitectureRationale string `json:"architecture_rationale" prompt_desc:"why this topology supports the goal and use case"`
	ComponentChoices      string `json:"component_choices" prompt_desc:"why these services vs alternatives"`
	Tradeoffs             string `json:"tradeoffs" prompt_desc:"key trade-offs and mitigations"`
	Risks                 string `json:"risks" prompt_desc:"deployment/operational risks and mitigations"`
	NextSteps             string `json:"next_steps" prompt_desc:"clear next actions"`
}

// Sections returns the narrative in print order with display headings.
func (p ProposalSections) Sections() []proposal.Section {
	return []proposal.Section{
		{Heading: "Executive Summary", Body: p.ExecutiveSummary},
		{Heading: "Architecture Rationale", Body: p.ArchitectureRationale},
		{Heading: "Why These Components", Body: p.ComponentChoices},
		{Heading: "Trade-offs vs Alternatives", Body: p.Tradeoffs},
		{Heading: "Risk Mitigation", Body: p.Risks},
		{Heading: "Next Steps", Body: p.NextSteps},
	}
}

// costLines renders "- service: n x $unit = $subtotal" per line item.
func costLines(items []pricing.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s: %d x $%.2f = $%.2f", it.Service, it.Count, it.UnitMonthlyUSD, it.SubtotalMonthlyUSD))
	}
	return strings.Join(lines, "\n")
}

// Propose writes an executive-facing proposal for in.
func (a *Advisor) Propose(ctx context.Context, in ProposalInput) (ProposalSections, error) {
	useCase := strings.TrimSpace(in.UseCase)
	if useCase == "" {
		useCase = "Not specified"
	}
	prompt, err := buildPrompt(llmtool.PromptSpec{
		Purpose: "Create a concise business proposal for this cloud architecture.",
		Facts: []string{
			"Use case: " + useCase,
			"Goal: " + in.Goal.String(),
			"Components: " + componentSummary(in.Layout),
			fmt.Sprintf("Metrics: latency=%dms, scalability=%d/100, cost_index=%d/100",
				in.Metrics.LatencyMs, in.Metrics.Scalability, in.Metrics.CostIndex),
			fmt.Sprintf("Estimated monthly cost: $%.2f", in.TotalMonthlyUSD),
		},
		Background: "Cost breakdown:\n" + costLines(in.Costs),
	}.With(llmtool.StrictJSON, llmtool.NoInvent), ProposalSections{})
	if err != nil {
		return ProposalSections{}, fail(SiteProposal, err)
	}
	out, err := llmtool.GenerateInto[ProposalSections](ctx, a.gen, llmtool.Request{
		Phase:        llm.PhaseProposal,
		SystemPrompt: "You are a senior cloud architect writing for executives. Be formal, clear, and concise. Respond with JSON only.",
		Prompt:       prompt,
	})
	if err != nil {
		return ProposalSections{}, fail(SiteProposal, err)
	}
	return out, nil
}
