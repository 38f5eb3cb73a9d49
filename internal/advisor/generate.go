package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"infralab/internal/llm"
	"infralab/internal/llmtool"
	"infralab/internal/topology"
)

type generatedComponent struct {
	ID   string `json:"id" prompt_desc:"unique id like \"type-number\""`
	Type string `json:"type" prompt_desc:"component type (lambda, s3, dynamodb, etc.)"`
}

type topologyReply struct {
	Components  []generatedComponent `json:"components" prompt_desc:"infrastructure components"`
	Connections [][]string           `json:"connections" prompt_desc:"connections as [from_id, to_id] pairs"`
}

// checkPairs rejects connections that are not exactly two ids.
func checkPairs(raw json.RawMessage) error {
	var r topologyReply
	if err := json.Unmarshal(raw, &r); err != nil {
		return &llmtool.SchemaError{Reason: err.Error()}
	}
	if len(r.Components) == 0 {
		return &llmtool.SchemaError{Path: "components", Reason: "at least one component required"}
	}
	for i, c := range r.Connections {
		if len(c) != 2 {
			return &llmtool.SchemaError{
				Path:   fmt.Sprintf("connections[%d]", i),
				Reason: fmt.Sprintf("expected [from_id, to_id], got %d ids", len(c)),
			}
		}
	}
	return nil
}

// GenerateTopology asks for a layout suited to goal and useCase. Generic
// kinds in the reply are normalized to their AWS equivalents.
func (a *Advisor) GenerateTopology(ctx context.Context, goal topology.Goal, useCase string) (topology.Layout, error) {
	brief := BriefFor(goal)
	valid := make([]string, 0)
	for _, k := range topology.ConcreteKinds() {
		valid = append(valid, k.String())
	}
	background := ""
	if uc := strings.TrimSpace(useCase); uc != "" {
		background = "Use case: " + uc + "\nDesign the architecture specifically for this."
	}
	prompt, err := buildPrompt(llmtool.PromptSpec{
		Purpose:    "Generate a realistic AWS infrastructure topology.",
		Background: background,
		Facts: []string{
			fmt.Sprintf("Goal: %s - %s", goal, brief.Target),
			"Architecture: " + brief.Style,
		},
		Rules: []string{
			"Create 6-12 components following AWS best practices.",
			"Valid types: " + strings.Join(valid, ", "),
			`Each component has a unique id like "type-number".`,
			"Include VPC networking for private resources.",
			"RDS/ElastiCache must be in a VPC with security groups.",
			"Lambda accessing databases must be in the same VPC.",
			"Create realistic connections between components.",
		},
	}.With(llmtool.StrictJSON), topologyReply{})
	if err != nil {
		return topology.Layout{}, fail(SiteTopology, err)
	}
	out, err := llmtool.GenerateInto[topologyReply](ctx, a.gen, llmtool.Request{
		Phase: llm.PhaseTopology,
		SystemPrompt: "You are an AWS cloud architect expert.\n" +
			"Generate realistic infrastructure topologies following AWS best practices.\n" +
			"Respond with ONLY valid JSON, no other text.",
		Prompt: prompt,
		Check:  checkPairs,
	})
	if err != nil {
		return topology.Layout{}, fail(SiteTopology, err)
	}
	return normalize(out), nil
}

func normalize(r topologyReply) topology.Layout {
	l := topology.Layout{
		Components:  make([]topology.Component, 0, len(r.Components)),
		Connections: make([]topology.Connection, 0, len(r.Connections)),
	}
	for _, c := range r.Components {
		l.Components = append(l.Components, topology.Component{
			ID:   strings.TrimSpace(c.ID),
			Type: topology.ParseKind(c.Type).Concrete(),
		})
	}
	for _, pair := range r.Connections {
		l.Connections = append(l.Connections, topology.Connection{From: pair[0], To: pair[1]})
	}
	return l
}
