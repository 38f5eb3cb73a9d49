// Package advisor turns layouts and metrics into narrative text and generated
// topologies by way of structured LLM generation.
package advisor

import (
	"fmt"
	"strings"

	"infralab/internal/llmtool"
	"infralab/internal/topology"
)

// Generation sites, used to tell failures apart.
const (
	SiteExplanation = "explanation"
	SiteSuggestions = "suggestions"
	SiteTopology    = "topology"
	SiteProposal    = "proposal"
)

// GenerationError wraps any failure of a call site.
type GenerationError struct {
	Site string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Site, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Advisor issues the four structured generation calls.
type Advisor struct {
	gen *llmtool.Generator
}

func New(gen *llmtool.Generator) *Advisor {
	return &Advisor{gen: gen}
}

func fail(site string, err error) error {
	return &GenerationError{Site: site, Err: err}
}

// componentSummary renders "type (id), type (id)".
func componentSummary(l topology.Layout) string {
	parts := make([]string, 0, len(l.Components))
	for _, c := range l.Components {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Type, c.ID))
	}
	return strings.Join(parts, ", ")
}

// kindSummary renders "2x lambda, 1x rds" in first-appearance order.
func kindSummary(l topology.Layout) string {
	var order []topology.Kind
	counts := make(map[topology.Kind]int)
	for _, c := range l.Components {
		if counts[c.Type] == 0 {
			order = append(order, c.Type)
		}
		counts[c.Type]++
	}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		parts = append(parts, fmt.Sprintf("%dx %s", counts[k], k))
	}
	return strings.Join(parts, ", ")
}

func buildPrompt(spec llmtool.PromptSpec, reply any) (string, error) {
	spec.Output = llmtool.FieldsFromSchema(llmtool.MustSchemaFromStruct(reply))
	return spec.Render()
}
