package llmtool

import (
	"errors"
	"fmt"
	"strings"
)

// PromptField is one line of the OUTPUT section.
type PromptField struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// PromptSpec is a sectioned prompt rendered as "[TITLE]\nbody" blocks.
type PromptSpec struct {
	Purpose     string
	Background  string
	Facts       []string
	Output      []PromptField
	Constraints []string
	Rules       []string
	Format      string
}

// Preset is a reusable block of constraints and rules.
type Preset struct {
	Constraints []string
	Rules       []string
}

var (
	StrictJSON = Preset{Constraints: []string{
		"Return a single JSON object only.",
		"Match the schema exactly; no extra fields.",
		"No markdown, comments, or trailing commas.",
	}}
	NoInvent = Preset{Constraints: []string{
		"Refer only to components and figures listed in FACTS; do not invent services or numbers.",
	}}
	Concise = Preset{Rules: []string{
		"Keep each text field to 2-3 sentences.",
	}}
)

// With puts the presets' lines ahead of the spec's own.
func (p PromptSpec) With(presets ...Preset) PromptSpec {
	var constraints, rules []string
	for _, pr := range presets {
		constraints = append(constraints, pr.Constraints...)
		rules = append(rules, pr.Rules...)
	}
	p.Constraints = append(constraints, p.Constraints...)
	p.Rules = append(rules, p.Rules...)
	return p
}

// Render lays the sections out in a fixed order and skips empty ones.
func (p PromptSpec) Render() (string, error) {
	if strings.TrimSpace(p.Purpose) == "" {
		return "", errors.New("llmtool: purpose is empty")
	}
	if len(p.Output) == 0 {
		return "", errors.New("llmtool: output fields are empty")
	}
	sections := []struct{ title, body string }{
		{"PURPOSE", p.Purpose},
		{"BACKGROUND", p.Background},
		{"FACTS", bullets(p.Facts)},
		{"OUTPUT", bullets(fieldLines(p.Output))},
		{"CONSTRAINTS", bullets(p.Constraints)},
		{"RULES", bullets(p.Rules)},
		{"OUTPUT_FORMAT", p.Format},
	}
	var b strings.Builder
	for _, s := range sections {
		body := strings.TrimRight(s.body, "\n")
		if strings.TrimSpace(body) == "" {
			continue
		}
		fmt.Fprintf(&b, "[%s]\n%s\n\n", s.title, body)
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}

// FieldsFromSchema lists the top-level properties of an object schema in
// declaration order.
func FieldsFromSchema(s *Schema) []PromptField {
	if s == nil || s.Type != "object" {
		return nil
	}
	var fields []PromptField
	for _, name := range s.propertyNames() {
		prop := s.Properties[name]
		fields = append(fields, PromptField{
			Name:        name,
			Type:        typeLabel(prop),
			Required:    s.isRequired(name),
			Description: prop.Description,
		})
	}
	return fields
}

func typeLabel(s *Schema) string {
	switch {
	case s == nil:
		return "any"
	case s.Type == "array":
		return "[]" + typeLabel(s.Items)
	default:
		return s.Type
	}
}

func fieldLines(fields []PromptField) []string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			continue
		}
		presence := "optional"
		if f.Required {
			presence = "required"
		}
		line := fmt.Sprintf("%s (%s, %s)", strings.TrimSpace(f.Name), f.Type, presence)
		if f.Description != "" {
			line += ": " + f.Description
		}
		lines = append(lines, line)
	}
	return lines
}

func bullets(items []string) string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, "- "+item)
		}
	}
	return strings.Join(out, "\n")
}
