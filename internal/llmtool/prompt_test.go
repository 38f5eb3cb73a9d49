package llmtool

import (
	"strings"
	"testing"

	"infralab/internal/tester"
)

func TestPromptSpecRender(t *testing.T) {
	spec := PromptSpec{
		Purpose: "Explain the result.",
		Facts:   []string{"Goal: low_latency", " "},
		Output:  FieldsFromSchema(MustSchemaFromStruct(sampleReply{})),
	}.With(StrictJSON)
	out, err := spec.Render()
	tester.NoErr(t, err)
	tester.True(t, strings.HasPrefix(out, "[PURPOSE]\nExplain the result.\n"))
	tester.True(t, strings.Contains(out, "[FACTS]\n- Goal: low_latency\n\n"), out)
	tester.True(t, strings.Contains(out, "- title (string, required): short title"), out)
	tester.True(t, strings.Contains(out, "- score (number, optional)\n"), out)
	tester.True(t, strings.Contains(out, "[CONSTRAINTS]\n- Return a single JSON object only."), out)
	tester.False(t, strings.Contains(out, "[RULES]"))
}

func TestPromptSpecWith(t *testing.T) {
	spec := PromptSpec{Constraints: []string{"own"}}.With(StrictJSON, Concise)
	tester.Eq(t, len(spec.Constraints), len(StrictJSON.Constraints)+1)
	tester.Eq(t, spec.Constraints[len(spec.Constraints)-1], "own")
	tester.Eq(t, spec.Rules, Concise.Rules)
}

func TestPromptSpecRender_Incomplete(t *testing.T) {
	_, err := PromptSpec{Purpose: "x"}.Render()
	tester.True(t, err != nil)
	_, err = PromptSpec{Output: []PromptField{{Name: "a", Type: "string"}}}.Render()
	tester.True(t, err != nil)
}
