package llmtool

import (
	"errors"
	"testing"

	"infralab/internal/tester"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"nested with noise", `noise {"a": {"b":1}} trailing`, `{"a": {"b":1}}`},
		{"first object wins", `{"x":1} and {"y":2}`, `{"x":1}`},
		{"braces inside strings", `here: {"s": "a } b {", "n": 2}!`, `{"s": "a } b {", "n": 2}`},
		{"lone brace in string", `{"a":"{"}`, `{"a":"{"}`},
		{"escaped quote", `{"s": "say \"}\" now"}`, `{"s": "say \"}\" now"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			tester.NoErr(t, err)
			tester.Eq(t, got, tc.want)
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	for _, in := range []string{"no json here", `{"a": {"b": 1}`, ""} {
		_, err := ExtractJSON(in)
		var ee *ExtractionError
		tester.True(t, errors.As(err, &ee), "expected ExtractionError for %q", in)
	}
}
