package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `{
  "components": [
    {"id": "api", "type": "api_gateway"},
    {"id": "fn-1", "type": "lambda"},
    {"id": "fn-2", "type": "lambda"},
    {"id": "db", "type": "rds"}
  ],
  "connections": [["api", "fn-1"], ["api", "fn-2"], ["fn-1", "db"], ["fn-2", "db"]]
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeLayout(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	out, err := run(t, "", "validate", writeLayout(t, sampleLayout))
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 4 components, 4 connections")
}

func TestValidate_Invalid(t *testing.T) {
	body := `{"components":[{"id":"a","type":"lambda"}],"connections":[["a","ghost"]]}`
	out, err := run(t, "", "validate", writeLayout(t, body))
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "non-existent component: ghost")
}

func TestSimulate_Stdin(t *testing.T) {
	out, err := run(t, sampleLayout, "simulate", "-", "--goal", "low_cost")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal: low_cost")
	assert.Contains(t, out, "Estimated latency:")
	assert.NotContains(t, out, "Breakdown:")
}

func TestSimulate_Verbose(t *testing.T) {
	out, err := run(t, sampleLayout, "simulate", "-", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal: low_latency")
	assert.Contains(t, out, "Breakdown:")
	assert.Contains(t, out, "redundancy bonus:")
}

func TestSimulate_BadGoal(t *testing.T) {
	_, err := run(t, sampleLayout, "simulate", "-", "--goal", "fastest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported goal")
}

func TestCost(t *testing.T) {
	out, err := run(t, "", "cost", writeLayout(t, sampleLayout))
	require.NoError(t, err)
	// 120 + 20 + 2*5
	assert.Contains(t, out, "Total: $150.00 / month")
	assert.Less(t, strings.Index(out, "rds"), strings.Index(out, "lambda"))
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "", "cost", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
