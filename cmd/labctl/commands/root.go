package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"infralab/internal/topology"
)

// NewRootCmd builds the labctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labctl",
		Short: "labctl scores and prices infrastructure layouts offline",
		Long: `labctl reads a layout JSON file ({"components": [...], "connections": [...]})
and runs the same validation, metrics and pricing the gateway uses, without
calling a language model.`,
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(), newSimulateCmd(), newCostCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadLayout reads and validates a layout. "-" reads stdin.
func loadLayout(cmd *cobra.Command, path string) (topology.Layout, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return topology.Layout{}, err
		}
		defer f.Close()
		r = f
	}
	var layout topology.Layout
	if err := json.NewDecoder(r).Decode(&layout); err != nil {
		return topology.Layout{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return topology.Layout{}, err
	}
	return layout, nil
}
