package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <layout.json>",
		Short: "Checks a layout for duplicate ids, unknown kinds and dangling connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(cmd, args[0])
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "INVALID: %v\n", err)
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "OK: %d components, %d connections\n",
				len(layout.Components), len(layout.Connections))
			return nil
		},
	}
}
