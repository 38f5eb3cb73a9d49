package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"infralab/internal/pricing"
)

func newCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost <layout.json>",
		Short: "Estimates the monthly cost of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(cmd, args[0])
			if err != nil {
				return err
			}
			total, items := pricing.Estimate(layout)
			out := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintf(out, "%-16s %3d x $%8.2f = $%9.2f\n", it.Service, it.Count, it.UnitMonthlyUSD, it.SubtotalMonthlyUSD)
			}
			color.New(color.Bold).Fprintf(out, "Total: $%.2f / month\n", total)
			return nil
		},
	}
}
