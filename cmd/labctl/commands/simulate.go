package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"infralab/internal/metrics"
	"infralab/internal/topology"
)

func newSimulateCmd() *cobra.Command {
	var (
		goal    string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "simulate <layout.json>",
		Short: "Scores a layout's latency, scalability and cost index for a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := topology.ParseGoal(goal)
			if err != nil {
				return err
			}
			layout, err := loadLayout(cmd, args[0])
			if err != nil {
				return err
			}
			b := metrics.Analyze(layout, g)
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			bold.Fprintf(out, "Goal: %s\n", g)
			fmt.Fprintf(out, "Estimated latency:  %d ms\n", b.Result.LatencyMs)
			fmt.Fprintf(out, "Scalability score:  %d / 100\n", b.Result.Scalability)
			fmt.Fprintf(out, "Cost index:         %d / 100\n", b.Result.CostIndex)
			if !verbose {
				return nil
			}
			bold.Fprintln(out, "Breakdown:")
			fmt.Fprintf(out, "  service latency:  %.1f ms\n", b.ServiceLatencyMs)
			fmt.Fprintf(out, "  network latency:  %.1f ms\n", b.NetworkLatencyMs)
			fmt.Fprintf(out, "  cache=%t cdn=%t load_balancer=%t\n", b.HasCache, b.HasCDN, b.HasLoadBalancer)
			fmt.Fprintf(out, "  mean scalability: %.1f\n", b.MeanScalability)
			fmt.Fprintf(out, "  redundancy bonus: %.1f\n", b.RedundancyBonus)
			if b.Bottlenecks > 0 {
				color.New(color.FgYellow).Fprintf(out, "  bottlenecks:      %d\n", b.Bottlenecks)
			} else {
				fmt.Fprintf(out, "  bottlenecks:      %d\n", b.Bottlenecks)
			}
			fmt.Fprintf(out, "  adjustment:       latency x%.2f, scalability x%.2f, cost x%.2f\n",
				b.Adjustment.Latency, b.Adjustment.Scalability, b.Adjustment.Cost)
			return nil
		},
	}
	cmd.Flags().StringVarP(&goal, "goal", "g", string(topology.GoalLowLatency), "Optimization goal: low_latency, high_availability or low_cost")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print intermediate scoring terms")
	return cmd
}
