package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storepulse/pkg/contracts/domain"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline metrics for the filtered stores",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := viewRequest(cmd)
		if err != nil {
			return err
		}

		view, err := newDashboardService().View(commandContext(cmd), sourceCLI, req)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}

		out := cmd.OutOrStdout()
		if summaryJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view.Summary)
		}
		return printSummary(cmd, view.Summary)
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print the summary as JSON")
}

func printSummary(cmd *cobra.Command, s domain.Summary) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Stores\t%d\n", s.RowCount)
	fmt.Fprintf(tw, "Total Actual Visits\t%d\n", s.TotalActualVisits)
	fmt.Fprintf(tw, "Total Huff Predicted (Scaled)\t%d\n", s.TotalPredictedVisits)
	fmt.Fprintf(tw, "Average Gap (Actual - Predicted)\t%s\n", s.AverageGapDisplay)
	return tw.Flush()
}
