package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storepulse/internal/dataprocessing"
	"storepulse/internal/views"
	"storepulse/pkg/contracts/domain"
)

var (
	segmentsLimit   int
	segmentsNotable bool
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Print the performance segment table, largest gap first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := viewRequest(cmd)
		if err != nil {
			return err
		}

		table, err := newDashboardService().Table(commandContext(cmd), sourceCLI, req)
		if err != nil {
			return fmt.Errorf("segments: %w", err)
		}

		rows := table.Rows
		if segmentsNotable {
			segmented := make([]domain.SegmentedRow, len(rows))
			for i, row := range rows {
				segmented[i] = row.Row
			}
			rows = views.BuildTable(dataprocessing.MostNotable(segmented)).Rows
		}
		if segmentsLimit > 0 && segmentsLimit < len(rows) {
			rows = rows[:segmentsLimit]
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
		for _, row := range rows {
			fmt.Fprintln(tw, strings.Join(row.Cells, "\t"))
		}
		return tw.Flush()
	},
}

func init() {
	segmentsCmd.Flags().IntVar(&segmentsLimit, "limit", 0, "print at most this many rows (0 = all)")
	segmentsCmd.Flags().BoolVar(&segmentsNotable, "notable", false, "order by absolute gap so the biggest misses in either direction come first")
}
