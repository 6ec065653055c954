package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"storepulse/internal/exporter"
)

var (
	exportOut string
	exportBOM bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the segmented table to a CSV file",
	Long: `Writes the filtered performance segment table as CSV, in the same
column order and row order as the dashboard download. Relative paths are
placed under the configured exports directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := viewRequest(cmd)
		if err != nil {
			return err
		}

		table, err := newDashboardService().Table(commandContext(cmd), sourceCLI, req)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		path, err := exporter.NewCSVWriter(cfg.Paths.ExportsDir, logger).WriteTableFile(exportOut, table, exportBOM)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		logger.Info("Segments exported", slog.String("path", path), slog.Int("rows", len(table.Rows)))
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", len(table.Rows), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", exporter.SegmentsFileName, "output file")
	exportCmd.Flags().BoolVar(&exportBOM, "bom", false, "prefix the file with a UTF-8 byte order mark")
}
