package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"storepulse/pkg/contracts/domain"
)

const (
	// SegmentsFileName is the download name of the segmented table
	SegmentsFileName = "boston_store_performance_segments.csv"
	// SegmentsMIMEType is the content type of the download
	SegmentsMIMEType = "text/csv"
)

// SegmentColumns is the column layout shared by the on-screen table and the CSV
var SegmentColumns = []string{
	domain.ColumnLocationName,
	domain.ColumnVisitCount,
	domain.ColumnHuffPredicted,
	domain.ColumnGap,
	"performance_segment",
	domain.ColumnCluster,
	domain.ColumnIncomeGroup,
	domain.ColumnLatitude,
	domain.ColumnLongitude,
}

// SegmentCells renders one segmented row in SegmentColumns order
func SegmentCells(row domain.SegmentedRow) []string {
	return []string{
		row.LocationName,
		formatFloat(row.VisitCount),
		formatFloat(row.HuffPredicted),
		formatOptionalFloat(row.Gap),
		row.Segment.String(),
		formatOptionalFloat(row.Cluster),
		formatOptionalString(row.IncomeGroup),
		formatFloat(row.Latitude),
		formatFloat(row.Longitude),
	}
}

// WriteTable writes the table's columns and cells as CSV, rows in display
// order. An empty table yields the header line only.
func WriteTable(w io.Writer, table domain.TableView) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range table.Rows {
		if err := writer.Write(row.Cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// TableRecords flattens the table cells for CSVWriter
func TableRecords(table domain.TableView) [][]string {
	records := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		records[i] = row.Cells
	}
	return records
}
