// Package exporter writes the segmented store table as CSV.
//
// SegmentColumns and SegmentCells define the table layout. The on-screen
// table is built from them, and WriteTable writes exactly those cells, so a
// download always matches what is displayed.
//
//	table := views.BuildTable(rows)
//	err := exporter.WriteTable(w, table)
//
// CSVWriter writes the same table to a file below the export directory,
// optionally with a UTF-8 BOM for Excel.
package exporter
