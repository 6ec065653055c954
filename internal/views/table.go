package views

import (
	"storepulse/internal/exporter"
	"storepulse/pkg/contracts/domain"
)

// BuildTable renders segmented rows in the given order using the export
// cell layout, so the CSV download always matches the table.
func BuildTable(rows []domain.SegmentedRow) domain.TableView {
	table := domain.TableView{
		Columns: exporter.SegmentColumns,
		Rows:    make([]domain.TableRow, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, domain.TableRow{
			Cells: exporter.SegmentCells(r),
			Row:   r,
		})
	}
	return table
}
