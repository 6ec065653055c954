package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// StoreHeader is the column layout of the scaled store spreadsheet
var StoreHeader = []any{
	"location_name", "latitude", "longitude", "visit_count",
	"huff_predicted_visits_scaled", "visits_gap_scaled", "cluster", "income_group",
}

// SampleStoreRows is a small Boston dataset covering every segment,
// each cluster colour and a blank gap.
func SampleStoreRows() [][]any {
	return [][]any{
		{"Star Market Fenway", 42.3467, -71.0972, 150, 100, 50, 0, "High"},
		{"Stop & Shop Dorchester", 42.3001, -71.0589, 80, 78, 2, 1, "Low"},
		{"Whole Foods Charles River", 42.3601, -71.0700, 40, 90, -50, 2, "High"},
		{"Roche Bros Downtown", 42.3554, -71.0605, 60, 60, "", 1, "Medium"},
		{"Trader Joe's Back Bay", 42.3493, -71.0840, 120, 99.99, 20.01, 0, "Medium"},
		{"Market Basket Chelsea", 42.3918, -71.0328, 70, 90, -20, 3, "Low"},
	}
}

// WriteWorkbook writes header and rows to a fresh xlsx file in t.TempDir()
// and returns its path. Cells holding "" are left blank.
func WriteWorkbook(t *testing.T, sheet string, header []any, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	} else {
		sheet = "Sheet1"
	}

	all := append([][]any{header}, rows...)
	for i, row := range all {
		for j, v := range row {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set %s: %v", cell, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), fmt.Sprintf("%s.xlsx", sheet))
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteSampleWorkbook writes SampleStoreRows with the standard header
func WriteSampleWorkbook(t *testing.T) string {
	t.Helper()
	return WriteWorkbook(t, "", StoreHeader, SampleStoreRows())
}
