package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"storepulse/internal/errors"
	"storepulse/pkg/contracts/domain"
)

// ParseFile reads the scaled store spreadsheet into a Dataset.
// An empty sheet name selects the first sheet of the workbook.
func ParseFile(filePath, sheet string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err).WithContext("path", filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", filePath)
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, errors.NewParsingError(fmt.Sprintf("sheet %q not found", sheet), nil).
			WithContext("path", filePath).
			WithContext("sheets", sheets)
	}

	// Raw values keep numbers free of the cell number format
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.NewParsingError("failed to read rows", err).WithContext("sheet", sheet)
	}

	ds, err := ParseRows(rows)
	if err != nil {
		return nil, err
	}

	ds.Source = filePath
	ds.Sheet = sheet
	ds.LoadedAt = time.Now()

	slog.Debug("Parsed store workbook",
		slog.String("path", filePath),
		slog.String("sheet", sheet),
		slog.Int("rows", ds.Len()),
		slog.Int("dropped_rows", ds.DroppedRows))

	return ds, nil
}

// ParseRows builds a Dataset from raw sheet rows. The first row is the header.
// Rows missing latitude, longitude, visit_count or huff_predicted_visits_scaled
// are dropped and counted.
func ParseRows(rows [][]string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewParsingError("sheet is empty", nil)
	}

	columnMap := make(map[string]int)
	for j, header := range rows[0] {
		name := strings.TrimSpace(header)
		if _, exists := columnMap[name]; !exists && name != "" {
			columnMap[name] = j
		}
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, exists := columnMap[col]; !exists {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("columns", missing)
	}

	_, hasCluster := columnMap[domain.ColumnCluster]
	_, hasIncome := columnMap[domain.ColumnIncomeGroup]

	ds := &domain.Dataset{
		HasCluster:     hasCluster,
		HasIncomeGroup: hasIncome,
		Records:        make([]domain.Record, 0, len(rows)-1),
	}

	cell := func(row []string, col string) (string, bool) {
		idx, exists := columnMap[col]
		if !exists || idx >= len(row) {
			return "", false
		}
		return row[idx], true
	}

	number := func(row []string, col string) domain.Optional[float64] {
		raw, ok := cell(row, col)
		if !ok {
			return domain.Missing[float64]()
		}
		return CoerceFloat(raw)
	}

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		ds.TotalRows++

		lat := number(row, domain.ColumnLatitude)
		lng := number(row, domain.ColumnLongitude)
		visits := number(row, domain.ColumnVisitCount)
		predicted := number(row, domain.ColumnHuffPredicted)
		if !lat.Valid || !lng.Valid || !visits.Valid || !predicted.Valid {
			ds.DroppedRows++
			continue
		}

		name, _ := cell(row, domain.ColumnLocationName)

		record := domain.Record{
			Index:         i,
			LocationName:  strings.TrimSpace(name),
			Latitude:      lat.Value,
			Longitude:     lng.Value,
			VisitCount:    visits.Value,
			HuffPredicted: predicted.Value,
			Gap:           number(row, domain.ColumnGap),
		}

		if hasCluster {
			record.Cluster = number(row, domain.ColumnCluster)
		}
		if hasIncome {
			if raw, ok := cell(row, domain.ColumnIncomeGroup); ok && strings.TrimSpace(raw) != "" {
				record.IncomeGroup = domain.Some(strings.TrimSpace(raw))
			}
		}

		ds.Records = append(ds.Records, record)
	}

	return ds, nil
}

// CoerceFloat parses a cell as a number. Blank, unparsable, NaN and infinite
// values come back missing instead of failing.
func CoerceFloat(raw string) domain.Optional[float64] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Missing[float64]()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Missing[float64]()
	}
	return domain.Some(v)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
