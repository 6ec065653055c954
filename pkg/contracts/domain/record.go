package domain

import (
	"time"
)

// Spreadsheet column names
const (
	ColumnLocationName  = "location_name"
	ColumnLatitude      = "latitude"
	ColumnLongitude     = "longitude"
	ColumnVisitCount    = "visit_count"
	ColumnHuffPredicted = "huff_predicted_visits_scaled"
	ColumnGap           = "visits_gap_scaled"
	ColumnCluster       = "cluster"
	ColumnIncomeGroup   = "income_group"
)

// RequiredColumns must all be present in the header row of the input sheet
var RequiredColumns = []string{
	ColumnLatitude,
	ColumnLongitude,
	ColumnVisitCount,
	ColumnHuffPredicted,
	ColumnGap,
	ColumnLocationName,
}

// Record is one store observation.
// Latitude, Longitude, VisitCount and HuffPredicted are guaranteed present
// for every record of a loaded Dataset.
type Record struct {
	Index         int               `json:"index"`
	LocationName  string            `json:"location_name"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	VisitCount    float64           `json:"visit_count"`
	HuffPredicted float64           `json:"huff_predicted_visits_scaled"`
	Gap           Optional[float64] `json:"visits_gap_scaled"`
	Cluster       Optional[float64] `json:"cluster"`
	IncomeGroup   Optional[string]  `json:"income_group"`
}

// Dataset is the loaded spreadsheet. It is shared read-only between
// pipeline runs; derived views copy records instead of mutating them.
type Dataset struct {
	Source         string    `json:"source"`
	Sheet          string    `json:"sheet"`
	Records        []Record  `json:"records"`
	HasCluster     bool      `json:"has_cluster"`
	HasIncomeGroup bool      `json:"has_income_group"`
	TotalRows      int       `json:"total_rows"`
	DroppedRows    int       `json:"dropped_rows"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
