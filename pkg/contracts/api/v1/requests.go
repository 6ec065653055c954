// Package api contains the HTTP request and response contracts of the dashboard API.
// Version v1 represents the current stable API version.
package api

import (
	"storepulse/pkg/contracts"
	"storepulse/pkg/contracts/domain"
)

// ViewRequest is a filter selection received as a JSON body.
// Omitted selections fall back to the defaults (every option selected).
type ViewRequest struct {
	Clusters     *[]float64 `json:"clusters,omitempty"`
	IncomeGroups *[]string  `json:"income_groups,omitempty" validate:"omitempty,dive,max=128"`
	GapMin       *int       `json:"gap_min,omitempty"`
	GapMax       *int       `json:"gap_max,omitempty"`
}

// ToFilterState merges the request over defaults.
// A present but empty selection stays empty. Gap bounds are ignored when the
// defaults have no gap range, since the dataset has no gap column to bound.
func (r ViewRequest) ToFilterState(defaults domain.FilterState) domain.FilterState {
	state := defaults

	if r.Clusters != nil {
		state.Clusters = append([]float64{}, (*r.Clusters)...)
	}
	if r.IncomeGroups != nil {
		state.IncomeGroups = append([]string{}, (*r.IncomeGroups)...)
	}

	if defaults.GapRange != nil && (r.GapMin != nil || r.GapMax != nil) {
		gap := *defaults.GapRange
		if r.GapMin != nil {
			gap.Lo = *r.GapMin
		}
		if r.GapMax != nil {
			gap.Hi = *r.GapMax
		}
		state.GapRange = &gap
	}

	return state
}

// ExportRequest asks for the segmented table of a filter selection
type ExportRequest struct {
	ViewRequest
	Filename string `json:"filename,omitempty" validate:"omitempty,filename,max=128,endswith=.csv"`
}

// OptionsResponse lists the filter choices for the controls
type OptionsResponse struct {
	Options  domain.FilterOptions `json:"options"`
	Defaults domain.FilterState   `json:"defaults"`
}

// DatasetInfo describes the loaded spreadsheet
type DatasetInfo struct {
	Source      string `json:"source"`
	Sheet       string `json:"sheet,omitempty"`
	Rows        int    `json:"rows"`
	TotalRows   int    `json:"total_rows"`
	DroppedRows int    `json:"dropped_rows"`
	LoadedAt    string `json:"loaded_at"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status  string                 `json:"status"`
	Version contracts.VersionInfo  `json:"version"`
	Uptime  string                 `json:"uptime"`
	Dataset *DatasetInfo           `json:"dataset,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is one health check outcome
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
