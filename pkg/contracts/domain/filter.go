package domain

// GapRange is the integer slider selection over visits_gap_scaled
type GapRange struct {
	Lo int `json:"lo"`
	Hi int `json:"hi" validate:"gtefield=Lo"`
}

// FilterState is the user's current filter selection.
//
// A nil selection slice means the filter is not engaged and contributes no
// constraint. A non-nil empty slice means the user deselected everything.
type FilterState struct {
	Clusters     []float64 `json:"clusters"`
	IncomeGroups []string  `json:"income_groups"`
	GapRange     *GapRange `json:"gap_range,omitempty"`
}

// GapBounds are the slider limits derived from the unfiltered dataset
type GapBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions are the choices offered by the filter controls.
// They are computed once from the whole dataset.
type FilterOptions struct {
	HasCluster     bool      `json:"has_cluster"`
	Clusters       []float64 `json:"clusters"`
	HasIncomeGroup bool      `json:"has_income_group"`
	IncomeGroups   []string  `json:"income_groups"`
	HasGap         bool      `json:"has_gap"`
	Gap            GapBounds `json:"gap"`
}
