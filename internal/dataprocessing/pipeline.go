package dataprocessing

import (
	"storepulse/pkg/contracts/domain"
)

// Result is everything one pipeline run derives from a filter state
type Result struct {
	Filters   domain.FilterState
	View      []domain.Record
	Summary   domain.Summary
	Segmented []domain.SegmentedRow
	TopVisits []domain.Record
}

// Run filters the dataset and derives the summary, the segmented rows and
// the bar chart view. It is a pure function of its inputs: the same dataset
// and filter state always give the same result.
func Run(ds *domain.Dataset, opts domain.FilterOptions, state domain.FilterState) Result {
	view := Apply(ds, opts, state)
	return Result{
		Filters:   state,
		View:      view,
		Summary:   Summarize(view),
		Segmented: Segment(view),
		TopVisits: TopByVisits(view, BarChartLimit),
	}
}
