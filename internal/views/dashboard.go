package views

import (
	"storepulse/internal/dataprocessing"
	"storepulse/pkg/contracts/domain"
)

// Build assembles the full dashboard for one pipeline result
func Build(res dataprocessing.Result, opts domain.FilterOptions) domain.DashboardView {
	return domain.DashboardView{
		Filters:  res.Filters,
		Options:  opts,
		Summary:  res.Summary,
		Map:      BuildMap(res.View),
		BarChart: BuildBarChart(res.TopVisits),
		Scatter:  BuildScatter(res.View),
		Table:    BuildTable(res.Segmented),
	}
}
