package views

import (
	"storepulse/pkg/contracts/domain"
)

// Chart titles and labels
const (
	BarChartTitle     = "Top 20 Stores: Actual vs. Predicted Visits"
	ScatterChartTitle = "Actual vs. Predicted Visits (All Stores)"
	PredictedLabel    = "Predicted Visits"
	ActualLabel       = "Actual Visits"
	ScatterOpacity    = 0.7
)

// BuildBarChart groups actual and predicted visits per store. rows must
// already be the top-by-visits view.
func BuildBarChart(rows []domain.Record) domain.BarChart {
	chart := domain.BarChart{
		Title:      BarChartTitle,
		Categories: make([]string, 0, len(rows)),
		Series: []domain.BarSeries{
			{Name: domain.ColumnVisitCount, Values: make([]float64, 0, len(rows))},
			{Name: domain.ColumnHuffPredicted, Values: make([]float64, 0, len(rows))},
		},
	}

	for _, r := range rows {
		chart.Categories = append(chart.Categories, r.LocationName)
		chart.Series[0].Values = append(chart.Series[0].Values, r.VisitCount)
		chart.Series[1].Values = append(chart.Series[1].Values, r.HuffPredicted)
	}
	return chart
}

// BuildScatter plots every row. The dashed reference line runs from the
// origin to (max predicted, max predicted) and is omitted for an empty view.
func BuildScatter(rows []domain.Record) domain.ScatterChart {
	chart := domain.ScatterChart{
		Title:   ScatterChartTitle,
		XLabel:  PredictedLabel,
		YLabel:  ActualLabel,
		Opacity: ScatterOpacity,
		Points:  make([]domain.ScatterPoint, 0, len(rows)),
	}
	if len(rows) == 0 {
		return chart
	}

	maxPredicted := rows[0].HuffPredicted
	for _, r := range rows {
		maxPredicted = max(maxPredicted, r.HuffPredicted)
		chart.Points = append(chart.Points, domain.ScatterPoint{
			Name:      r.LocationName,
			Predicted: r.HuffPredicted,
			Actual:    r.VisitCount,
			Cluster:   clusterLabel(r.Cluster),
		})
	}

	chart.Reference = &domain.ReferenceLine{
		X1:    maxPredicted,
		Y1:    maxPredicted,
		Dash:  "dash",
		Color: "gray",
	}
	return chart
}
