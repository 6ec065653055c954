package domain

// AverageGapUnavailable is displayed when the view has no gap values
const AverageGapUnavailable = "N/A"

// Summary holds the headline metrics of a filtered view
type Summary struct {
	RowCount             int               `json:"row_count"`
	TotalActualVisits    int64             `json:"total_actual_visits"`
	TotalPredictedVisits int64             `json:"total_predicted_visits"`
	AverageGap           Optional[float64] `json:"average_gap"`
	AverageGapDisplay    string            `json:"average_gap_display"`
}
