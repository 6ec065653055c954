package dataprocessing

import (
	"math"
	"strconv"

	"storepulse/pkg/contracts/domain"
)

// Summarize computes the headline metrics of a filtered view.
// Visit sums are truncated toward zero. The average gap covers rows that
// have a gap and is rounded to one decimal; with no gaps it is missing and
// displayed as domain.AverageGapUnavailable.
func Summarize(view []domain.Record) domain.Summary {
	var (
		actual, predicted float64
		gapSum            float64
		gapCount          int
	)

	for _, r := range view {
		actual += r.VisitCount
		predicted += r.HuffPredicted
		if gap, ok := r.Gap.Get(); ok {
			gapSum += gap
			gapCount++
		}
	}

	summary := domain.Summary{
		RowCount:             len(view),
		TotalActualVisits:    int64(actual),
		TotalPredictedVisits: int64(predicted),
		AverageGapDisplay:    domain.AverageGapUnavailable,
	}

	if gapCount > 0 {
		avg := RoundTo(gapSum/float64(gapCount), 1)
		summary.AverageGap = domain.Some(avg)
		summary.AverageGapDisplay = strconv.FormatFloat(avg, 'f', 1, 64)
	}

	return summary
}

// RoundTo rounds v to the given number of decimals, halves away from zero.
// Negative zero is normalized so it never prints as "-0.0".
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
