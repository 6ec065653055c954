package dataprocessing

import (
	"math"
	"sort"

	"storepulse/pkg/contracts/domain"
)

// BarChartLimit is the number of stores shown in the visits bar chart
const BarChartLimit = 20

// Classify labels a gap. Both thresholds are exclusive, so exactly +20 and
// -20 are On Target, as is a missing gap.
func Classify(gap domain.Optional[float64]) domain.Segment {
	g, ok := gap.Get()
	switch {
	case !ok:
		return domain.SegmentOnTarget
	case g > domain.StrongPerformerThreshold:
		return domain.SegmentStrongPerformer
	case g < domain.OpportunityThreshold:
		return domain.SegmentOpportunityArea
	default:
		return domain.SegmentOnTarget
	}
}

// Segment labels every record of the view and orders the rows by gap,
// largest first. Ties keep dataset order and rows without a gap go last.
func Segment(view []domain.Record) []domain.SegmentedRow {
	rows := make([]domain.SegmentedRow, len(view))
	for i, r := range view {
		row := domain.SegmentedRow{
			Record:  r,
			Segment: Classify(r.Gap),
		}
		if gap, ok := r.Gap.Get(); ok {
			row.AbsGap = domain.Some(math.Abs(gap))
		}
		rows[i] = row
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return descendingMissingLast(rows[i].Gap, rows[j].Gap)
	})

	return rows
}

// MostNotable returns a copy of rows ordered by absolute gap, largest first.
// Nothing is truncated.
func MostNotable(rows []domain.SegmentedRow) []domain.SegmentedRow {
	out := append([]domain.SegmentedRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return descendingMissingLast(out[i].AbsGap, out[j].AbsGap)
	})
	return out
}

// TopByVisits returns at most n records with the most actual visits.
// Ties keep dataset order. The view is not modified.
func TopByVisits(view []domain.Record, n int) []domain.Record {
	out := append([]domain.Record(nil), view...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitCount > out[j].VisitCount
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CountSegments tallies rows per segment label
func CountSegments(rows []domain.SegmentedRow) map[domain.Segment]int {
	counts := make(map[domain.Segment]int, len(domain.Segments))
	for _, r := range rows {
		counts[r.Segment]++
	}
	return counts
}

func descendingMissingLast(a, b domain.Optional[float64]) bool {
	switch {
	case a.Valid && b.Valid:
		return a.Value > b.Value
	case a.Valid:
		return true
	default:
		return false
	}
}
