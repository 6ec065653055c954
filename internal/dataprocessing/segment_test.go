package dataprocessing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/pkg/contracts/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		gap  domain.Optional[float64]
		want domain.Segment
	}{
		{domain.Some(20.0), domain.SegmentOnTarget},
		{domain.Some(20.01), domain.SegmentStrongPerformer},
		{domain.Some(-20.0), domain.SegmentOnTarget},
		{domain.Some(-20.01), domain.SegmentOpportunityArea},
		{domain.Some(0.0), domain.SegmentOnTarget},
		{domain.Some(500.0), domain.SegmentStrongPerformer},
		{domain.Some(-500.0), domain.SegmentOpportunityArea},
		{domain.Missing[float64](), domain.SegmentOnTarget},
	}

	for _, tt := range tests {
		name := "missing"
		if tt.gap.Valid {
			name = fmt.Sprintf("%g", tt.gap.Value)
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.gap))
		})
	}
}

func TestSegment_TotalAndExclusive(t *testing.T) {
	rows := Segment(sampleDataset().Records)
	require.Len(t, rows, 6)

	for _, r := range rows {
		n := 0
		for _, s := range domain.Segments {
			if r.Segment == s {
				n++
			}
		}
		assert.Equal(t, 1, n, r.LocationName)
	}

	counts := CountSegments(rows)
	assert.Equal(t, 2, counts[domain.SegmentStrongPerformer])
	assert.Equal(t, 3, counts[domain.SegmentOnTarget])
	assert.Equal(t, 1, counts[domain.SegmentOpportunityArea])
}

func TestSegment_OrderByGapDescending(t *testing.T) {
	rows := Segment(sampleDataset().Records)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.LocationName
	}
	assert.Equal(t, []string{
		"Star Market Fenway",        // 50
		"Trader Joe's Back Bay",     // 20.01
		"Stop & Shop Dorchester",    // 2
		"Market Basket Chelsea",     // -20
		"Whole Foods Charles River", // -50
		"Roche Bros Downtown",       // missing
	}, got)

	assert.Equal(t, domain.Some(50.0), rows[4].AbsGap)
	assert.False(t, rows[5].AbsGap.Valid)
}

func TestSegment_StableForEqualGaps(t *testing.T) {
	view := []domain.Record{
		store(0, "first", 1, 1, f(5), nil, nil),
		store(1, "bigger", 1, 1, f(9), nil, nil),
		store(2, "second", 1, 1, f(5), nil, nil),
		store(3, "no gap a", 1, 1, nil, nil, nil),
		store(4, "third", 1, 1, f(5), nil, nil),
		store(5, "no gap b", 1, 1, nil, nil, nil),
	}

	rows := Segment(view)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.LocationName
	}
	assert.Equal(t, []string{"bigger", "first", "second", "third", "no gap a", "no gap b"}, got)
}

func TestSegment_EmptyView(t *testing.T) {
	assert.Empty(t, Segment(nil))
	assert.Empty(t, MostNotable(nil))
	assert.Empty(t, TopByVisits(nil, BarChartLimit))
}

func TestMostNotable(t *testing.T) {
	rows := Segment(sampleDataset().Records)
	notable := MostNotable(rows)

	got := make([]string, len(notable))
	for i, r := range notable {
		got[i] = r.LocationName
	}
	// 50 and -50 tie on abs gap and keep their segmented order
	assert.Equal(t, []string{
		"Star Market Fenway",
		"Whole Foods Charles River",
		"Trader Joe's Back Bay",
		"Market Basket Chelsea",
		"Stop & Shop Dorchester",
		"Roche Bros Downtown",
	}, got)

	// input order is untouched
	assert.Equal(t, "Trader Joe's Back Bay", rows[1].LocationName)
}

func TestTopByVisits(t *testing.T) {
	var view []domain.Record
	for i := 0; i < 25; i++ {
		view = append(view, store(i, fmt.Sprintf("store-%02d", i), float64(i%5), 1, nil, nil, nil))
	}

	top := TopByVisits(view, BarChartLimit)
	require.Len(t, top, BarChartLimit)

	// five stores per visit level; ties keep dataset order
	assert.Equal(t, "store-04", top[0].LocationName)
	assert.Equal(t, "store-09", top[1].LocationName)
	assert.Equal(t, "store-24", top[4].LocationName)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].VisitCount, top[i].VisitCount)
	}

	assert.Equal(t, "store-00", view[0].LocationName, "input is not reordered")
	assert.Len(t, TopByVisits(view[:3], BarChartLimit), 3)
}
