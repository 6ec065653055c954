package views

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/internal/dataprocessing"
	"storepulse/internal/exporter"
	"storepulse/pkg/contracts/domain"
)

func TestBuild(t *testing.T) {
	res := sampleResult()
	view := Build(res, domain.FilterOptions{HasCluster: true})

	assert.Equal(t, res.Summary, view.Summary)
	assert.Len(t, view.Map.Markers, len(res.View))
	assert.Len(t, view.Scatter.Points, len(res.View))
	assert.Len(t, view.BarChart.Categories, len(res.TopVisits))
	require.Len(t, view.Table.Rows, len(res.Segmented))
	assert.True(t, view.Options.HasCluster)

	// gap descending, missing last
	var order []string
	for _, row := range view.Table.Rows {
		order = append(order, row.Row.LocationName)
	}
	assert.Equal(t, []string{"Star Market", "Stop & Shop", "Whole Foods", "Roche Bros"}, order)
}

func TestBuildTable_MatchesExport(t *testing.T) {
	res := sampleResult()
	table := BuildTable(res.Segmented)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteTable(&buf, table))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(table.Rows)+1)
	assert.Equal(t, table.Columns, records[0])
	for i, row := range table.Rows {
		assert.Equal(t, row.Cells, records[i+1])
	}
}

func TestBuild_EmptyView(t *testing.T) {
	ds := &domain.Dataset{Records: sampleRecords(), HasCluster: true, HasIncomeGroup: true}
	opts := dataprocessing.Options(ds)
	state := dataprocessing.DefaultFilterState(opts)
	state.Clusters = []float64{}

	view := Build(dataprocessing.Run(ds, opts, state), opts)

	assert.Equal(t, 0, view.Summary.RowCount)
	assert.Equal(t, "N/A", view.Summary.AverageGapDisplay)
	assert.Empty(t, view.Map.Markers)
	assert.Nil(t, view.Scatter.Reference)
	assert.Empty(t, view.Table.Rows)
	assert.Equal(t, exporter.SegmentColumns, view.Table.Columns)
}
