package views

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/internal/dataprocessing"
	"storepulse/pkg/contracts/domain"
)

func TestMarkerColor(t *testing.T) {
	tests := []struct {
		name    string
		cluster domain.Optional[float64]
		want    string
	}{
		{"cluster 0", domain.Some(0.0), "red"},
		{"cluster 1", domain.Some(1.0), "blue"},
		{"cluster 2", domain.Some(2.0), "green"},
		{"other cluster", domain.Some(3.0), "gray"},
		{"missing cluster", domain.Missing[float64](), "gray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkerColor(tt.cluster))
		})
	}
}

func TestPopup(t *testing.T) {
	r := record(0, "Star <Market>", 42.3, -71.1, 150.9, 99.96, domain.Some(50.94), domain.Some(0.0), domain.Some("High"))
	popup := Popup(r)

	assert.Contains(t, popup, "<b>Star &lt;Market&gt;</b>")
	assert.Contains(t, popup, "Actual Visits: 150<br>")
	assert.Contains(t, popup, "Huff Predicted (scaled): 100.0<br>")
	assert.Contains(t, popup, "Gap: 50.9<br>")
	assert.Contains(t, popup, "Cluster: 0<br>")
	assert.Contains(t, popup, "Income Group: High")
}

func TestPopup_MissingValues(t *testing.T) {
	r := record(0, "Corner", 42.3, -71.1, 10, 10, domain.Missing[float64](), domain.Missing[float64](), domain.Missing[string]())
	popup := Popup(r)

	assert.Contains(t, popup, "Gap: N/A<br>")
	assert.Contains(t, popup, "Cluster: N/A<br>")
	assert.Contains(t, popup, "Income Group: N/A")
}

func TestBuildMap(t *testing.T) {
	m := BuildMap(sampleRecords())

	require.Len(t, m.Markers, 4)
	assert.Equal(t, MapZoom, m.Zoom)
	require.NotNil(t, m.Center)
	assert.InDelta(t, 42.345, m.Center.Lat, 1e-9)
	assert.InDelta(t, -71.06, m.Center.Lng, 1e-9)

	require.NotNil(t, m.Bounds)
	assert.InDelta(t, 42.30, m.Bounds.SouthWest.Lat, 1e-9)
	assert.InDelta(t, -71.09, m.Bounds.SouthWest.Lng, 1e-9)
	assert.InDelta(t, 42.38, m.Bounds.NorthEast.Lat, 1e-9)
	assert.InDelta(t, -71.03, m.Bounds.NorthEast.Lng, 1e-9)

	assert.Equal(t, "red", m.Markers[0].Color)
	assert.Equal(t, "gray", m.Markers[3].Color)
	assert.Equal(t, MarkerRadius, m.Markers[0].Radius)
}

func TestBuildMap_Empty(t *testing.T) {
	m := BuildMap(nil)

	assert.NotNil(t, m.Markers)
	assert.Empty(t, m.Markers)
	assert.Nil(t, m.Center)
	assert.Nil(t, m.Bounds)
}

func TestGeoJSON(t *testing.T) {
	rows := dataprocessing.Segment(sampleRecords())
	data, err := GeoJSON(rows)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 4)

	first := fc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{-71.09, 42.34}, first.Geometry.Coordinates)
	assert.Equal(t, "Star Market", first.Properties["location_name"])
	assert.Equal(t, "Strong Performer", first.Properties["performance_segment"])

	last := fc.Features[3]
	assert.Equal(t, "Roche Bros", last.Properties["location_name"])
	assert.Nil(t, last.Properties["visits_gap_scaled"])
}

func TestGeoJSON_Empty(t *testing.T) {
	data, err := GeoJSON(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}
