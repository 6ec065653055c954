package views

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"storepulse/pkg/contracts/domain"
)

// Map rendering defaults
const (
	MapZoom       = 12
	MarkerRadius  = 6
	MarkerOpacity = 0.7
	DefaultColor  = "gray"
)

// ClusterColors maps cluster ids to marker colours. Any other cluster,
// or a missing one, is drawn in DefaultColor.
var ClusterColors = map[float64]string{
	0: "red",
	1: "blue",
	2: "green",
}

// MarkerColor returns the colour for a cluster
func MarkerColor(cluster domain.Optional[float64]) string {
	if c, ok := cluster.Get(); ok {
		if color, found := ClusterColors[c]; found {
			return color
		}
	}
	return DefaultColor
}

// Popup builds the HTML shown when a marker is clicked
func Popup(r domain.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b><br>", html.EscapeString(r.LocationName))
	fmt.Fprintf(&b, "Actual Visits: %d<br>", int64(r.VisitCount))
	fmt.Fprintf(&b, "Huff Predicted (scaled): %s<br>", formatOneDecimal(r.HuffPredicted))
	fmt.Fprintf(&b, "Gap: %s<br>", formatOptionalOneDecimal(r.Gap))
	fmt.Fprintf(&b, "Cluster: %s<br>", clusterLabel(r.Cluster))
	fmt.Fprintf(&b, "Income Group: %s", html.EscapeString(r.IncomeGroup.OrElse(notAvailable)))
	return b.String()
}

// BuildMap places one marker per row. Center and Bounds are nil when the
// view is empty.
func BuildMap(rows []domain.Record) domain.MapView {
	m := domain.MapView{
		Zoom:    MapZoom,
		Markers: make([]domain.Marker, 0, len(rows)),
	}
	if len(rows) == 0 {
		return m
	}

	rect := s2.EmptyRect()
	var sumLat, sumLng float64
	for _, r := range rows {
		sumLat += r.Latitude
		sumLng += r.Longitude
		rect = rect.AddPoint(s2.LatLngFromDegrees(r.Latitude, r.Longitude))

		m.Markers = append(m.Markers, domain.Marker{
			Name:     r.LocationName,
			Position: domain.LatLng{Lat: r.Latitude, Lng: r.Longitude},
			Color:    MarkerColor(r.Cluster),
			Radius:   MarkerRadius,
			Popup:    Popup(r),
			Cluster:  clusterLabel(r.Cluster),
			Opacity:  MarkerOpacity,
		})
	}

	n := float64(len(rows))
	m.Center = &domain.LatLng{Lat: sumLat / n, Lng: sumLng / n}
	lo, hi := rect.Lo(), rect.Hi()
	m.Bounds = &domain.Bounds{
		SouthWest: domain.LatLng{Lat: lo.Lat.Degrees(), Lng: lo.Lng.Degrees()},
		NorthEast: domain.LatLng{Lat: hi.Lat.Degrees(), Lng: hi.Lng.Degrees()},
	}
	return m
}

// GeoJSON encodes the rows as a FeatureCollection of points with the
// store attributes as properties
func GeoJSON(rows []domain.SegmentedRow) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(rows))}

	for _, r := range rows {
		point := geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}).SetSRID(4326)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       fmt.Sprintf("%d", r.Index),
			Geometry: point,
			Properties: map[string]any{
				domain.ColumnLocationName:  r.LocationName,
				domain.ColumnVisitCount:    r.VisitCount,
				domain.ColumnHuffPredicted: r.HuffPredicted,
				domain.ColumnGap:           r.Gap,
				domain.ColumnCluster:       r.Cluster,
				domain.ColumnIncomeGroup:   r.IncomeGroup,
				"performance_segment":      r.Segment,
				"color":                    MarkerColor(r.Cluster),
			},
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return data, nil
}
