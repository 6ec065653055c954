package domain

// LatLng is a geographic coordinate in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a lat/lng bounding box
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// Marker is one store on the map
type Marker struct {
	Name     string  `json:"name"`
	Position LatLng  `json:"position"`
	Color    string  `json:"color"`
	Radius   int     `json:"radius"`
	Popup    string  `json:"popup"`
	Cluster  string  `json:"cluster"`
	Opacity  float64 `json:"fill_opacity"`
}

// MapView is the store map
type MapView struct {
	Center  *LatLng  `json:"center"`
	Zoom    int      `json:"zoom"`
	Bounds  *Bounds  `json:"bounds"`
	Markers []Marker `json:"markers"`
}

// BarSeries is one grouped series of the bar chart
type BarSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// BarChart compares actual and predicted visits for the busiest stores
type BarChart struct {
	Title      string      `json:"title"`
	Categories []string    `json:"categories"`
	Series     []BarSeries `json:"series"`
}

// ScatterPoint is one store in the scatter chart
type ScatterPoint struct {
	Name      string  `json:"name"`
	Predicted float64 `json:"x"`
	Actual    float64 `json:"y"`
	Cluster   string  `json:"cluster"`
}

// ReferenceLine is the dashed perfect-prediction line
type ReferenceLine struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Dash  string  `json:"dash"`
	Color string  `json:"color"`
}

// ScatterChart plots predicted against actual visits
type ScatterChart struct {
	Title     string         `json:"title"`
	XLabel    string         `json:"x_label"`
	YLabel    string         `json:"y_label"`
	Opacity   float64        `json:"opacity"`
	Points    []ScatterPoint `json:"points"`
	Reference *ReferenceLine `json:"reference,omitempty"`
}

// TableRow is one row of the segmented table.
// Cells are the exact strings shown on screen and written to CSV.
type TableRow struct {
	Cells []string     `json:"cells"`
	Row   SegmentedRow `json:"row"`
}

// TableView is the segmented performance table
type TableView struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// DashboardView is everything rendered for one filter state
type DashboardView struct {
	Filters  FilterState   `json:"filters"`
	Options  FilterOptions `json:"options"`
	Summary  Summary       `json:"summary"`
	Map      MapView       `json:"map"`
	BarChart BarChart      `json:"bar_chart"`
	Scatter  ScatterChart  `json:"scatter_chart"`
	Table    TableView     `json:"table"`
}
