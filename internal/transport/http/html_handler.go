package http

import (
	"bytes"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"storepulse/internal/exporter"
	"storepulse/pkg/contracts"
	"storepulse/pkg/contracts/domain"
)

//go:embed web/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// PageData is rendered into the dashboard page
type PageData struct {
	Title          string
	Version        string
	ExportFileName string
	Segments       []SegmentDefinition
}

// SegmentDefinition is one entry of the segment legend
type SegmentDefinition struct {
	Name        string
	Description string
}

// NewPageData builds the static page content
func NewPageData(title string) PageData {
	defs := make([]SegmentDefinition, 0, len(domain.Segments))
	for _, s := range domain.Segments {
		defs = append(defs, SegmentDefinition{Name: s.String(), Description: s.Description()})
	}
	return PageData{
		Title:          title,
		Version:        contracts.Version,
		ExportFileName: exporter.SegmentsFileName,
		Segments:       defs,
	}
}

// ServeDashboard serves the dashboard page. The page is rendered once; all
// data is fetched by the browser from the API and the WebSocket.
func ServeDashboard(data PageData, logger *slog.Logger) http.HandlerFunc {
	var buf bytes.Buffer
	renderErr := indexTemplate.Execute(&buf, data)
	if renderErr != nil {
		logger.Error("Failed to render dashboard page", slog.String("error", renderErr.Error()))
	}
	page := buf.Bytes()

	return func(w http.ResponseWriter, r *http.Request) {
		if renderErr != nil {
			http.Error(w, "Error rendering page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(page)
	}
}
