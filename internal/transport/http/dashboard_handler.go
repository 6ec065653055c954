package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "storepulse/internal/errors"
	"storepulse/internal/exporter"
	"storepulse/internal/services"
	api "storepulse/pkg/contracts/api/v1"
)

// Query parameters accepted by the dashboard endpoints
const (
	ParamCluster     = "cluster"
	ParamIncomeGroup = "income_group"
	ParamGapMin      = "gap_min"
	ParamGapMax      = "gap_max"
	ParamFilename    = "filename"
)

// GeoJSONContentType is the media type of the map endpoint
const GeoJSONContentType = "application/geo+json"

const sourceHTTP = "http"

// DashboardHandler serves the dashboard view, its CSV export and the map
// as GeoJSON
type DashboardHandler struct {
	service      DashboardServiceInterface
	validator    StructValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error handling
func NewDashboardHandler(service DashboardServiceInterface, validator StructValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/options", h.GetOptions)
	r.Get("/view", h.GetView)
	r.Post("/view", h.PostView)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/map.geojson", h.GetGeoJSON)

	return r
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Options(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetView handles GET /api/dashboard/view with filters as query parameters
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	req, err := ParseViewQuery(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.renderView(w, r, req)
}

// PostView handles POST /api/dashboard/view with filters as a JSON body
func (h *DashboardHandler) PostView(w http.ResponseWriter, r *http.Request) {
	var req api.ViewRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.renderView(w, r, req)
}

func (h *DashboardHandler) renderView(w http.ResponseWriter, r *http.Request, req api.ViewRequest) {
	view, err := h.service.View(r.Context(), sourceHTTP, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// ExportCSV handles GET /api/dashboard/export.csv. The file holds exactly
// the rows of the segmented table for the same filters.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	viewReq, err := ParseViewQuery(query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	req := api.ExportRequest{ViewRequest: viewReq, Filename: query.Get(ParamFilename)}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = exporter.SegmentsFileName
	}

	// Buffer so a failure can still be reported as a problem response
	var buf bytes.Buffer
	rows, err := h.service.Export(r.Context(), sourceHTTP, req.ViewRequest, &buf)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exporter.SegmentsMIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Row-Count", strconv.Itoa(rows))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "CSV download interrupted",
			slog.String("error", err.Error()))
	}
}

// GetGeoJSON handles GET /api/dashboard/map.geojson
func (h *DashboardHandler) GetGeoJSON(w http.ResponseWriter, r *http.Request) {
	req, err := ParseViewQuery(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := h.service.GeoJSON(r.Context(), sourceHTTP, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", GeoJSONContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleServiceError maps service sentinels to API errors. Typed causes
// (validation, parsing, storage) are left for the error handler to map.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr *apierrors.APIError
		appErr *apierrors.AppError
	)
	typed := errors.As(err, &apiErr) || errors.As(err, &appErr)

	switch {
	case typed:
	case errors.Is(err, services.ErrDatasetUnavailable):
		err = apierrors.DatasetUnavailableError(err)
	case errors.Is(err, services.ErrExportFailed):
		err = apierrors.ExportError(err)
	}
	h.errorHandler.HandleError(w, r, err)
}

// ParseViewQuery reads a filter request from query parameters.
//
// A parameter that is absent keeps the default selection. A parameter that
// is present but empty (cluster=) selects nothing. Clusters may be repeated
// or comma separated; income groups are repeated.
func ParseViewQuery(q url.Values) (api.ViewRequest, error) {
	var req api.ViewRequest

	if raw, ok := q[ParamCluster]; ok {
		clusters := []float64{}
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				c, err := strconv.ParseFloat(part, 64)
				if err != nil {
					return api.ViewRequest{}, apierrors.InvalidParameterError(ParamCluster, part)
				}
				clusters = append(clusters, c)
			}
		}
		req.Clusters = &clusters
	}

	if raw, ok := q[ParamIncomeGroup]; ok {
		groups := []string{}
		for _, v := range raw {
			if v = strings.TrimSpace(v); v != "" {
				groups = append(groups, v)
			}
		}
		req.IncomeGroups = &groups
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{ParamGapMin, &req.GapMin},
		{ParamGapMax, &req.GapMax},
	} {
		v := strings.TrimSpace(q.Get(p.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return api.ViewRequest{}, apierrors.InvalidParameterError(p.name, v)
		}
		*p.dst = &n
	}

	return req, nil
}
