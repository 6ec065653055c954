package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storepulse/internal/dataprocessing"
	"storepulse/internal/exporter"
	"storepulse/internal/infrastructure"
	"storepulse/internal/views"
	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
)

// DatasetLoader returns the (cached) dataset for a workbook
type DatasetLoader interface {
	Load(ctx context.Context, path, sheet string) (*domain.Dataset, error)
}

// StructValidator validates tagged request structs
type StructValidator interface {
	ValidateStruct(v interface{}) error
}

// DashboardService runs the filter and segment pipeline for one workbook
type DashboardService struct {
	loader    DatasetLoader
	path      string
	sheet     string
	validator StructValidator
	metrics   *infrastructure.BusinessMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// DashboardOption configures a DashboardService
type DashboardOption func(*DashboardService)

// WithValidator validates filter states before running the pipeline
func WithValidator(v StructValidator) DashboardOption {
	return func(s *DashboardService) {
		s.validator = v
	}
}

// WithBusinessMetrics records pipeline and export metrics
func WithBusinessMetrics(m *infrastructure.BusinessMetrics) DashboardOption {
	return func(s *DashboardService) {
		s.metrics = m
	}
}

// NewDashboardService creates a dashboard service for the workbook at path
func NewDashboardService(loader DatasetLoader, path, sheet string, logger *slog.Logger, opts ...DashboardOption) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &DashboardService{
		loader: loader,
		path:   path,
		sheet:  sheet,
		tracer: otel.Tracer(infrastructure.ServiceName),
		logger: logger.With(slog.String("service", "dashboard")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("DashboardService initialized",
		slog.String("dataset", path),
		slog.String("sheet", sheet))

	return s
}

// Dataset returns the loaded dataset and its filter options
func (s *DashboardService) Dataset(ctx context.Context) (*domain.Dataset, domain.FilterOptions, error) {
	ds, err := s.loader.Load(ctx, s.path, s.sheet)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.FilterOptions{}, ctx.Err()
		}
		return nil, domain.FilterOptions{}, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}
	return ds, dataprocessing.Options(ds), nil
}

// Options returns the filter choices and the default selection
func (s *DashboardService) Options(ctx context.Context) (api.OptionsResponse, error) {
	_, opts, err := s.Dataset(ctx)
	if err != nil {
		return api.OptionsResponse{}, err
	}
	return api.OptionsResponse{
		Options:  opts,
		Defaults: dataprocessing.DefaultFilterState(opts),
	}, nil
}

// DatasetInfo describes the loaded workbook
func (s *DashboardService) DatasetInfo(ctx context.Context) (*api.DatasetInfo, error) {
	ds, _, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &api.DatasetInfo{
		Source:      ds.Source,
		Sheet:       ds.Sheet,
		Rows:        ds.Len(),
		TotalRows:   ds.TotalRows,
		DroppedRows: ds.DroppedRows,
		LoadedAt:    ds.LoadedAt.Format(time.RFC3339),
	}, nil
}

// Run resolves req against the default selection and runs the pipeline.
// source labels the caller in metrics ("http", "websocket", "cli").
func (s *DashboardService) Run(ctx context.Context, source string, req api.ViewRequest) (dataprocessing.Result, domain.FilterOptions, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.run",
		trace.WithAttributes(attribute.String("source", source)))
	defer span.End()

	ds, opts, err := s.Dataset(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return dataprocessing.Result{}, opts, err
	}

	state := req.ToFilterState(dataprocessing.DefaultFilterState(opts))
	if s.validator != nil {
		if err := s.validator.ValidateStruct(state); err != nil {
			infrastructure.RecordPipelineMetrics(ctx, s.metrics, infrastructure.PipelineRun{
				Source: source,
				RowsIn: ds.Len(),
				Err:    err,
			})
			return dataprocessing.Result{}, opts, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
	}

	start := time.Now()
	res := dataprocessing.Run(ds, opts, state)
	duration := time.Since(start)

	counts := make(map[string]int, len(domain.Segments))
	for seg, n := range dataprocessing.CountSegments(res.Segmented) {
		counts[seg.String()] = n
	}
	infrastructure.RecordPipelineMetrics(ctx, s.metrics, infrastructure.PipelineRun{
		Source:       source,
		RowsIn:       ds.Len(),
		RowsOut:      len(res.View),
		SegmentCount: counts,
		Duration:     duration,
	})

	span.SetAttributes(
		attribute.Int("rows_in", ds.Len()),
		attribute.Int("rows_out", len(res.View)),
	)
	s.logger.DebugContext(ctx, "Pipeline run completed",
		slog.String("source", source),
		slog.Int("rows_in", ds.Len()),
		slog.Int("rows_out", len(res.View)),
		slog.Duration("duration", duration))

	return res, opts, nil
}

// View builds the whole dashboard for a filter request
func (s *DashboardService) View(ctx context.Context, source string, req api.ViewRequest) (domain.DashboardView, error) {
	res, opts, err := s.Run(ctx, source, req)
	if err != nil {
		return domain.DashboardView{}, err
	}
	return views.Build(res, opts), nil
}

// Table returns the segmented table for a filter request
func (s *DashboardService) Table(ctx context.Context, source string, req api.ViewRequest) (domain.TableView, error) {
	res, _, err := s.Run(ctx, source, req)
	if err != nil {
		return domain.TableView{}, err
	}
	return views.BuildTable(res.Segmented), nil
}

// Export writes the segmented table as CSV and returns the number of rows
func (s *DashboardService) Export(ctx context.Context, source string, req api.ViewRequest, w io.Writer) (int, error) {
	table, err := s.Table(ctx, source, req)
	if err != nil {
		return 0, err
	}

	if err := exporter.WriteTable(w, table); err != nil {
		s.logger.ErrorContext(ctx, "CSV export failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	infrastructure.RecordExport(ctx, s.metrics, len(table.Rows))
	s.logger.InfoContext(ctx, "CSV export written",
		slog.String("source", source),
		slog.Int("rows", len(table.Rows)))
	return len(table.Rows), nil
}

// GeoJSON encodes the filtered stores as a FeatureCollection
func (s *DashboardService) GeoJSON(ctx context.Context, source string, req api.ViewRequest) ([]byte, error) {
	res, _, err := s.Run(ctx, source, req)
	if err != nil {
		return nil, err
	}
	return views.GeoJSON(res.Segmented)
}
