package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "storepulse-dashboard"
	ServiceVersion = "1.2.0"
	MeterName      = "storepulse"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration.
// Tracing is off unless PULSE_TRACE_EXPORTER asks for it; span dumps on
// stdout would interleave with the JSON logs.
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	traceExporter := os.Getenv("PULSE_TRACE_EXPORTER")
	if traceExporter == "" {
		traceExporter = "none"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		TraceExporter:  traceExporter,
		MetricExporter: "prometheus",
		EnableMetrics:  true,
		EnableTracing:  traceExporter != "none",
		SampleRatio:    1.0,
	}
}

// InitializeOTel initializes OpenTelemetry tracing and metrics
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Logger: logger,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		exporter, err := prometheus.New()
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		providers.PrometheusHTTP = promhttp.Handler()

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		otel.SetMeterProvider(mp)

	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))

	return nil
}

// BusinessMetrics holds all application-specific metrics
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Pipeline metrics
	PipelineRunsTotal   metric.Int64Counter
	PipelineDuration    metric.Float64Histogram
	PipelineRowsIn      metric.Int64Counter
	PipelineRowsOut     metric.Int64Counter
	PipelineSegmentRows metric.Int64Counter
	PipelineErrors      metric.Int64Counter

	// Dataset metrics
	DatasetLoadsTotal   metric.Int64Counter
	DatasetLoadDuration metric.Float64Histogram
	DatasetRowsDropped  metric.Int64Counter
	DatasetCacheHits    metric.Int64Counter

	// Export and live-update metrics
	ExportRowsTotal      metric.Int64Counter
	WebSocketConnections metric.Int64UpDownCounter
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	m := &BusinessMetrics{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.HTTPRequestsTotal, "http_requests_total", "Total number of HTTP requests"},
		{&m.PipelineRunsTotal, "pipeline_runs_total", "Total number of filter and segment pipeline runs"},
		{&m.PipelineRowsIn, "pipeline_rows_in_total", "Rows entering the filter stage"},
		{&m.PipelineRowsOut, "pipeline_rows_out_total", "Rows surviving the filter stage"},
		{&m.PipelineSegmentRows, "pipeline_segment_rows_total", "Rows classified per performance segment"},
		{&m.PipelineErrors, "pipeline_errors_total", "Total number of pipeline errors"},
		{&m.DatasetLoadsTotal, "dataset_loads_total", "Total number of dataset loads from disk"},
		{&m.DatasetRowsDropped, "dataset_rows_dropped_total", "Rows dropped while loading for missing coordinates or visit values"},
		{&m.DatasetCacheHits, "dataset_cache_hits_total", "Dataset requests served from the in-memory cache"},
		{&m.ExportRowsTotal, "export_rows_total", "Rows written to CSV exports"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.HTTPRequestDuration, "http_request_duration_seconds", "HTTP request duration in seconds"},
		{&m.PipelineDuration, "pipeline_duration_seconds", "Pipeline run duration in seconds"},
		{&m.DatasetLoadDuration, "dataset_load_duration_seconds", "Dataset load duration in seconds"},
	}
	for _, h := range histograms {
		if *h.dst, err = meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("s")); err != nil {
			return nil, err
		}
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.WebSocketConnections, err = meter.Int64UpDownCounter(
		"websocket_connections",
		metric.WithDescription("Number of connected WebSocket clients"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// PipelineRun describes one pass of filter, summarize and segment
type PipelineRun struct {
	Source       string // "http", "websocket", "cli"
	RowsIn       int
	RowsOut      int
	SegmentCount map[string]int
	Duration     time.Duration
	Err          error
}

// RecordPipelineMetrics records metrics for a pipeline run
func RecordPipelineMetrics(ctx context.Context, metrics *BusinessMetrics, run PipelineRun) {
	if metrics == nil {
		return
	}

	source := attribute.String("source", run.Source)
	status := attribute.String("status", "success")
	if run.Err != nil {
		status = attribute.String("status", "failure")
		metrics.PipelineErrors.Add(ctx, 1, metric.WithAttributes(source,
			attribute.String("error.type", fmt.Sprintf("%T", run.Err))))
	}

	metrics.PipelineRunsTotal.Add(ctx, 1, metric.WithAttributes(source, status))
	metrics.PipelineDuration.Record(ctx, run.Duration.Seconds(), metric.WithAttributes(source, status))
	metrics.PipelineRowsIn.Add(ctx, int64(run.RowsIn), metric.WithAttributes(source))
	metrics.PipelineRowsOut.Add(ctx, int64(run.RowsOut), metric.WithAttributes(source))

	for segment, n := range run.SegmentCount {
		metrics.PipelineSegmentRows.Add(ctx, int64(n), metric.WithAttributes(attribute.String("segment", segment)))
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("pipeline.metrics_recorded",
			trace.WithAttributes(
				source,
				attribute.Int("rows_in", run.RowsIn),
				attribute.Int("rows_out", run.RowsOut),
				attribute.Float64("duration_seconds", run.Duration.Seconds()),
			),
		)
	}
}

// RecordDatasetLoad records a load of the spreadsheet from disk
func RecordDatasetLoad(ctx context.Context, metrics *BusinessMetrics, rows, dropped int, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	status := attribute.String("status", "success")
	if err != nil {
		status = attribute.String("status", "failure")
	}

	metrics.DatasetLoadsTotal.Add(ctx, 1, metric.WithAttributes(status))
	metrics.DatasetLoadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(status))
	if err == nil {
		metrics.DatasetRowsDropped.Add(ctx, int64(dropped))
	}
}

// RecordDatasetCacheHit records a dataset served without touching disk
func RecordDatasetCacheHit(ctx context.Context, metrics *BusinessMetrics) {
	if metrics == nil {
		return
	}
	metrics.DatasetCacheHits.Add(ctx, 1)
}

// RecordExport records rows written by a CSV export
func RecordExport(ctx context.Context, metrics *BusinessMetrics, rows int) {
	if metrics == nil {
		return
	}
	metrics.ExportRowsTotal.Add(ctx, int64(rows))
}

// RecordWebSocketConnection records a client joining (+1) or leaving (-1)
func RecordWebSocketConnection(ctx context.Context, metrics *BusinessMetrics, delta int64) {
	if metrics == nil {
		return
	}
	metrics.WebSocketConnections.Add(ctx, delta)
}
