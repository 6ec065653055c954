package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"

	"storepulse/internal/config"
	"storepulse/internal/dataprocessing"
	apierrors "storepulse/internal/errors"
	"storepulse/internal/files"
	"storepulse/internal/infrastructure"
	customMiddleware "storepulse/internal/middleware"
	"storepulse/internal/services"
	handlers "storepulse/internal/transport/http"
	ws "storepulse/internal/websocket"
	"storepulse/pkg/contracts"
	"storepulse/pkg/contracts/events"
)

// wsWriteWait bounds a single WebSocket frame write
const wsWriteWait = 10 * time.Second

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics

	ErrorHandler *apierrors.ErrorHandler
	Validation   *customMiddleware.ValidationMiddleware
	Files        *files.Manager

	DatasetPath      string
	DatasetCache     *dataprocessing.DatasetCache
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	WebSocketHub     *ws.Hub
}

// NewApplication loads configuration, initializes logging and OpenTelemetry
// and builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.DatasetPath()))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	return New(cfg, logger, otelProviders)
}

// New builds the application from already initialized infrastructure.
// providers may be nil, in which case the global (no-op) meter and tracer
// are used.
func New(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Application, error) {
	if providers == nil {
		providers = &infrastructure.OTelProviders{Logger: logger}
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	meter := a.OTelProviders.Meter
	if meter == nil {
		meter = otel.Meter(infrastructure.MeterName)
	}
	metrics, err := infrastructure.CreateBusinessMetrics(meter)
	if err != nil {
		return fmt.Errorf("failed to create business metrics: %w", err)
	}
	a.Metrics = metrics

	a.ErrorHandler = apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	a.Validation = customMiddleware.NewValidationMiddleware(a.Logger, a.ErrorHandler)

	a.Files = files.NewManager(a.Config.Paths, a.Logger)
	a.DatasetPath = a.Files.ResolveDataset(a.Config.DatasetPath(), a.Config.Dataset.Discover)

	a.DatasetCache = dataprocessing.NewDatasetCache(a.Logger, dataprocessing.WithMetrics(metrics))

	a.DashboardService = services.NewDashboardService(
		a.DatasetCache,
		a.DatasetPath,
		a.Config.Dataset.Sheet,
		a.Logger,
		services.WithValidator(a.Validation),
		services.WithBusinessMetrics(metrics),
	)

	hub := ws.NewHub(a.Logger, metrics)
	hub.Start()
	a.WebSocketHub = hub

	a.HealthService = services.NewHealthService(a.DatasetPath, a.DashboardService, hub, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Sub-routers copy these when mounted, so they are set first
	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	// Middleware that does not wrap the ResponseWriter; safe for upgrades
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.With(customMiddleware.WebSocketTraceMiddleware(a.Logger)).
		Handle(config.WebSocketEndpoint, a.newWebSocketHandler())

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → Security → CORS → RateLimit
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Debug:          a.Config.Logging.Level == "debug",
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Compress(5))

		r.Get("/", handlers.ServeDashboard(handlers.NewPageData(config.AppTitle), a.Logger))
		a.setupAPIRoutes(r)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Validation, a.Logger, a.ErrorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())

		r.With(a.Validation.ValidateRequest).
			Post("/client-log", handlers.NewClientLogHandler(a.Logger, a.ErrorHandler).Handle)
	})
}

func (a *Application) newWebSocketHandler() http.Handler {
	wsCfg := a.Config.WebSocket
	dispatcher := ws.NewDispatcher(a.DashboardService, a.Validation, a.Logger)

	return ws.NewHandler(a.WebSocketHub, dispatcher, ws.HandlerConfig{
		ReadBufferSize:  wsCfg.ReadBufferSize,
		WriteBufferSize: wsCfg.WriteBufferSize,
		AllowedOrigins:  a.Config.Security.AllowedOrigins,
		Client: ws.ClientSettings{
			MaxMessageSize: wsCfg.MaxMessageSize,
			PongWait:       wsCfg.PongWait,
			PingPeriod:     wsCfg.PingPeriod,
			WriteWait:      wsWriteWait,
			HandleTimeout:  a.Config.Server.RequestTimeout,
		},
	}, a.ErrorHandler, a.Logger)
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Address(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts serving in the background. cancel is called if the listener
// fails so Run can shut down.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	if err := a.Files.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to prepare directories: %w", err)
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// performStartupHealthCheck loads the dataset once so the first page view
// is served from the cache and a bad file is reported at startup
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, a.Config.Server.RequestTimeout)
	defer cancel()

	info, err := a.DashboardService.DatasetInfo(loadCtx)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", a.DatasetPath, err)
	}

	a.Logger.InfoContext(ctx, "Dataset ready",
		slog.String("source", info.Source),
		slog.Int("rows", info.Rows),
		slog.Int("dropped_rows", info.DroppedRows))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown
	notice := events.NewMessage("", events.MessageTypeShutdown, events.ShutdownData{Reason: "server shutting down"})
	if err := a.WebSocketHub.Broadcast(shutdownCtx, notice); err != nil {
		infrastructure.WithError(a.Logger, err).WarnContext(ctx, "Shutdown notice not sent")
	}
	a.WebSocketHub.Stop()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	// ctx may already be cancelled; shutdown gets its own deadline
	return a.Stop(context.Background())
}
