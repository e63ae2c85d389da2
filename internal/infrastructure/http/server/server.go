// Package server wires the gin engine, middleware chain and routes into an HTTP server
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/catalog/internal/infrastructure/security"
	"github.com/alchemorsel/catalog/pkg/healthcheck"
)

// Dependencies are the collaborators the server routes to
type Dependencies struct {
	Middleware     *middleware.Middleware
	Templates      *template.Template
	Health         *healthcheck.HealthCheck
	Gatherer       prometheus.Gatherer
	TracerProvider trace.TracerProvider
	RecipeHandlers *handlers.RecipeHandlers
	AuthHandlers   *handlers.AuthHandlers
	AuthService    *security.AuthService
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	logger = logger.Named("server")
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: cfg,
		logger: logger,
	}
	s.engine = s.setupRouter(deps)

	s.server = &http.Server{
		Addr:           cfg.Server.Address(),
		Handler:        s.instrument(deps.TracerProvider),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures the gin engine with middleware and routes
func (s *Server) setupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		s.logger.Warn("Ignoring invalid trusted proxies", zap.Error(err))
	}
	r.SetHTMLTemplate(deps.Templates)

	mw := deps.Middleware
	r.Use(
		mw.RequestID(),
		mw.Recovery(),
		mw.Tracing(),
		mw.Logger(),
		mw.Security(),
		mw.CORS(),
		mw.RateLimit(),
	)
	if s.config.Monitoring.EnableMetrics {
		r.Use(mw.Metrics())
	}
	r.Use(mw.Compression(), mw.ErrorHandler())

	r.GET("/health", deps.Health.Handler())
	r.GET("/health/live", deps.Health.LivenessHandler())
	r.GET("/health/ready", deps.Health.ReadinessHandler())

	if s.config.Monitoring.EnableMetrics && deps.Gatherer != nil {
		r.GET(s.config.Monitoring.MetricsPath, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	handlers.RegisterRoutes(r, deps.RecipeHandlers, deps.AuthHandlers, deps.AuthService)

	return r
}

// instrument wraps the engine so every request outside health and metrics gets a server span
func (s *Server) instrument(tp trace.TracerProvider) http.Handler {
	if tp == nil {
		return s.engine
	}
	metricsPath := s.config.Monitoring.MetricsPath
	return otelhttp.NewHandler(s.engine, s.config.App.Name,
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/health") && r.URL.Path != metricsPath
		}),
	)
}

// Handler returns the fully instrumented handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
