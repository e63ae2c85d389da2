// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"html/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	chartapp "github.com/alchemorsel/catalog/internal/application/chart"
	recipeapp "github.com/alchemorsel/catalog/internal/application/recipe"
	userapp "github.com/alchemorsel/catalog/internal/application/user"
	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/server"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/templates"
	"github.com/alchemorsel/catalog/internal/infrastructure/monitoring"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/database"
	gormrepo "github.com/alchemorsel/catalog/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/memory"
	redisstore "github.com/alchemorsel/catalog/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/catalog/internal/infrastructure/rendering"
	"github.com/alchemorsel/catalog/internal/infrastructure/security"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
	"github.com/alchemorsel/catalog/pkg/healthcheck"
	"github.com/alchemorsel/catalog/pkg/logger"
)

// tokenSweepInterval is how often the in-memory token store drops expired entries
const tokenSweepInterval = 5 * time.Minute

// Module provides every module needed to serve the catalog
var Module = fx.Options(
	CoreModule,
	MonitoringModule,
	RenderingModule,
	TokenStoreModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// CoreModule is logging, persistence and the user use cases. CLI commands
// that never serve HTTP start only this.
var CoreModule = fx.Options(
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	fx.Provide(
		fx.Annotate(
			func(repo outbound.UserRepository, cfg *config.Config, log *zap.Logger) *userapp.UserService {
				return userapp.NewUserService(repo, cfg.Auth.BCryptCost, log)
			},
			fx.As(new(inbound.UserService)),
		),
	),
)

// New builds the serving application for cfg. v may be nil; when set the
// log level follows edits to the config file.
func New(cfg *config.Config, v *viper.Viper, opts ...fx.Option) *fx.App {
	options := []fx.Option{
		fx.Supply(cfg),
		Module,
		fx.WithLogger(newFxLogger),
	}
	if v != nil {
		options = append(options, fx.Supply(v))
	}
	return fx.New(append(options, opts...)...)
}

// NewCore builds an application with CoreModule only
func NewCore(cfg *config.Config, opts ...fx.Option) *fx.App {
	options := []fx.Option{
		fx.Supply(cfg),
		CoreModule,
		fx.WithLogger(newFxLogger),
	}
	return fx.New(append(options, opts...)...)
}

func newFxLogger(log *zap.Logger) fxevent.Logger {
	l := &fxevent.ZapLogger{Logger: log.Named("fx")}
	l.UseLogLevel(zap.DebugLevel)
	return l
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.NewWithLevel(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM connection and closes it on stop
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := database.Open(cfg.Database, log)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return database.Close(db)
			},
		})
		return db, nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormrepo.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
	fx.Annotate(
		gormrepo.NewUserRepository,
		fx.As(new(outbound.UserRepository)),
	),
)

// MonitoringModule provides the metrics registry and the tracer provider
var MonitoringModule = fx.Provide(
	func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg
	},
	func(reg *prometheus.Registry) *middleware.Metrics {
		return middleware.NewMetrics(reg)
	},
	func(reg *prometheus.Registry) *monitoring.ChartMetrics {
		return monitoring.NewChartMetrics(reg)
	},
	func(reg *prometheus.Registry) *healthcheck.HealthMetrics {
		return healthcheck.NewHealthMetrics(reg)
	},
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			Insecure:       cfg.Monitoring.OTLPInsecure,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
	func(tp *monitoring.TracingProvider) trace.TracerProvider {
		return tp.TracerProvider()
	},
)

// RenderingModule provides the configured chart renderer with metrics
var RenderingModule = fx.Provide(
	func(cfg *config.Config, metrics *monitoring.ChartMetrics, log *zap.Logger) (outbound.ChartRenderer, error) {
		renderer, err := rendering.New(cfg.Charts, log)
		if err != nil {
			return nil, err
		}
		return monitoring.InstrumentRenderer(renderer, metrics), nil
	},
)

type tokenStoreResult struct {
	fx.Out

	Store outbound.TokenStore
	// Redis is nil when revocations are kept in memory
	Redis goredis.UniversalClient
}

// TokenStoreModule keeps revoked tokens in Redis when enabled, otherwise in memory
var TokenStoreModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (tokenStoreResult, error) {
		if !cfg.Redis.Enabled {
			store := memory.NewTokenStore(tokenSweepInterval)
			lc.Append(fx.StopHook(store.Close))
			log.Info("Using in-memory token revocation store")
			return tokenStoreResult{Store: store}, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
		defer cancel()
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return tokenStoreResult{}, err
		}
		lc.Append(fx.StopHook(client.Close))

		log.Info("Using Redis token revocation store", zap.String("addr", cfg.Redis.Addr))
		return tokenStoreResult{
			Store: redisstore.NewTokenStore(client, cfg.Redis.KeyPrefix, log),
			Redis: client,
		}, nil
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		func(renderer outbound.ChartRenderer, cfg *config.Config, log *zap.Logger) *chartapp.Summarizer {
			return chartapp.NewSummarizer(renderer, chartapp.Options{
				IsolateFailures: cfg.Charts.IsolateFailures,
			}, log)
		},
		fx.As(new(inbound.ChartSummarizer)),
	),
	fx.Annotate(
		func(repo outbound.RecipeRepository, summarizer inbound.ChartSummarizer, cfg *config.Config, log *zap.Logger) *recipeapp.RecipeService {
			return recipeapp.NewRecipeService(repo, summarizer, recipeapp.Options{
				EnforceNonNegativeCookingTime: cfg.Recipes.EnforceNonNegativeCookingTime,
			}, log)
		},
		fx.As(new(inbound.RecipeService)),
	),
	func(cfg *config.Config, users inbound.UserService, tokens outbound.TokenStore, log *zap.Logger) *security.AuthService {
		return security.NewAuthService(cfg.Auth, users, tokens, log)
	},
)

type healthParams struct {
	fx.In

	Config  *config.Config
	DB      *gorm.DB
	Redis   goredis.UniversalClient `optional:"true"`
	Metrics *healthcheck.HealthMetrics
	Logger  *zap.Logger
}

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	templates.Parse,
	func(cfg *config.Config, metrics *middleware.Metrics, log *zap.Logger) *middleware.Middleware {
		return middleware.New(cfg, metrics, log)
	},
	handlers.NewRecipeHandlers,
	handlers.NewAuthHandlers,
	func(p healthParams) (*healthcheck.HealthCheck, error) {
		health := healthcheck.New(p.Config.App.Version, p.Logger.Named("health"))
		health.SetMetrics(p.Metrics)

		sqlDB, err := p.DB.DB()
		if err != nil {
			return nil, err
		}
		health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
		if p.Redis != nil {
			health.Register("redis", healthcheck.NewRedisChecker(p.Redis))
		}
		backend := p.Config.Charts.Backend
		health.Register("charts", healthcheck.NewCustomChecker("charts",
			func(ctx context.Context) (healthcheck.Status, string, interface{}) {
				if backend == config.ChartBackendNoop {
					return healthcheck.StatusDegraded, "chart rendering is disabled", nil
				}
				return healthcheck.StatusHealthy, "", map[string]string{"backend": backend}
			}))
		return health, nil
	},
	func(
		cfg *config.Config,
		log *zap.Logger,
		mw *middleware.Middleware,
		tmpl *template.Template,
		health *healthcheck.HealthCheck,
		reg *prometheus.Registry,
		tp trace.TracerProvider,
		recipeHandlers *handlers.RecipeHandlers,
		authHandlers *handlers.AuthHandlers,
		authService *security.AuthService,
	) *server.Server {
		return server.NewServer(cfg, log, server.Dependencies{
			Middleware:     mw,
			Templates:      tmpl,
			Health:         health,
			Gatherer:       reg,
			TracerProvider: tp,
			RecipeHandlers: recipeHandlers,
			AuthHandlers:   authHandlers,
			AuthService:    authService,
		})
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	SeedDatabase,
	WatchConfig,
	RegisterLifecycleHooks,
)

// SeedDatabase inserts the sample recipes and default user when database.seed is set
func SeedDatabase(
	lc fx.Lifecycle,
	cfg *config.Config,
	recipes outbound.RecipeRepository,
	users outbound.UserRepository,
	log *zap.Logger,
) {
	if !cfg.Database.Seed {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return database.Seed(ctx, recipes, users,
				cfg.Auth.DefaultUser, cfg.Auth.DefaultPassword, cfg.Auth.BCryptCost, log)
		},
	})
}

type watchParams struct {
	fx.In

	Viper  *viper.Viper `optional:"true"`
	Level  zap.AtomicLevel
	Logger *zap.Logger
}

// WatchConfig applies log level changes from the config file without a restart
func WatchConfig(p watchParams) {
	if p.Viper == nil {
		return
	}
	config.Watch(p.Viper,
		func(cfg *config.Config) {
			level := logger.ParseLevel(cfg.App.LogLevel)
			if level != p.Level.Level() {
				p.Level.SetLevel(level)
				p.Logger.Info("Log level changed", zap.String("level", level.String()))
			}
		},
		func(err error) {
			p.Logger.Warn("Ignoring invalid configuration change", zap.Error(err))
		},
	)
}

// RegisterLifecycleHooks starts and stops the HTTP server with the application
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting recipe catalog",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down recipe catalog")
			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}
			_ = log.Sync()
			return nil
		},
	})
}
