package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	assetapp "github.com/devicedesk/backend/internal/application/asset"
	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/devicedesk/backend/internal/infrastructure/config"
	"github.com/devicedesk/backend/internal/infrastructure/logger"
	"github.com/devicedesk/backend/internal/infrastructure/persistence"
	"github.com/devicedesk/backend/internal/infrastructure/telemetry"
	"github.com/devicedesk/backend/internal/interfaces/http/handler"
	"github.com/devicedesk/backend/internal/interfaces/http/middleware"
	"github.com/devicedesk/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	var (
		configPath string
		seed       bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: config.toml lookup)")
	flag.BoolVar(&seed, "seed", false, "Insert the sample devices and employees on startup")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if seed {
		cfg.Database.Seed = true
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting device desk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := persistence.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTracing,
		LogFullSQL:      cfg.Telemetry.LogFullSQL,
		SlowQueryThresh: cfg.Database.SlowThreshold,
		DBSystem:        cfg.Database.Driver,
		TracerProvider:  tp.Provider(),
	}, log); err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("Schema auto-migrated")
	}
	if cfg.Database.Seed {
		if err := persistence.Seed(ctx, db.DB, log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	uowFactory := persistence.NewGormUnitOfWorkFactory(db.DB, persistence.WithUnitOfWorkLogger(log))
	deviceService := assetapp.NewDeviceService(uowFactory, log)
	employeeService := assetapp.NewEmployeeService(uowFactory, log)
	linkService := assetapp.NewEmployeeDeviceService(uowFactory, log)

	pageDefaults := shared.PageRequest{
		PageNumber: cfg.Paging.DefaultPageNumber,
		PageSize:   cfg.Paging.DefaultPageSize,
	}

	engine, err := newEngine(ctx, cfg, log, tp)
	if err != nil {
		return err
	}

	var routerOpts []router.RouterOption
	if cfg.Metrics.Enabled {
		routerOpts = append(routerOpts, router.WithMetrics(cfg.Metrics.Path, promhttp.Handler()))
	}
	router.NewRouter(engine, routerOpts...).
		Register(handler.NewDeviceHandler(deviceService, pageDefaults).Routes()).
		Register(handler.NewEmployeeHandler(employeeService, pageDefaults).Routes()).
		Register(handler.NewEmployeeDeviceHandler(linkService).Routes()).
		RegisterRoot(handler.NewSystemHandler(db, cfg.App.Name, version).Routes()).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

// newEngine builds the gin engine with the middleware stack in order:
// request id, tracing, recovery, request logging, metrics, security
// headers, CORS, body limit and rate limiting.
func newEngine(ctx context.Context, cfg *config.Config, log *zap.Logger, tp *telemetry.TracerProvider) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName:    cfg.App.Name,
		Enabled:        tp.IsEnabled(),
		TracerProvider: tp.Provider(),
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Metrics.Enabled {
		engine.Use(middleware.HTTPMetrics())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))

	if cfg.HTTP.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, 10*time.Minute)
		go limiter.Run(ctx)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	return engine, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
