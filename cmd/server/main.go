package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	appreport "github.com/kvk/backend/internal/application/report"
	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/infrastructure/auth"
	"github.com/kvk/backend/internal/infrastructure/cache"
	"github.com/kvk/backend/internal/infrastructure/config"
	"github.com/kvk/backend/internal/infrastructure/logger"
	"github.com/kvk/backend/internal/infrastructure/persistence"
	"github.com/kvk/backend/internal/infrastructure/rendering"
	"github.com/kvk/backend/internal/infrastructure/storage"
	"github.com/kvk/backend/internal/infrastructure/telemetry"
	"github.com/kvk/backend/internal/interfaces/http/handler"
	"github.com/kvk/backend/internal/interfaces/http/middleware"
	"github.com/kvk/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting KVK Report Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracer, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormlogger.Silent)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	db.DB.Logger = logger.NewGormLogger(log)
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.Enabled, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Hierarchy repository with cached cascading options
	cacheFactory := cache.NewOptionCacheFactory(cfg.Redis, cache.WithLogger(log))
	optionCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize option cache", zap.Error(err))
	}
	var hierRepo hierarchy.Repository = persistence.NewGormHierarchyRepository(db.DB)
	hierRepo = cache.NewCachedHierarchyRepository(hierRepo, optionCache, cfg.Report.OptionCacheTTL, log)

	// Report catalog and core services
	registry := report.NewRegistry()
	resolver := appreport.NewScopeResolver(hierRepo)
	sectionStore := persistence.NewGormSectionStore(db.DB)
	fetcher := appreport.NewSectionFetcher(sectionStore)
	aggregator := appreport.NewAggregator(fetcher, cfg.Report.MaxConcurrentFetches, log)

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal("Failed to load report timezone", zap.Error(err))
	}
	reportService := appreport.NewReportService(registry, resolver, aggregator, hierRepo, loc, log)

	// PDF rendering and archive storage
	htmlBuilder, err := rendering.NewHTMLBuilder()
	if err != nil {
		log.Fatal("Failed to initialize HTML builder", zap.Error(err))
	}
	pdfRenderer, err := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
		DefaultTimeout: cfg.Report.RenderTimeout,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	var archive storage.ReportArchive
	switch cfg.Storage.Provider {
	case "s3":
		s3Archive, err := storage.NewS3ReportArchive(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 report archive", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure archive bucket", zap.Error(err))
		}
		archive = s3Archive
	default:
		archive = storage.NewStubReportArchive(cfg.Storage.KeyPrefix)
		log.Warn("Using in-memory report archive, rendered PDFs will not survive restarts")
	}

	renderService := appreport.NewRenderService(
		reportService, htmlBuilder, pdfRenderer, archive, cfg.Report.RenderTimeout, log,
	)

	// Token verification for portal-issued credentials
	jwtService := auth.NewJWTService(cfg.JWT)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Report payloads are small JSON bodies, keep the limit tight
	engine.Use(middleware.BodyLimit(1 << 20))

	// Liveness probe outside API versioning and authentication
	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)

	// API routes behind token verification
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	engine.Use(middleware.AuthWithConfig(middleware.AuthConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/api/v1/health"},
		Logger:     log,
	}))

	r.Register(systemHandler).
		Register(handler.NewScopeHandler(reportService)).
		Register(handler.NewReportHandler(reportService, renderService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
