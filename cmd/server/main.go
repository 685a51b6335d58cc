package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	labelapp "github.com/labelgen/backend/internal/application/label"
	printingapp "github.com/labelgen/backend/internal/application/printing"
	templateapp "github.com/labelgen/backend/internal/application/template"
	uploadapp "github.com/labelgen/backend/internal/application/upload"
	"github.com/labelgen/backend/internal/infrastructure/config"
	"github.com/labelgen/backend/internal/infrastructure/logger"
	"github.com/labelgen/backend/internal/infrastructure/persistence"
	"github.com/labelgen/backend/internal/infrastructure/persistence/models"
	infraprinting "github.com/labelgen/backend/internal/infrastructure/printing"
	"github.com/labelgen/backend/internal/infrastructure/storage"
	"github.com/labelgen/backend/internal/interfaces/http/handler"
	"github.com/labelgen/backend/internal/interfaces/http/middleware"
	"github.com/labelgen/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting label generator backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	// Initialize database connection
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// SQLite installs have no separate migrate step; the schema is created
	// in place. Postgres deployments run cmd/migrate before starting.
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(&models.TemplateModel{}, &models.LabelModel{}); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Initialize repositories
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	labelRepo := persistence.NewGormLabelRepository(db.DB)

	// Initialize upload object storage
	uploadStorage, err := newUploadStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	// Initialize the PDF rendering pipeline
	sheetEngine, err := infraprinting.NewSheetEngine(log)
	if err != nil {
		log.Fatal("Failed to initialize sheet engine", zap.Error(err))
	}

	imageResolver := infraprinting.NewHTTPImageResolver(uploadStorage, log)

	pdfRenderer, err := infraprinting.NewChromedpRenderer(&infraprinting.ChromedpConfig{
		DefaultTimeout: cfg.Print.ChromeTimeout,
		RemoteURL:      cfg.Print.ChromeRemoteURL,
		Headless:       cfg.Print.Headless,
		NoSandbox:      cfg.Print.ChromeNoSandbox,
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

	pdfStorage, err := infraprinting.NewFileSystemStorage(&infraprinting.FileSystemStorageConfig{
		BasePath:      cfg.Print.OutputPath,
		BaseURL:       cfg.Print.BaseURL,
		RetentionDays: cfg.Print.RetentionDays,
		Logger:        log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF storage", zap.Error(err))
	}

	// Initialize application services
	templateService := templateapp.NewService(templateRepo, labelRepo, sheetEngine, log)
	labelService := labelapp.NewService(labelRepo, templateRepo, log)
	printService := printingapp.NewPrintService(
		labelRepo, templateRepo, sheetEngine, imageResolver, pdfRenderer, pdfStorage, log,
	)
	uploadService := uploadapp.NewService(uploadStorage, log)

	// Seed the starter templates on first run
	if err := templateService.SeedDefaults(context.Background()); err != nil {
		log.Fatal("Failed to seed default templates", zap.Error(err))
	}

	// Periodically remove expired sheet PDFs
	cleanupDone := make(chan struct{})
	defer close(cleanupDone)
	if cfg.Print.RetentionDays > 0 {
		go runPDFCleanup(pdfStorage, time.Duration(cfg.Print.RetentionDays)*24*time.Hour, log, cleanupDone)
	}

	// Initialize HTTP handlers
	templateHandler := handler.NewTemplateHandler(templateService)
	labelHandler := handler.NewLabelHandler(labelService)
	printHandler := handler.NewPrintHandler(printService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, body size limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning, for load balancers)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Register(handler.TemplateRoutes(templateHandler)).
		Register(handler.LabelRoutes(labelHandler)).
		Register(handler.PrintRoutes(printHandler)).
		Register(handler.UploadRoutes(uploadHandler)).
		Register(handler.SystemRoutes(systemHandler))

	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// newUploadStorage builds the configured part image storage backend
func newUploadStorage(cfg *config.Config, log *zap.Logger) (uploadapp.ObjectStorage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3ObjectStorage(&cfg.Storage)
	case "stub":
		log.Warn("Using stub object storage, uploaded images are kept in memory only")
		return storage.NewStubObjectStorage(), nil
	default:
		return storage.NewFileSystemObjectStorage(cfg.Storage.Path, log)
	}
}

// runPDFCleanup deletes generated sheet PDFs past the retention window.
// Runs once at startup, then daily until done is closed.
func runPDFCleanup(store infraprinting.PDFStorage, retention time.Duration, log *zap.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		removed, err := store.CleanupOlderThan(ctx, retention)
		if err != nil {
			log.Warn("PDF cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			log.Info("Removed expired sheet PDFs", zap.Int("count", removed))
		}
	}

	cleanup()
	for {
		select {
		case <-ticker.C:
			cleanup()
		case <-done:
			return
		}
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(c.Request.Context()); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
