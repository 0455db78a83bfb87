package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"course-hub-api/internal/config"
	"course-hub-api/internal/database"
	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
	"course-hub-api/internal/job"
	"course-hub-api/internal/metrics"
	"course-hub-api/internal/repository"
	"course-hub-api/internal/router"
	"course-hub-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Env == "prod" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Course Hub API",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Initialize the document store
	store, ready, cleanup, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer cleanup()

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		Store:       store,
		Logger:      logger,
		JWTSecret:   cfg.Auth.SecretKey,
		BasePath:    cfg.Server.BasePath,
		Metrics:     m,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Ready:       ready,
	})

	// Schedule the orphaned comment sweep
	var scheduler *cron.Cron
	if cfg.Sweep.Enabled {
		scheduler = cron.New()
		sweep := job.NewSweepJob(buildCascades(store, m, logger), logger)
		if _, err := scheduler.AddJob(cfg.Sweep.Schedule, sweep); err != nil {
			logger.Fatal("Failed to schedule sweep job",
				zap.String("schedule", cfg.Sweep.Schedule),
				zap.Error(err),
			)
		}
		scheduler.Start()
		logger.Info("Sweep job scheduled", zap.String("schedule", cfg.Sweep.Schedule))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Course Hub API started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// openStore builds the configured document store. It returns the store, a
// readiness probe and a cleanup func for shutdown.
func openStore(cfg *config.Config, logger *zap.Logger) (docstore.Provider, func(ctx context.Context) error, func(), error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.New(database.Config{
			DSN:             cfg.Storage.URL,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrateWithRetry(db, logger, 5); err != nil {
			return nil, nil, nil, err
		}
		store := docstore.NewGormStore(db, cfg.Storage.LockWait)
		ready := func(ctx context.Context) error { return database.Ping(ctx, db) }
		cleanup := func() {
			if err := database.Close(db); err != nil {
				logger.Warn("Failed to close database", zap.Error(err))
			}
		}
		return store, ready, cleanup, nil

	case "file":
		store, err := docstore.NewFileStore(cfg.Storage.DataDir, cfg.Storage.LockWait, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// buildCascades wires one cascade per course domain for the sweep job.
func buildCascades(store docstore.Provider, m *metrics.Metrics, logger *zap.Logger) []*service.Cascade {
	var cascades []*service.Cascade
	for _, def := range domain.All() {
		entities := repository.NewEntityRepository(store, def)
		comments := repository.NewCommentRepository(store, def)
		cascades = append(cascades, service.NewCascade(entities, comments, m, logger))
	}
	return cascades
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
