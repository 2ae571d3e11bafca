package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rushali2005/studentpp/config"
	"github.com/rushali2005/studentpp/handlers"
	"github.com/rushali2005/studentpp/models"
	"github.com/rushali2005/studentpp/services"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{
		// Unique violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get sql db handle", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.PredictionRecord{}); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Redis is optional; without it history is read straight from the
	// database and settings/live history report unavailable.
	cache, err := services.NewCacheService(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Running without redis", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
	}
	defer cache.Close()

	authService := services.NewAuthService(cfg.JWT)
	predictions := services.NewPredictionService(
		services.NewFeatureValidator(cfg.Predictor.StrictRanges),
		services.NewPredictorClient(cfg.Predictor, logger),
		services.NewTipClassifier(nil),
		services.NewRecordStore(db),
		cache,
		logger,
	)

	router := handlers.NewRouter(handlers.Dependencies{
		DB:          db,
		Auth:        authService,
		Predictions: predictions,
		Settings:    services.NewSettingsStore(cache),
		Cache:       cache,
		CORS:        cfg.CORS,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Predictor.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting server",
			zap.String("addr", srv.Addr),
			zap.String("predictor_url", cfg.Predictor.URL),
			zap.Bool("strict_ranges", cfg.Predictor.StrictRanges),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build(zap.AddStacktrace(zap.ErrorLevel))
}
