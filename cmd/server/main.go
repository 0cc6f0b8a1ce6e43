package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"perpfolio/internal/cache"
	"perpfolio/internal/client/history"
	"perpfolio/internal/config"
	cronrunner "perpfolio/internal/cron"
	"perpfolio/internal/db"
	"perpfolio/internal/handler"
	"perpfolio/internal/logger"
	gormrepository "perpfolio/internal/repository/gorm"
	"perpfolio/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("PF_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("PF_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	var bundleCache *cache.BundleCache
	if cfg.Cache.Enabled {
		bundleCache = cache.NewBundleCache(&redis.Options{
			Addr: cfg.Cache.Addr,
			DB:   cfg.Cache.DB,
		}, cfg.Cache.TTL)
	}

	historyHTTP := &http.Client{Timeout: cfg.History.Timeout}
	historyClient := history.NewClient(historyHTTP, cfg.History.BaseURL)

	syncService := &service.HistorySyncService{
		Repo:   store,
		Client: historyClient,
		Cache:  bundleCache,
		Logger: logger,
	}
	analyticsService := &service.AnalyticsService{
		Repo:   store,
		Cache:  bundleCache,
		Logger: logger,
		Config: cfg.Analytics,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.RequestIDMiddleware())
	engine.Use(handler.CORSMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{
		Analytics: analyticsService,
		Sync:      syncService,
	}
	analyticsHandler.Register(engine)
	syncStateHandler := &handler.SyncStateHandler{Repo: store}
	syncStateHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Sync.Enabled && len(cfg.Sync.Addresses) > 0 {
		addresses := cfg.Sync.Addresses
		_, err := cronRunner.Add(cfg.Sync.Schedule, func(ctx context.Context) {
			syncService.SyncAll(ctx, addresses)
		})
		if err != nil {
			logger.Warn("cron register history sync failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
