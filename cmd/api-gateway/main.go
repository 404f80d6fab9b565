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
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/pem-portal-api/api/swagger"
	"github.com/noah-isme/pem-portal-api/internal/handler"
	"github.com/noah-isme/pem-portal-api/internal/repository"
	"github.com/noah-isme/pem-portal-api/internal/service"
	"github.com/noah-isme/pem-portal-api/pkg/cache"
	"github.com/noah-isme/pem-portal-api/pkg/config"
	"github.com/noah-isme/pem-portal-api/pkg/database"
	"github.com/noah-isme/pem-portal-api/pkg/logger"
)

// @title PEM Portal API
// @version 1.0.0
// @description Point ledger and training curriculum for the Psychoeducational Treatment Model
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]handler.ReadinessCheck{}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	var db *sqlx.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		checks["postgres"] = func(ctx context.Context) error { return db.PingContext(ctx) }
		logr.Info("point log persistence enabled", zap.String("database", cfg.Database.Name))
	}

	var redisClient *redis.Client
	if cfg.Export.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, export cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()

	sessionCfg := service.SessionConfig{IdleTTL: cfg.Sessions.IdleTTL, MaxEvents: cfg.Sessions.MaxEvents}
	var sessionSvc *service.SessionService
	if db != nil {
		sessionSvc = service.NewSessionService(repository.NewLedgerRepository(db), validate, logr, metricsSvc, sessionCfg)
	} else {
		sessionSvc = service.NewSessionService(nil, validate, logr, metricsSvc, sessionCfg)
	}

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Export.CacheTTL, logr, redisClient != nil)
	exportSvc := service.NewExportService(sessionSvc, cacheSvc, logr, nil, nil)
	sessionSvc.OnClear(exportSvc.InvalidateSession)
	curriculumSvc := service.NewCurriculumService(validate, logr)
	authSvc := service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	reaper := service.NewSessionReaper(sessionSvc, cfg.Sessions.SweepSchedule, logr)
	if err := reaper.Start(); err != nil {
		logr.Fatal("failed to start session reaper", zap.Error(err))
	}
	defer reaper.Stop()

	router := newRouter(routerDeps{
		cfg:        cfg,
		logger:     logr,
		metrics:    metricsSvc,
		auth:       authSvc,
		sessions:   sessionSvc,
		exports:    exportSvc,
		curriculum: curriculumSvc,
		checks:     checks,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
