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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/student-report-api/api/swagger"
	"github.com/noah-isme/student-report-api/internal/handler"
	"github.com/noah-isme/student-report-api/internal/repository"
	"github.com/noah-isme/student-report-api/internal/service"
	"github.com/noah-isme/student-report-api/pkg/cache"
	"github.com/noah-isme/student-report-api/pkg/config"
	"github.com/noah-isme/student-report-api/pkg/database"
	"github.com/noah-isme/student-report-api/pkg/logger"
)

// @title Student Report API
// @version 1.0.0
// @description Student reports with classroom scoped access and rolling analytics
// @BasePath /api/v1
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Analytics.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	location, err := time.LoadLocation(cfg.Reports.Timezone)
	if err != nil {
		logr.Warn("unknown REPORTS_TIMEZONE, falling back to UTC", zap.String("timezone", cfg.Reports.Timezone), zap.Error(err))
		location = time.UTC
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := validator.New()
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheSvc = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metricsSvc, cfg.Analytics.CacheTTL, logr, true)
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	reportSvc := service.NewReportService(reportRepo, studentRepo, cacheSvc, metricsSvc, validate, logr, service.ReportServiceConfig{
		PageSize:             cfg.Reports.PageSize,
		ExportLimit:          cfg.Reports.ExportLimit,
		Location:             location,
		StrictClassroomScope: cfg.Reports.StrictClassroomScope,
		AnalyticsCacheTTL:    cfg.Analytics.CacheTTL,
	})

	checks := map[string]handler.Pinger{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := newRouter(cfg, logr, routerDeps{
		auth:       authSvc,
		reports:    handler.NewReportHandler(reportSvc, service.NewExportService()),
		login:      handler.NewAuthHandler(authSvc),
		metrics:    handler.NewMetricsHandler(metricsSvc, checks),
		metricsSvc: metricsSvc,
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

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
