package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/student-report-api/internal/handler"
	"github.com/noah-isme/student-report-api/internal/middleware"
	"github.com/noah-isme/student-report-api/internal/models"
	"github.com/noah-isme/student-report-api/internal/service"
	"github.com/noah-isme/student-report-api/pkg/config"
	"github.com/noah-isme/student-report-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/student-report-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/student-report-api/pkg/middleware/requestid"
)

type routerDeps struct {
	auth       middleware.TokenValidator
	reports    *handler.ReportHandler
	login      *handler.AuthHandler
	metrics    *handler.MetricsHandler
	metricsSvc *service.MetricsService
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", deps.metrics.Health)
	r.GET("/ready", deps.metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", deps.metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", deps.login.Login)

	reports := api.Group("/reports", middleware.JWT(deps.auth))
	reports.GET("", deps.reports.List)
	reports.POST("", deps.reports.Create)
	reports.GET("/analytics", deps.reports.Analytics)
	reports.GET("/analytics/chart", deps.reports.AnalyticsChart)
	reports.GET("/export", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), deps.reports.Export)

	return r
}
