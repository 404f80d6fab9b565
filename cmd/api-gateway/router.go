package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/pem-portal-api/internal/handler"
	"github.com/noah-isme/pem-portal-api/internal/middleware"
	"github.com/noah-isme/pem-portal-api/internal/models"
	"github.com/noah-isme/pem-portal-api/internal/service"
	"github.com/noah-isme/pem-portal-api/pkg/config"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/pem-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/pem-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/pem-portal-api/pkg/response"
)

type routerDeps struct {
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *service.MetricsService
	auth       *service.AuthService
	sessions   *service.SessionService
	exports    *service.ExportService
	curriculum *service.CurriculumService
	checks     map[string]handler.ReadinessCheck
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.logger))
	r.Use(corsmiddleware.New(d.cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(d.metrics, d.checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if d.metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := strings.TrimRight(d.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)
	api.GET("/health", metricsHandler.Health)

	auth := middleware.OptionalJWT(d.auth)
	if d.cfg.JWT.Required {
		auth = middleware.JWT(d.auth)
	}

	sessionHandler := handler.NewSessionHandler(d.sessions, d.exports)
	sessions := api.Group("/sessions", auth)
	sessions.POST("", sessionHandler.Create)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.DELETE("/:id", sessionHandler.End)
	sessions.POST("/:id/events", sessionHandler.AppendEvent)
	sessions.GET("/:id/events", sessionHandler.ListEvents)
	sessions.POST("/:id/reset", sessionHandler.Reset)
	sessions.GET("/:id/export", sessionHandler.Export)

	curriculumHandler := handler.NewCurriculumHandler(d.curriculum)
	curriculum := api.Group("/curriculum")
	curriculum.GET("/modules", curriculumHandler.Modules)
	curriculum.GET("/foundations", curriculumHandler.Foundations)
	curriculum.GET("/abc", curriculumHandler.ABC)
	curriculum.POST("/abc/analyze", curriculumHandler.AnalyzeABC)
	curriculum.GET("/levels", curriculumHandler.Levels)
	curriculum.GET("/professionalism", curriculumHandler.Professionalism)
	curriculum.GET("/interactions/:type", curriculumHandler.Interaction)
	curriculum.POST("/language-check", curriculumHandler.LanguageCheck)
	curriculum.GET("/rationale", curriculumHandler.RationaleOptions)
	curriculum.POST("/rationale", curriculumHandler.GenerateRationale)
	curriculum.GET("/point-card", curriculumHandler.PointCardOptions)
	curriculum.GET("/quizzes", curriculumHandler.QuizTopics)
	curriculum.GET("/quizzes/:topic", curriculumHandler.Quiz)
	curriculum.POST("/quizzes/:topic/grade", curriculumHandler.GradeQuiz)

	adminHandler := handler.NewAdminHandler(d.sessions, d.metrics)
	admin := api.Group("/admin", middleware.JWT(d.auth), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/sessions", adminHandler.Sessions)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return r
}
