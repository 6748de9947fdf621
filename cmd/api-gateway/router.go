package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/api/swagger"
	"github.com/noah-isme/uni-timetable-api/internal/handler"
	internalmiddleware "github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type routerDeps struct {
	timetable *handler.TimetableHandler
	health    *handler.MetricsHandler
	metrics   *service.MetricsService
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(deps.metrics))

	r.GET("/health", deps.health.Health)
	r.GET("/ready", deps.health.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", deps.health.Prometheus)
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedule", deps.timetable.Generate)
		api.POST("/schedule/export", deps.timetable.Export)
		api.POST("/schedule/stats", deps.timetable.Stats)
		api.GET("/schedule/runs", deps.timetable.Runs)
	}

	if cfg.Env != config.EnvProduction {
		swagger.SetAPIPrefix(cfg.APIPrefix)
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(response.NotFound)
	return r
}
