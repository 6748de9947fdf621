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
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/handler"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/cache"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/database"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
)

// @title University Timetable API
// @version 1.0.0
// @description Greedy weekly timetable generation for lectures, labs and tutorials
// @BasePath /
// @schemes http

const shutdownTimeout = 15 * time.Second

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

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	var checks []handler.ReadinessCheck

	var cacheSvc *service.CacheService
	if cfg.Scheduler.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("result cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.CacheTTL, logr, true)
			checks = append(checks, handler.ReadinessCheck{Name: "redis", Check: cacheRepo.Ping})
		}
	}

	var auditor service.RunAuditor
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Warn("run audit disabled", zap.Error(err))
		} else {
			defer db.Close() //nolint:errcheck
			runRepo := repository.NewSchedulingRunRepository(db)
			if err := runRepo.EnsureSchema(ctx); err != nil {
				logr.Warn("run audit schema check failed", zap.Error(err))
			}
			auditSvc := service.NewRunAuditService(runRepo, metricsSvc, logr, service.RunAuditConfig{
				Workers:    cfg.Audit.Workers,
				Retries:    cfg.Audit.Retries,
				RetryDelay: cfg.Audit.RetryDelay,
			})
			auditSvc.Start(ctx)
			defer auditSvc.Stop()
			auditor = auditSvc
			checks = append(checks, handler.ReadinessCheck{Name: "postgres", Check: db.PingContext})
		}
	}

	timetableSvc := service.NewTimetableService(
		scheduler.New(logr),
		cacheSvc,
		auditor,
		metricsSvc,
		validator.New(),
		logr,
		service.TimetableServiceConfig{
			MaxComponents: cfg.Scheduler.MaxComponents,
			CacheTTL:      cfg.Scheduler.CacheTTL,
		},
	)

	router := newRouter(cfg, logr, routerDeps{
		timetable: handler.NewTimetableHandler(timetableSvc),
		health:    handler.NewMetricsHandler(metricsSvc, checks...),
		metrics:   metricsSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
