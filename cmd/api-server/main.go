package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookplanner/database"
	"bookplanner/internal/config"
	"bookplanner/internal/logger"
	"bookplanner/internal/metrics"
	"bookplanner/internal/microservices/http-api/handler"
	"bookplanner/internal/microservices/http-api/middleware"
	"bookplanner/internal/microservices/http-api/repository"
	"bookplanner/internal/microservices/http-api/service"
	"bookplanner/internal/microservices/reminder"
	"bookplanner/internal/microservices/websocket"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	lg := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(lg)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to the database and migrate
	db, err := database.OpenGorm(cfg.DatabaseURL, lg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	if err := database.RunMigrations(db, lg); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not create readiness pool: %v", err)
	}
	defer pool.Close()

	// 3. Redis is optional; without it stale reads are unavailable
	redisClient, err := repository.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		lg.Warn("redis unavailable, snapshot cache disabled", slog.Any("error", err))
	} else {
		defer redisClient.Close()
	}
	cache := repository.NewSnapshotCache(redisClient, cfg.CacheTTL)

	// 4. Wire services
	loc := cfg.Location()
	bookRepo := repository.NewBookRepository(db)
	goalsRepo := repository.NewGoalsRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	snapshots := service.NewSnapshots(bookRepo, goalsRepo, cache, lg)

	hub := websocket.NewHub(lg)
	go hub.Run(ctx)

	schedule := reminder.Schedule{
		Enabled:  cfg.ReminderEnabled,
		Hour:     cfg.ReminderHour,
		Minute:   cfg.ReminderMinute,
		Location: loc,
	}
	notifications := service.NewNotificationService(settingsRepo, snapshots, hub, schedule, time.Now, lg)
	go func() {
		if err := reminder.NewScheduler(schedule, notifications, lg).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			lg.Error("reminder scheduler stopped", slog.Any("error", err))
		}
	}()

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	}()

	var metricsHandler http.Handler
	if cfg.PrometheusEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics.Register(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	// 5. Setup Gin
	r := handler.NewRouter(handler.RouterDeps{
		Books:         service.NewBookService(bookRepo, snapshots, time.Now, loc, lg),
		Goals:         service.NewGoalService(goalsRepo, snapshots, lg),
		Stats:         service.NewStatsService(snapshots, time.Now, loc),
		Data:          service.NewDataService(bookRepo, goalsRepo, settingsRepo, snapshots, time.Now, loc, lg),
		Notifications: notifications,
		Hub:           hub,
		DB:            pool,
		Metrics:       metricsHandler,
		Limiter:       limiter,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        lg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("api server listening", slog.String("addr", srv.Addr), slog.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", slog.Any("error", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
