package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	"github.com/BruksfildServices01/reserva-top/internal/config"
	dbpkg "github.com/BruksfildServices01/reserva-top/internal/db"
	"github.com/BruksfildServices01/reserva-top/internal/infra/cache"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
	"github.com/BruksfildServices01/reserva-top/internal/notify"
	"github.com/BruksfildServices01/reserva-top/internal/routes"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	"github.com/BruksfildServices01/reserva-top/internal/upload"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	if err := dbpkg.Migrate(db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if created, err := dbpkg.SeedAdmin(db, cfg); err != nil {
		logger.Error("admin seed failed", "error", err)
		os.Exit(1)
	} else if created {
		logger.Info("admin user created", "email", cfg.AdminEmail)
	}

	loc, err := timezone.ParseOffset(cfg.TimezoneOffset)
	if err != nil {
		logger.Warn("invalid TIMEZONE_OFFSET, using default", "value", cfg.TimezoneOffset, "default", timezone.DefaultOffset)
		loc = timezone.Location(timezone.DefaultOffset)
	}
	clock := timezone.NewClock(loc)

	// ======================================================
	// Métricas
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// ======================================================
	// Redis (opcional: sem ele cache e rate limit ficam desligados)
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// segue em fail-open
			logger.Warn("redis ping failed", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
	}
	availabilityCache := cache.NewAvailabilityCache(rdb, cfg.AvailabilityCacheTTL, logger, bookingMetrics)

	// ======================================================
	// WhatsApp + auditoria
	// ======================================================
	var sender notify.Sender = notify.NewNoopSender()
	if cfg.WhatsAppEnabled() {
		sender = notify.NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppInstance, cfg.WhatsAppAPIKey)
	} else {
		logger.Info("whatsapp not configured, notifications disabled")
	}
	notifier := notify.NewNotifier(sender, notify.Options{
		Timeout:   cfg.NotifyTimeout,
		QueueSize: cfg.NotifyQueueSize,
		Logger:    logger,
		Metrics:   bookingMetrics,
	})

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)

	// ======================================================
	// Uploads
	// ======================================================
	var uploader *upload.Store
	if cfg.UploadsEnabled() {
		uploader = upload.NewStore(upload.NewS3Client(cfg), cfg.S3Bucket, cfg.S3PublicURL, logger)
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Clock:    clock,
		Redis:    rdb,
		Cache:    availabilityCache,
		Notify:   notifier,
		Audit:    auditDispatcher,
		Metrics:  bookingMetrics,
		Gatherer: registry,
		Uploader: uploader,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	// drena as filas depois que nenhuma requisição nova entra
	notifier.Close()
	auditDispatcher.Close()

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
