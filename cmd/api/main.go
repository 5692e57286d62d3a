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
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/cache"
	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/pro-scheduler/internal/db"
	"github.com/BruksfildServices01/pro-scheduler/internal/metrics"
	"github.com/BruksfildServices01/pro-scheduler/internal/routes"
	"github.com/BruksfildServices01/pro-scheduler/internal/storage"
)

func main() {

	cfg := config.Load()
	log := setupLogger(cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer dbpkg.Close(db)

	// the busy cache is optional: without redis every request reads the store
	var redisClient *redis.Client
	if client, err := cache.NewRedisClient(cfg); err != nil {
		log.WithError(err).Warn("redis unavailable, busy cache disabled")
	} else {
		redisClient = client
		defer redisClient.Close()
	}
	busyCache := cache.NewBusyCache(redisClient, cfg.BusyCacheTTL, log)

	var photos *storage.PhotoStore
	if cfg.PhotoStorageEnabled() {
		photos = storage.NewPhotoStore(
			storage.NewS3Client(cfg),
			cfg.S3Bucket,
			cfg.S3Region,
			cfg.S3PublicBaseURL,
		)
	} else {
		log.Warn("S3 not configured, photo uploads disabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		BusyCache: busyCache,
		Photos:    photos,
		Audit:     auditDispatcher,
		Metrics:   metrics.NewSchedulingMetrics(reg),
		Gatherer:  reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	log.Info("server shutdown complete")
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
