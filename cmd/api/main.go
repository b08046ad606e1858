package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	"github.com/BruksfildServices01/freelance-desk/internal/config"
	dbpkg "github.com/BruksfildServices01/freelance-desk/internal/db"
	"github.com/BruksfildServices01/freelance-desk/internal/logger"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
	"github.com/BruksfildServices01/freelance-desk/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", false)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	catalog, err := permission.Load(cfg.PermissionsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load permission catalog")
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------------------------------------
	// Optional public page cache
	// --------------------------------------------------
	var publicCache cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, public cache disabled")
		} else {
			defer client.Close()
			publicCache = cache.NewRedisCache(client, cfg.PublicCacheTTL, log)
		}
	}

	offloader := media.FromConfig(cfg.S3)
	if offloader != nil {
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("image offloading enabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Logger:    log,
		Tokens:    auth.NewTokenService(cfg.JWTSecret),
		Catalog:   catalog,
		Cache:     publicCache,
		Offloader: offloader,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
