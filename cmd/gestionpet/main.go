package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestionpet/gestionpet/internal/app"
	"github.com/gestionpet/gestionpet/internal/masterdata/materials"
	"github.com/gestionpet/gestionpet/internal/masterdata/suppliers"
	"github.com/gestionpet/gestionpet/internal/observability"
	"github.com/gestionpet/gestionpet/internal/platform/cache"
	"github.com/gestionpet/gestionpet/internal/platform/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	metrics := observability.NewMetrics()

	var listCache *cache.Store
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, list cache disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			listCache = cache.NewStore(redisClient, cfg.CacheTTL, metrics)
		}
	}

	supplierRepo := suppliers.NewCachedRepository(suppliers.NewRepository(dbpool), listCache, logger)
	supplierHandler := suppliers.NewHandler(logger, suppliers.NewService(supplierRepo))

	materialRepo := materials.NewCachedRepository(materials.NewRepository(dbpool), listCache, logger)
	materialHandler := materials.NewHandler(logger, materials.NewService(materialRepo))

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SupplierHandler: supplierHandler,
		MaterialHandler: materialHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("prefix", cfg.APIPrefix))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
