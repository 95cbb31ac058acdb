// cmd/quiz-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"settlement-quiz/internal/clients/contact"
	"settlement-quiz/internal/clients/estimate"
	"settlement-quiz/internal/common/config"
	"settlement-quiz/internal/common/database"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/common/observability"
	"settlement-quiz/internal/quiz/analytics"
	"settlement-quiz/internal/quiz/catalog"
	"settlement-quiz/internal/quiz/store"
	"settlement-quiz/internal/transport/rest"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting quiz server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Answer store ---
	var backing store.Store
	switch cfg.Storage.Backend {
	case "redis":
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Storage.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		backing = store.NewRedisStore(redis, log)
	default:
		zapLog.Info("Using in-memory answer store")
		backing = store.NewMemoryStore()
	}
	sessions := store.NewSessionStore(backing, cfg.Storage.Namespace, log)

	// --- Outbound clients ---
	estimator := estimate.NewClient(cfg.Webhooks.Estimate, log, obs)
	contactClient := contact.NewClient(cfg.Webhooks.Contact, log)
	tracker := analytics.NewTracker(log)

	router := rest.NewRouter(&rest.Container{
		Config:    cfg,
		Logger:    log,
		Sessions:  sessions,
		Estimator: estimator,
		Contact:   contactClient,
		Tracker:   tracker,
		Catalog:   catalog.Questions,
	})

	// --- Metrics Server ---
	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, metricsMux); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- API Server ---
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	go func() {
		zapLog.Info("Quiz API listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	zapLog.Info("Quiz server stopped gracefully")
}
