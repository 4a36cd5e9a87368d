package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetthreads/internal/config"
	"budgetthreads/internal/db"
	"budgetthreads/internal/events"
	"budgetthreads/internal/httpserver"
	"budgetthreads/internal/logging"
	"budgetthreads/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel).Named("api")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool := connectDurable(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	publisher := connectPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher", zap.Error(err))
		}
	}()

	deps, err := wire(ctx, cfg, pool, publisher, logger)
	if err != nil {
		logger.Fatal("wire services", zap.Error(err))
	}

	var pinger httpserver.Pinger
	if pool != nil {
		pinger = pool
	}
	srv, err := httpserver.New(cfg.HTTPAddr, logger, pinger, deps)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr), zap.Bool("durable", pool != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// connectDurable opens and migrates the durable store. It returns nil when
// the store is unreachable; the API then runs on the fallback store only.
func connectDurable(ctx context.Context, cfg config.Config, logger *zap.Logger) *pgxpool.Pool {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := db.Connect(connectCtx, cfg.DBConnString)
	if err != nil {
		logger.Warn("durable store unavailable, using in-memory fallback", zap.Error(err))
		return nil
	}
	if err := migrate.Apply(connectCtx, pool); err != nil {
		logger.Warn("apply migrations failed, using in-memory fallback", zap.Error(err))
		pool.Close()
		return nil
	}
	return pool
}

func connectPublisher(cfg config.Config, logger *zap.Logger) events.Publisher {
	if cfg.RabbitURL == "" {
		return events.Nop{}
	}
	pub, err := events.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		return events.Nop{}
	}
	return pub
}
