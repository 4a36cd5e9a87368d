package main

import (
	"context"

	"budgetthreads/internal/config"
	"budgetthreads/internal/db"
	"budgetthreads/internal/logging"
	"budgetthreads/internal/repository/product"
	"budgetthreads/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel).Named("seed")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, product.NewPostgres(pool, logger)); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied", zap.Int("products", len(seed.DemoProducts())))
}
