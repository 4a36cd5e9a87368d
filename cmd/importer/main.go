package main

import (
	"context"
	"flag"
	"os"
	"time"

	"budgetthreads/internal/config"
	"budgetthreads/internal/db"
	"budgetthreads/internal/importer"
	"budgetthreads/internal/logging"
	"budgetthreads/internal/repository/product"
	"budgetthreads/internal/service/catalog"
	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV (id,title,description,price,image,badge,sizes,color)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel).Named("importer")
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.String("file", filePath), zap.Error(err))
	}
	defer f.Close()

	products := catalog.New(product.NewPostgres(pool, logger))
	imp := importer.NewCSVImporter(f, products)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	logger.Info("import done", zap.Int("products", count), zap.Duration("took", time.Since(start).Truncate(time.Millisecond)))
}
