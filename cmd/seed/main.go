// Package main creates the report tables and loads a small demo dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"sbreport/internal/config"
	"sbreport/internal/infrastructure/storage/postgres"
	"sbreport/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", true, "load demo data when the tables are empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	if !*demo {
		return
	}

	txm := postgres.NewTxManager(pool, cfg.DB.StatementTimeout)
	inserter := postgres.NewBatchInserter(txm)

	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var n int
		if err := txm.GetQuerier(ctx).QueryRow(ctx, "SELECT count(*) FROM items").Scan(&n); err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if n > 0 {
			log.Infow("demo data already present, skipping", "items", n)
			return nil
		}
		return seedDemoData(ctx, inserter, log)
	})
	if err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Info("seeding completed successfully")
}
