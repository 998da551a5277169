// Package main is the entry point for the serial and batch summary API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"sbreport/internal/config"
	"sbreport/internal/core/security"
	"sbreport/internal/domain/auth"
	"sbreport/internal/domain/lookup"
	"sbreport/internal/domain/reports"
	"sbreport/internal/infrastructure/cache"
	v1 "sbreport/internal/infrastructure/http/v1"
	"sbreport/internal/infrastructure/i18n"
	"sbreport/internal/infrastructure/storage/postgres"
	"sbreport/internal/infrastructure/storage/postgres/catalog_repo"
	"sbreport/internal/infrastructure/storage/postgres/lookup_repo"
	"sbreport/internal/infrastructure/storage/postgres/report_repo"
	"sbreport/pkg/logger"
)

const poolStatsInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	log.Infow("starting server", "app", cfg.App.Name, "env", cfg.App.Env)

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Infow("database connection established", "max_conns", cfg.DB.MaxConns)

	txm := postgres.NewTxManager(pool, cfg.DB.StatementTimeout)

	// --- Item tracking ---
	var items reports.ItemLookup = catalog_repo.NewItemRepo(txm)
	if cfg.Report.ItemCacheEnabled {
		itemCache := cache.NewItemCache(items, pool.Pool)
		itemCache.Start(ctx)
		defer itemCache.Stop()
		items = itemCache
		log.Infow("item tracking cache enabled", "channel", cache.ItemChangedChannel)
	}

	// --- Services ---
	reportService := reports.NewService(report_repo.NewReportRepo(txm), items, txm)
	lookupService := lookup.NewService(lookup_repo.NewLookupRepo(txm), txm)

	translations, err := i18n.NewCatalog()
	if err != nil {
		log.Fatalw("failed to build translations", "error", err)
	}

	policy, err := security.NewAccessPolicy(cfg.Report.AccessRule)
	if err != nil {
		log.Fatalw("invalid report access rule", "error", err)
	}
	log.Infow("access rule loaded", "expression", policy.Expression())

	jwtService := auth.NewJWTService(auth.JWTConfigFrom(cfg.JWT))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		DB:            pool,
		Logger:        log.WithComponent("http"),
		JWTValidator:  jwtService,
		ReportService: reportService,
		LookupService: lookupService,
		Translations:  translations,
		AccessPolicy:  policy,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      gzhttp.GzipHandler(router),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	go reportPoolStats(ctx, pool)

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func reportPoolStats(ctx context.Context, pool *postgres.Pool) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			postgres.LogPoolStats(ctx, pool)
		}
	}
}
