// Package server exposes report generation and history over HTTP.
package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	swaggerUI "github.com/tx7do/kratos-swagger-ui"
	"go.uber.org/zap"

	"github.com/JonasZeihe/NoctuaLight/internal/config"
	"github.com/JonasZeihe/NoctuaLight/internal/hardware"
	"github.com/JonasZeihe/NoctuaLight/internal/report"
	"github.com/JonasZeihe/NoctuaLight/internal/server/assets"
	"github.com/JonasZeihe/NoctuaLight/internal/store"
)

// Run starts the HTTP server and blocks until the context is
// cancelled.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log = log.Named("server")

	var db *store.Store
	if cfg.History.Enabled {
		dbPath := cfg.DatabasePath()
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
		var err error
		db, err = store.New(dbPath)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer db.Close()
	}

	collectors := hardware.NewCollectors(log)
	compiler := report.NewCompiler(log, cfg.Collect.Parallel)
	handler := NewHandler(log, collectors, compiler, db, cfg.Output.Directory, cfg.Collect.Timeout)

	srv := kratoshttp.NewServer(
		kratoshttp.Address(cfg.Server.Listen),
		kratoshttp.Filter(APISecretFilter(cfg.Server.APISecret)),
	)
	handler.Register(srv.Route("/"))

	if cfg.Server.Swagger {
		swaggerUI.RegisterSwaggerUIServerWithOption(
			srv,
			swaggerUI.WithTitle("NoctuaLight"),
			swaggerUI.WithMemoryData(assets.OpenAPI, "yaml"),
		)
		log.Info("swagger ui enabled", zap.String("path", "/docs/"))
	}

	if db != nil && cfg.History.RetentionDays > 0 {
		go runPurgeLoop(ctx, log, db, cfg.History.RetentionDays, cfg.History.PurgeInterval)
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = srv.Stop(context.Background())
	}()

	log.Info("listening",
		zap.String("addr", cfg.Server.Listen),
		zap.Bool("history", db != nil))

	return srv.Start(ctx)
}

// runPurgeLoop deletes history rows past their retention age.
func runPurgeLoop(ctx context.Context, log *zap.Logger, db *store.Store, retentionDays int, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -retentionDays)
			n, err := db.PurgeBefore(ctx, cutoff)
			if err != nil {
				log.Warn("history purge failed", zap.Error(err))
			} else if n > 0 {
				log.Info("history purged",
					zap.Int64("reports", n), zap.Int("retention_days", retentionDays))
			}
		}
	}
}
