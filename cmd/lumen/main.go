package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	corecfg "github.com/lumen-lab/project-lumen/internal/core/config"
	"github.com/lumen-lab/project-lumen/internal/core/queryindex"
	"github.com/lumen-lab/project-lumen/internal/ingestion"
	"github.com/lumen-lab/project-lumen/internal/queries"
	"github.com/lumen-lab/project-lumen/internal/server"
)

func main() {
	configPath := flag.String("config", "lumen.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Ingest the query log into the index (single pass, then finalize)
	index := queryindex.NewTrie()

	src, err := buildSource(cfg)
	if err != nil {
		slog.Error("Failed to open query log source", "error", err)
		os.Exit(1)
	}

	ingestSvc := ingestion.NewService(index, cfg.Log.ProgressEvery)
	stats, err := ingestSvc.Run(ctx, src)
	src.Close()
	if err != nil {
		slog.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Index ready",
		"ingested", stats.Ingested,
		"skipped", stats.Skipped,
		"distinct_queries", stats.Distinct,
	)

	// 3. Initialize the query engine and HTTP server
	querySvc := queries.NewService(index)

	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), index, cfg.Server.Mode)
	querySvc.RegisterRoutes(srv.Engine)

	// 4. Run until a signal arrives
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// buildSource picks the configured query-log source.
func buildSource(cfg *corecfg.Config) (ingestion.Source, error) {
	switch cfg.Log.SourceType {
	case "file":
		return ingestion.NewFileSource(cfg.Log.Path)
	case "postgres":
		return ingestion.NewPostgresSource(
			cfg.Database.DSN,
			cfg.Database.Table,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
	default:
		return nil, fmt.Errorf("unsupported log source type %q", cfg.Log.SourceType)
	}
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
