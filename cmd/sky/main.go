package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"github.com/couchcryptid/cli-tools/internal/adapter/nhats"
	"github.com/couchcryptid/cli-tools/internal/config"
	"github.com/couchcryptid/cli-tools/internal/observability"
	"github.com/couchcryptid/cli-tools/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Stdout, observability.NewMetrics())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, stdout io.Writer, metrics *observability.Metrics) int {
	cfg, err := config.LoadSky()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(&cfg.Config)
	client := nhats.NewClient(cfg.NHATSURL, cfg.HTTPTimeout, logger, metrics)
	p := pipeline.NewSky(client, stdout, logger, metrics, cfg.FetchLimit, cfg.ReportLimit)

	if err := p.Run(ctx); err != nil {
		logger.Warn("interrupted", "error", err)
		return 1
	}

	if cfg.PushgatewayURL != "" {
		if err := observability.Push(context.WithoutCancel(ctx), cfg.PushgatewayURL, "sky", metrics); err != nil {
			logger.Error("metrics push failed", slog.Any("error", xerrors.New(err)))
		}
	}
	return 0
}
