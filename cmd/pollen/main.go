package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"github.com/couchcryptid/cli-tools/internal/adapter/ambee"
	"github.com/couchcryptid/cli-tools/internal/adapter/nominatim"
	"github.com/couchcryptid/cli-tools/internal/config"
	"github.com/couchcryptid/cli-tools/internal/observability"
	"github.com/couchcryptid/cli-tools/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdout, observability.NewMetrics())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer, metrics *observability.Metrics) int {
	cfg, err := config.LoadPollen()
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			fmt.Fprintln(stdout, "❌ API key not found. Please add 'POLLEN_API_KEY' in your .env file.") //nolint:errcheck
			return 1
		}
		slog.Error("failed to load config", "error", err)
		return 1
	}

	if len(args) == 0 {
		fmt.Fprintln(stdout, "Usage: pollen <City Name>") //nolint:errcheck
		return 1
	}
	place := strings.Join(args, " ")

	logger := observability.NewLogger(&cfg.Config)
	geocoder := nominatim.NewClient(cfg.GeocoderURL, cfg.UserAgent, cfg.HTTPTimeout, logger, metrics)
	source := ambee.NewClient(cfg.PollenURL, cfg.APIKey, cfg.HTTPTimeout, logger, metrics)
	p := pipeline.NewPollen(geocoder, source, stdout, logger, metrics)

	if err := p.Run(ctx, place); err != nil {
		logger.Warn("interrupted", "error", err)
		return 1
	}

	if cfg.PushgatewayURL != "" {
		if err := observability.Push(context.WithoutCancel(ctx), cfg.PushgatewayURL, "pollen", metrics); err != nil {
			logger.Error("metrics push failed", slog.Any("error", xerrors.New(err)))
		}
	}
	return 0
}
