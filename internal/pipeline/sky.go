package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/couchcryptid/cli-tools/internal/domain"
	"github.com/couchcryptid/cli-tools/internal/observability"
)

// SkyPipeline fetches NHATS candidates and prints the observation report.
type SkyPipeline struct {
	source      MissionSource
	printer     printer
	logger      *slog.Logger
	metrics     *observability.Metrics
	fetchLimit  int
	reportLimit int
}

// NewSky creates a SkyPipeline. fetchLimit bounds how many candidates are
// kept from the API; reportLimit bounds how many of those are printed.
func NewSky(source MissionSource, out io.Writer, logger *slog.Logger, metrics *observability.Metrics, fetchLimit, reportLimit int) *SkyPipeline {
	return &SkyPipeline{
		source:      source,
		printer:     printer{out: out},
		logger:      logger,
		metrics:     metrics,
		fetchLimit:  fetchLimit,
		reportLimit: reportLimit,
	}
}

// Run performs one fetch-and-print cycle. Fetch failures are reported and
// degrade to an empty report; only context cancellation is returned.
func (p *SkyPipeline) Run(ctx context.Context) error {
	p.printer.println("🌍 Starting NHATS data fetch...")

	observations := p.fetch(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(observations) == 0 {
		p.printer.println("🌑 No new NHATS mission candidates available.")
		p.metrics.Reports.WithLabelValues("sky", resultEmpty).Inc()
		return nil
	}

	p.printer.println("🚀 Displaying observations:")
	p.printer.print(domain.RenderReport(observations, p.reportLimit))
	p.metrics.Reports.WithLabelValues("sky", resultRendered).Inc()
	return nil
}

func (p *SkyPipeline) fetch(ctx context.Context) []domain.Observation {
	p.printer.printf("🌍 Fetching NHATS data from: %s\n", p.source.Endpoint())

	set, err := p.source.FetchMissions(ctx, p.fetchLimit)
	if err != nil {
		p.logger.Warn("nhats fetch failed", "error", err)

		var statusErr *domain.StatusError
		var decodeErr *domain.DecodeError
		switch {
		case errors.As(err, &statusErr):
			p.printer.printf("❌ HTTP error: %v\n", err)
		case errors.As(err, &decodeErr):
			p.printer.printf("❗ Unexpected error: %v\n", err)
		default:
			p.printer.printf("❌ Request error: %v\n", err)
		}
		return nil
	}

	if !set.Found {
		p.printer.println("🌑 No NHATS mission candidates found!")
		return nil
	}

	p.printer.printf("📡 Successfully fetched %d NHATS missions.\n", set.Total)
	p.logger.Info("nhats fetch complete", "total", set.Total, "kept", len(set.Observations))
	return set.Observations
}
