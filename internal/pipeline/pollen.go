package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/couchcryptid/cli-tools/internal/domain"
	"github.com/couchcryptid/cli-tools/internal/observability"
)

// PollenPipeline resolves a place name and prints its pollen summary.
type PollenPipeline struct {
	geocoder domain.Geocoder
	source   PollenSource
	printer  printer
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewPollen creates a PollenPipeline.
func NewPollen(geocoder domain.Geocoder, source PollenSource, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *PollenPipeline {
	return &PollenPipeline{
		geocoder: geocoder,
		source:   source,
		printer:  printer{out: out},
		logger:   logger,
		metrics:  metrics,
	}
}

// Run geocodes place and prints the top allergens there. A place that cannot
// be resolved ends the run after its diagnostic; a failed pollen fetch prints
// the empty report. Only context cancellation is returned.
func (p *PollenPipeline) Run(ctx context.Context, place string) error {
	loc, ok := p.locate(ctx, place)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ok {
		return nil
	}

	reading := p.fetch(ctx, loc)
	if err := ctx.Err(); err != nil {
		return err
	}

	result := resultRendered
	if reading.Empty() {
		result = resultEmpty
	}
	p.printer.print(domain.RenderPollen(reading, loc.Lat, loc.Lon))
	p.metrics.Reports.WithLabelValues("pollen", result).Inc()
	return nil
}

func (p *PollenPipeline) locate(ctx context.Context, place string) (domain.GeocodingResult, bool) {
	loc, err := p.geocoder.ForwardGeocode(ctx, place)
	if err != nil {
		p.logger.Warn("geocoding failed", "place", place, "error", err)

		var decodeErr *domain.DecodeError
		var statusErr *domain.StatusError
		switch {
		case errors.As(err, &decodeErr):
			p.printer.printf("❌ Failed to decode response from geocoder: %v\n", decodeErr.Err)
			p.printer.printf("↪ Response content: %s\n", decodeErr.Body)
		case errors.As(err, &statusErr):
			p.printer.printf("❌ Geocoder returned status %d\n", statusErr.StatusCode)
			p.printer.printf("↪ Response content: %s\n", statusErr.Body)
		default:
			p.printer.printf("❌ Failed to reach geocoder: %v\n", err)
		}
		return domain.GeocodingResult{}, false
	}

	if !loc.Found() {
		p.printer.printf("❌ Could not find coordinates for %s\n", place)
		return domain.GeocodingResult{}, false
	}

	p.logger.Info("geocoded place", "place", place, "address", loc.FormattedAddress, "lat", loc.Lat, "lon", loc.Lon)
	return loc, true
}

func (p *PollenPipeline) fetch(ctx context.Context, loc domain.GeocodingResult) domain.PollenReading {
	reading, err := p.source.FetchPollen(ctx, loc.Lat, loc.Lon)
	if err == nil {
		return reading
	}

	p.logger.Warn("pollen fetch failed", "lat", loc.Lat, "lon", loc.Lon, "error", err)

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		p.printer.printf("❌ Error fetching pollen data: %d\n", statusErr.StatusCode)
	} else {
		p.printer.printf("❌ Failed to fetch pollen data: %v\n", err)
	}
	return domain.PollenReading{}
}
