package ambee

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cli-tools/internal/domain"
	"github.com/couchcryptid/cli-tools/internal/observability"
)

const apiName = "ambee"

// Client fetches the latest pollen reading for a coordinate from Ambee.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewClient creates an Ambee client authenticated with a static API key.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	hc := resty.New().SetHeader("x-api-key", apiKey)
	if timeout > 0 {
		hc.SetTimeout(timeout)
	}
	return &Client{
		http:    hc,
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// FetchPollen returns the reading nearest to lat/lon. Any status other than
// 200 is a *domain.StatusError.
func (c *Client) FetchPollen(ctx context.Context, lat, lon float64) (domain.PollenReading, error) {
	start := c.clock.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat": strconv.FormatFloat(lat, 'f', -1, 64),
			"lng": strconv.FormatFloat(lon, 'f', -1, 64),
		}).
		Get(c.baseURL)
	elapsed := c.clock.Since(start)

	if err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.PollenReading{}, fmt.Errorf("pollen request: %w", err)
	}

	c.logger.Debug("ambee response", "lat", lat, "lon", lon, "status", resp.StatusCode(), "duration", elapsed)

	if resp.StatusCode() != http.StatusOK {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.PollenReading{}, &domain.StatusError{API: apiName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	reading, err := domain.ParsePollenResponse(resp.Body())
	if err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.PollenReading{}, &domain.DecodeError{API: apiName, Body: resp.Body(), Err: err}
	}

	outcome := observability.OutcomeSuccess
	if reading.Empty() {
		outcome = observability.OutcomeEmpty
	}
	c.metrics.ObserveRequest(apiName, outcome, elapsed)
	return reading, nil
}
