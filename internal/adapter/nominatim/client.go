package nominatim

import (
	"context"
	"encoding/json"
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

const apiName = "nominatim"

// Client implements domain.Geocoder using the OpenStreetMap Nominatim search API.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewClient creates a Nominatim geocoding client. Nominatim's usage policy
// requires an identifying User-Agent on every request.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	hc := resty.New().SetHeader("User-Agent", userAgent)
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

// ForwardGeocode converts a free-text place name to coordinates using the
// best-ranked match.
func (c *Client) ForwardGeocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	start := c.clock.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      query,
			"format": "json",
			"limit":  "1",
		}).
		Get(c.baseURL)
	elapsed := c.clock.Since(start)

	if err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.GeocodingResult{}, fmt.Errorf("forward geocode request: %w", err)
	}

	c.logger.Debug("nominatim response", "query", query, "status", resp.StatusCode(), "duration", elapsed)

	if resp.StatusCode() != http.StatusOK {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.GeocodingResult{}, &domain.StatusError{API: apiName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	var places []place
	if err := json.Unmarshal(resp.Body(), &places); err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.GeocodingResult{}, &domain.DecodeError{API: apiName, Body: resp.Body(), Err: err}
	}

	if len(places) == 0 {
		c.metrics.ObserveRequest(apiName, observability.OutcomeEmpty, elapsed)
		return domain.GeocodingResult{}, nil
	}

	result, err := places[0].toResult()
	if err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.GeocodingResult{}, &domain.DecodeError{API: apiName, Body: resp.Body(), Err: err}
	}
	c.metrics.ObserveRequest(apiName, observability.OutcomeSuccess, elapsed)
	return result, nil
}

// Nominatim API response types. Coordinates are sent as decimal strings.

type place struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Name        string  `json:"name"`
	Importance  float64 `json:"importance"`
}

func (p place) toResult() (domain.GeocodingResult, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return domain.GeocodingResult{
		Lat:              lat,
		Lon:              lon,
		FormattedAddress: p.DisplayName,
		PlaceName:        p.Name,
		Confidence:       p.Importance,
	}, nil
}
