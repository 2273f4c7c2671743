package nhats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cli-tools/internal/domain"
	"github.com/couchcryptid/cli-tools/internal/observability"
)

const apiName = "nhats"

// missionQuery pins the NHATS constraints the sky report is built around:
// total delta-v <= 6 km/s, duration <= 360 days, stay >= 8 days, launch
// 2020-2045, H <= 26 and orbit condition code <= 7.
var missionQuery = map[string]string{
	"dv":     "6",
	"dur":    "360",
	"stay":   "8",
	"launch": "2020-2045",
	"h":      "26",
	"occ":    "7",
}

// Client fetches mission candidates from the JPL NHATS API.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewClient creates an NHATS client. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	hc := resty.New()
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

// Endpoint returns the full query URL, for display.
func (c *Client) Endpoint() string {
	params := url.Values{}
	for k, v := range missionQuery {
		params.Set(k, v)
	}
	return c.baseURL + "?" + params.Encode()
}

// FetchMissions queries NHATS and returns at most limit candidates in the
// order the API listed them. A response without a "data" key is not an
// error; the returned set has Found == false.
func (c *Client) FetchMissions(ctx context.Context, limit int) (domain.MissionSet, error) {
	start := c.clock.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(missionQuery).
		Get(c.baseURL)
	elapsed := c.clock.Since(start)

	if err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.MissionSet{}, fmt.Errorf("nhats request: %w", err)
	}

	c.logger.Debug("nhats response", "status", resp.StatusCode(), "duration", elapsed)

	if resp.StatusCode() != http.StatusOK {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.MissionSet{}, &domain.StatusError{API: apiName, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	var payload response
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeError, elapsed)
		return domain.MissionSet{}, &domain.DecodeError{API: apiName, Body: resp.Body(), Err: err}
	}

	if payload.Data == nil {
		c.metrics.ObserveRequest(apiName, observability.OutcomeEmpty, elapsed)
		return domain.MissionSet{}, nil
	}

	raw := *payload.Data
	set := domain.MissionSet{Found: true, Total: len(raw)}
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	set.Observations = domain.ParseObservations(raw)

	outcome := observability.OutcomeSuccess
	if set.Total == 0 {
		outcome = observability.OutcomeEmpty
	}
	c.metrics.ObserveRequest(apiName, outcome, elapsed)
	return set, nil
}

// NHATS API response types.

type response struct {
	Data *[]map[string]any `json:"data"`
}
