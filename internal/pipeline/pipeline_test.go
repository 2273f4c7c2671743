package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/cli-tools/internal/domain"
	"github.com/couchcryptid/cli-tools/internal/observability"
	"github.com/couchcryptid/cli-tools/internal/pipeline"
)

// --- mocks ---

type mockMissionSource struct {
	set       domain.MissionSet
	err       error
	gotLimit  int
	callCount int
}

func (m *mockMissionSource) Endpoint() string { return "https://nhats.test/api?dv=6" }

func (m *mockMissionSource) FetchMissions(_ context.Context, limit int) (domain.MissionSet, error) {
	m.callCount++
	m.gotLimit = limit
	return m.set, m.err
}

type mockGeocoder struct {
	result domain.GeocodingResult
	err    error
	query  string
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, query string) (domain.GeocodingResult, error) {
	m.query = query
	return m.result, m.err
}

type mockPollenSource struct {
	reading   domain.PollenReading
	err       error
	callCount int
}

func (m *mockPollenSource) FetchPollen(_ context.Context, _, _ float64) (domain.PollenReading, error) {
	m.callCount++
	return m.reading, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func missionSet(n int) domain.MissionSet {
	obs := make([]domain.Observation, n)
	for i := range obs {
		obs[i] = domain.Observation{Designation: fmt.Sprintf("2000 SG%03d", i)}
	}
	return domain.MissionSet{Found: true, Total: n + 100, Observations: obs}
}

var austin = domain.GeocodingResult{Lat: 30.2672, Lon: -97.7431, FormattedAddress: "Austin, Texas, United States"}

func testReading(t *testing.T) domain.PollenReading {
	t.Helper()
	r, err := domain.ParsePollenResponse([]byte(`{"data":[{"Species":{"Tree":{"A":5,"B":9,"C":1}},"Risk":{"tree_pollen":"High"},"updatedAt":"2025-04-14"}]}`))
	require.NoError(t, err)
	return r
}

// --- sky ---

func TestSkyPipeline_Run_HappyPath(t *testing.T) {
	src := &mockMissionSource{set: missionSet(5)}
	metrics := observability.NewMetricsForTesting()
	var out bytes.Buffer

	p := pipeline.NewSky(src, &out, discardLogger(), metrics, 5, 10)
	require.NoError(t, p.Run(context.Background()))

	s := out.String()
	assert.Equal(t, 5, src.gotLimit)
	assert.True(t, strings.HasPrefix(s, "🌍 Starting NHATS data fetch...\n🌍 Fetching NHATS data from: https://nhats.test/api?dv=6\n"))
	assert.Contains(t, s, "📡 Successfully fetched 105 NHATS missions.\n")
	assert.Contains(t, s, "🚀 Displaying observations:\n")
	assert.Equal(t, 5, strings.Count(s, "🪐"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Reports.WithLabelValues("sky", "rendered")))
}

func TestSkyPipeline_Run_ReportLimit(t *testing.T) {
	src := &mockMissionSource{set: missionSet(8)}
	var out bytes.Buffer

	p := pipeline.NewSky(src, &out, discardLogger(), observability.NewMetricsForTesting(), 8, 3)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 3, strings.Count(out.String(), "🪐"))
}

func TestSkyPipeline_Run_FetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"http status", &domain.StatusError{API: "nhats", StatusCode: 503, Body: []byte("down")}, "❌ HTTP error: nhats API error: status 503: down\n"},
		{"decode", &domain.DecodeError{API: "nhats", Err: errors.New("invalid character '<'")}, "❗ Unexpected error: decode nhats response: invalid character '<'\n"},
		{"transport", fmt.Errorf("nhats request: %w", errors.New("connection refused")), "❌ Request error: nhats request: connection refused\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := observability.NewMetricsForTesting()
			var out bytes.Buffer

			p := pipeline.NewSky(&mockMissionSource{err: tt.err}, &out, discardLogger(), metrics, 5, 10)
			require.NoError(t, p.Run(context.Background()))

			assert.Contains(t, out.String(), tt.expected)
			assert.True(t, strings.HasSuffix(out.String(), "🌑 No new NHATS mission candidates available.\n"))
			assert.NotContains(t, out.String(), "🪐")
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Reports.WithLabelValues("sky", "empty")))
		})
	}
}

func TestSkyPipeline_Run_NoDataKey(t *testing.T) {
	var out bytes.Buffer
	p := pipeline.NewSky(&mockMissionSource{}, &out, discardLogger(), observability.NewMetricsForTesting(), 5, 10)
	require.NoError(t, p.Run(context.Background()))

	assert.Contains(t, out.String(), "🌑 No NHATS mission candidates found!\n")
	assert.Contains(t, out.String(), "🌑 No new NHATS mission candidates available.\n")
}

func TestSkyPipeline_Run_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	src := &mockMissionSource{err: context.Canceled}
	p := pipeline.NewSky(src, &out, discardLogger(), observability.NewMetricsForTesting(), 5, 10)

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "No new NHATS")
}

// --- pollen ---

func TestPollenPipeline_Run_HappyPath(t *testing.T) {
	geo := &mockGeocoder{result: austin}
	src := &mockPollenSource{reading: testReading(t)}
	metrics := observability.NewMetricsForTesting()
	var out bytes.Buffer

	p := pipeline.NewPollen(geo, src, &out, discardLogger(), metrics)
	require.NoError(t, p.Run(context.Background(), "Austin TX"))

	s := out.String()
	assert.Equal(t, "Austin TX", geo.query)
	assert.Contains(t, s, "📍 Location: Latitude 30.2672, Longitude -97.7431\n")
	assert.Contains(t, s, "   🌳 B: 9 grains/m³ (Risk: High)\n   🌳 A: 5 grains/m³ (Risk: High)\n")
	assert.NotContains(t, s, " C: ")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Reports.WithLabelValues("pollen", "rendered")))
}

func TestPollenPipeline_Run_GeocoderDecodeError(t *testing.T) {
	geo := &mockGeocoder{err: &domain.DecodeError{API: "nominatim", Body: []byte("<html>blocked</html>"), Err: errors.New("invalid character '<'")}}
	src := &mockPollenSource{}
	var out bytes.Buffer

	p := pipeline.NewPollen(geo, src, &out, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, p.Run(context.Background(), "Paris"))

	assert.Equal(t, "❌ Failed to decode response from geocoder: invalid character '<'\n↪ Response content: <html>blocked</html>\n", out.String())
	assert.Zero(t, src.callCount)
}

func TestPollenPipeline_Run_GeocoderStatusError(t *testing.T) {
	geo := &mockGeocoder{err: &domain.StatusError{API: "nominatim", StatusCode: 403, Body: []byte("forbidden")}}
	var out bytes.Buffer

	p := pipeline.NewPollen(geo, &mockPollenSource{}, &out, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, p.Run(context.Background(), "Paris"))

	assert.Equal(t, "❌ Geocoder returned status 403\n↪ Response content: forbidden\n", out.String())
}

func TestPollenPipeline_Run_GeocoderTransportError(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("dial tcp: no such host")}
	var out bytes.Buffer

	p := pipeline.NewPollen(geo, &mockPollenSource{}, &out, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, p.Run(context.Background(), "Paris"))

	assert.Equal(t, "❌ Failed to reach geocoder: dial tcp: no such host\n", out.String())
}

func TestPollenPipeline_Run_PlaceNotFound(t *testing.T) {
	src := &mockPollenSource{}
	var out bytes.Buffer

	p := pipeline.NewPollen(&mockGeocoder{}, src, &out, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, p.Run(context.Background(), "Atlantis"))

	assert.Equal(t, "❌ Could not find coordinates for Atlantis\n", out.String())
	assert.Zero(t, src.callCount)
}

func TestPollenPipeline_Run_PollenStatusError(t *testing.T) {
	src := &mockPollenSource{err: &domain.StatusError{API: "ambee", StatusCode: 401}}
	metrics := observability.NewMetricsForTesting()
	var out bytes.Buffer

	p := pipeline.NewPollen(&mockGeocoder{result: austin}, src, &out, discardLogger(), metrics)
	require.NoError(t, p.Run(context.Background(), "Austin"))

	assert.Equal(t, "❌ Error fetching pollen data: 401\n"+domain.NoPollenNotice, out.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Reports.WithLabelValues("pollen", "empty")))
}

func TestPollenPipeline_Run_PollenTransportError(t *testing.T) {
	src := &mockPollenSource{err: errors.New("pollen request: connection reset")}
	var out bytes.Buffer

	p := pipeline.NewPollen(&mockGeocoder{result: austin}, src, &out, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, p.Run(context.Background(), "Austin"))

	assert.Equal(t, "❌ Failed to fetch pollen data: pollen request: connection reset\n"+domain.NoPollenNotice, out.String())
}

func TestPollenPipeline_Run_EmptyReading(t *testing.T) {
	var out bytes.Buffer
	p := pipeline.NewPollen(&mockGeocoder{result: austin}, &mockPollenSource{}, &out, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, p.Run(context.Background(), "Austin"))

	assert.Equal(t, domain.NoPollenNotice, out.String())
}

func TestPollenPipeline_Run_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	geo := &mockGeocoder{err: context.Canceled}
	p := pipeline.NewPollen(geo, &mockPollenSource{}, &out, discardLogger(), observability.NewMetricsForTesting())

	require.ErrorIs(t, p.Run(ctx, "Austin"), context.Canceled)
}
