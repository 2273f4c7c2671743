package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/couchcryptid/cli-tools/internal/domain"
)

// MissionSource fetches NHATS mission candidates.
type MissionSource interface {
	// Endpoint is the URL being queried, shown to the user before the fetch.
	Endpoint() string
	FetchMissions(ctx context.Context, limit int) (domain.MissionSet, error)
}

// PollenSource fetches the pollen reading nearest a coordinate.
type PollenSource interface {
	FetchPollen(ctx context.Context, lat, lon float64) (domain.PollenReading, error)
}

// Report result label values.
const (
	resultRendered = "rendered"
	resultEmpty    = "empty"
)

// printer writes user-facing lines to the output sink. Write errors are dropped.
type printer struct {
	out io.Writer
}

func (p printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...) //nolint:errcheck // best-effort terminal output
}

func (p printer) println(s string) {
	fmt.Fprintln(p.out, s) //nolint:errcheck // best-effort terminal output
}

func (p printer) print(s string) {
	io.WriteString(p.out, s) //nolint:errcheck // best-effort terminal output
}
