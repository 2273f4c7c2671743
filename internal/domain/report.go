package domain

import (
	"fmt"
	"strings"
)

// DefaultReportLimit caps the number of observations RenderReport prints.
const DefaultReportLimit = 10

// NoObservationsNotice is the whole report for an empty observation list.
const NoObservationsNotice = "🌑 No observations available to display.\n"

const reportDivider = "   ───────────────────────────"

// RenderReport formats the first limit observations in the order given.
// A limit <= 0 selects DefaultReportLimit. An empty list renders
// NoObservationsNotice and nothing else.
func RenderReport(observations []Observation, limit int) string {
	if len(observations) == 0 {
		return NoObservationsNotice
	}
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	if len(observations) > limit {
		observations = observations[:limit]
	}

	var b strings.Builder
	b.WriteString("\n🌙✨ Latest Asteroid Observations ✨🌙\n\n")
	for i, obs := range observations {
		writeObservation(&b, i+1, obs)
	}
	return b.String()
}

func writeObservation(b *strings.Builder, n int, obs Observation) {
	fmt.Fprintf(b, "%d. 🪐 %s %s\n", n, obs.Designation, obs.Tag())
	fmt.Fprintf(b, "   📅 Observation Period: %s to %s\n", obs.ObsStart, obs.ObsEnd)
	fmt.Fprintf(b, "   🔆 Magnitude: %s\n", formatOptional(obs.Magnitude))
	fmt.Fprintf(b, "   💨 Minimum Delta-V: %s km/s\n", formatOptional(obs.MinDeltaV))
	fmt.Fprintf(b, "   🌍 Max Size: %s meters\n", formatOptional(obs.MaxSize))
	fmt.Fprintf(b, "   🌠 Trajectory Information: %s possible trajectory points\n", formatOptionalCount(obs.TrajectoryCount))
	b.WriteString(reportDivider + "\n")
}
