package domain

// Observation is one NHATS mission candidate with every field optional.
// Absent values are nil (or MarkerUnknown / MarkerNA for the text fields) so
// formatting code never has to inspect the raw payload.
type Observation struct {
	Designation     string
	ObsStart        string
	ObsEnd          string
	Magnitude       *float64
	MinDeltaV       *float64 // km/s, from min_dv.dv
	MaxSize         *float64 // meters
	TrajectoryCount *int
}

// MissionSet is the result of one NHATS query.
type MissionSet struct {
	// Found is false when the response carried no "data" key at all.
	Found bool
	// Total is the number of candidates the API returned before truncation.
	Total        int
	Observations []Observation
}

// ParseObservation maps a raw NHATS data element onto an Observation.
func ParseObservation(raw map[string]any) Observation {
	obs := Observation{
		Designation:     stringValue(raw["des"], MarkerUnknown),
		ObsStart:        stringValue(raw["obs_start"], MarkerNA),
		ObsEnd:          stringValue(raw["obs_end"], MarkerNA),
		Magnitude:       ParseNumber(raw["obs_mag"]),
		MaxSize:         ParseNumber(raw["max_size"]),
		TrajectoryCount: ParseCount(raw["n_via_traj"]),
	}
	if minDV, ok := raw["min_dv"].(map[string]any); ok {
		obs.MinDeltaV = ParseNumber(minDV["dv"])
	}
	return obs
}

// ParseObservations parses raw elements preserving their order.
func ParseObservations(raw []map[string]any) []Observation {
	out := make([]Observation, 0, len(raw))
	for _, r := range raw {
		out = append(out, ParseObservation(r))
	}
	return out
}

// Tag classifies the observation using its magnitude and minimum delta-v.
func (o Observation) Tag() Tag {
	return Classify(o.Magnitude, o.MinDeltaV)
}
