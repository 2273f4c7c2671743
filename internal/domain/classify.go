package domain

// Brightness is the magnitude axis of a Tag.
type Brightness string

const (
	BrightnessObserved Brightness = "Observed"
	BrightnessBright   Brightness = "Bright"
	BrightnessDim      Brightness = "Dim"
)

// Velocity is the optional delta-v axis of a Tag.
type Velocity string

const (
	VelocityNone Velocity = ""
	VelocityFast Velocity = "Fast"
	VelocitySlow Velocity = "Slow"
)

// Classification thresholds. Magnitude is inverted: smaller is brighter.
const (
	brightMagnitude = 15.0
	dimMagnitude    = 20.0
	fastDeltaV      = 10.0 // km/s
	slowDeltaV      = 1.0  // km/s
)

var labels = map[string]string{
	string(BrightnessObserved): "🔭✨",
	string(BrightnessBright):   "🌟🌙",
	string(BrightnessDim):      "🌑💤",
	string(VelocityFast):       "💨🚀",
	string(VelocitySlow):       "🐢🌠",
}

// Tag is the derived label pair for one observation.
type Tag struct {
	Brightness Brightness
	Velocity   Velocity
}

// String renders the brightness label, then the velocity label when present.
func (t Tag) String() string {
	s := labels[string(t.Brightness)]
	if t.Velocity != VelocityNone {
		s += " " + labels[string(t.Velocity)]
	}
	return s
}

// Classify derives a Tag from magnitude and velocity. Absent inputs take the
// default on their axis, so the function is total.
func Classify(magnitude, velocity *float64) Tag {
	t := Tag{Brightness: BrightnessObserved}

	switch {
	case magnitude != nil && *magnitude < brightMagnitude:
		t.Brightness = BrightnessBright
	case magnitude != nil && *magnitude > dimMagnitude:
		t.Brightness = BrightnessDim
	}

	switch {
	case velocity != nil && *velocity > fastDeltaV:
		t.Velocity = VelocityFast
	case velocity != nil && *velocity < slowDeltaV:
		t.Velocity = VelocitySlow
	}

	return t
}

// ClassifyValues is Classify for untyped inputs such as raw JSON values.
func ClassifyValues(magnitude, velocity any) Tag {
	return Classify(ParseNumber(magnitude), ParseNumber(velocity))
}
