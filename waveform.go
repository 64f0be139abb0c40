package synth

import (
	"math"
	"strings"

	"github.com/tphakala/go-audio-synth/internal/mathutil"
)

// Waveform enumerates the supported oscillator shapes.
// The set is closed; every switch over it is exhaustive.
type Waveform int

const (
	// Sine is a pure tone.
	Sine Waveform = iota

	// Sawtooth ramps from -1 to +1 over each period and jumps back.
	Sawtooth

	// Triangle ramps linearly from -1 up to +1 at half period and back down.
	Triangle

	// Square is +1 for the first half period and -1 for the second.
	Square
)

// DefaultWaveform is used for unrecognised waveform names.
const DefaultWaveform = Square

// waveformNames holds the control vocabulary, canonical name first.
var waveformNames = map[string]Waveform{
	"sine":     Sine,
	"sin":      Sine,
	"sawtooth": Sawtooth,
	"saw":      Sawtooth,
	"triangle": Triangle,
	"tri":      Triangle,
	"square":   Square,
	"sq":       Square,
}

// String returns the canonical name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	default:
		return "unknown"
	}
}

// Valid reports whether w is one of the defined shapes.
func (w Waveform) Valid() bool {
	return w >= Sine && w <= Square
}

// ParseWaveform looks up a waveform by name, ignoring case.
func ParseWaveform(name string) (Waveform, bool) {
	w, ok := waveformNames[name]
	if !ok {
		w, ok = waveformNames[strings.ToLower(name)]
	}
	return w, ok
}

// WaveformFromToken maps a control token to a waveform, falling back to
// DefaultWaveform instead of failing.
func WaveformFromToken(token string) Waveform {
	if w, ok := ParseWaveform(token); ok {
		return w
	}
	return DefaultWaveform
}

// At returns the unit-amplitude value at phase, a position within one cycle
// in [0, 1). Callers wrap the phase.
func (w Waveform) At(phase float64) float64 {
	switch w {
	case Sine:
		return math.Sin(mathutil.Radians(phase))
	case Sawtooth:
		return sawScale*phase - 1
	case Triangle:
		return 1 - triSlope*math.Abs(phase-halfCycle)
	case Square:
		if phase < halfCycle {
			return 1
		}
		return -1
	default:
		return 0
	}
}
