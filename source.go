package synth

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-synth/internal/mathutil"
)

// Source is a stateless periodic signal: a waveform at a fixed amplitude and
// frequency. Sample is a pure function of time and safe for concurrent use.
type Source struct {
	Waveform  Waveform
	Amplitude float64 // Linear gain, typically in [0, 1]
	Frequency float64 // Hz, positive
}

// NewSource creates a validated source.
func NewSource(w Waveform, amplitude, frequency float64) (Source, error) {
	s := Source{Waveform: w, Amplitude: amplitude, Frequency: frequency}
	if err := s.Validate(); err != nil {
		return Source{}, err
	}
	return s, nil
}

// Validate rejects sources that would produce NaN or meaningless output.
func (s Source) Validate() error {
	if !s.Waveform.Valid() {
		return fmt.Errorf("%w: unknown waveform %d", ErrInvalidSource, int(s.Waveform))
	}
	if !mathutil.IsFinite(s.Frequency) || s.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be finite and positive, got %v", ErrInvalidSource, s.Frequency)
	}
	if !mathutil.IsFinite(s.Amplitude) || s.Amplitude < 0 {
		return fmt.Errorf("%w: amplitude must be finite and non-negative, got %v", ErrInvalidSource, s.Amplitude)
	}
	return nil
}

// Period returns the length of one cycle in seconds.
func (s Source) Period() float64 {
	return 1 / s.Frequency
}

// Sample returns the amplitude at time t in seconds. Time need not be
// monotonic; negative times are wrapped like positive ones.
func (s Source) Sample(t float64) float64 {
	if s.Waveform == Sine {
		// Unwrapped argument, matching sin(2π·f·t) bit for bit
		return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t)
	}
	return s.Amplitude * s.Waveform.At(mathutil.Frac(s.Frequency*t))
}

// String formats the source for logs and CLI output.
func (s Source) String() string {
	return fmt.Sprintf("%s %.2f Hz @ %.2f", s.Waveform, s.Frequency, s.Amplitude)
}

// SineSource returns a full-scale sine source.
func SineSource(frequency float64) Source {
	return Source{Waveform: Sine, Amplitude: defaultAmplitude, Frequency: frequency}
}
