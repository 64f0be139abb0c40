package synth

import (
	"fmt"

	"github.com/tphakala/go-audio-synth/internal/mathutil"
)

// Oscillator is a phase-accumulating generator. It is owned by a single
// goroutine (the render callback); nothing in it is synchronized.
type Oscillator struct {
	waveform   Waveform
	sampleRate float64
	frequency  float64
	amplitude  float64
	phase      float64 // Position within the current cycle, [0, 1)
	step       float64 // frequency / sampleRate
}

// NewOscillator creates an oscillator at phase zero.
//
// A zero or negative frequency is accepted and yields a constant or
// backwards-running waveform; non-finite values are rejected.
func NewOscillator(w Waveform, frequency, sampleRate float64) (*Oscillator, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: unknown waveform %d", ErrInvalidSource, int(w))
	}
	if !mathutil.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be finite and positive", ErrInvalidConfig)
	}
	if !mathutil.IsFinite(frequency) {
		return nil, fmt.Errorf("%w: frequency must be finite", ErrInvalidSource)
	}

	return &Oscillator{
		waveform:   w,
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  defaultAmplitude,
		step:       frequency / sampleRate,
	}, nil
}

// SetWaveform switches the shape from the next Tick on. The phase is kept,
// so the switch is abrupt.
func (o *Oscillator) SetWaveform(w Waveform) {
	if w.Valid() {
		o.waveform = w
	}
}

// SetFrequency changes the pitch from the next Tick on. Non-finite values
// are ignored and reported as false.
func (o *Oscillator) SetFrequency(hz float64) bool {
	if !mathutil.IsFinite(hz) {
		return false
	}
	o.frequency = hz
	o.step = hz / o.sampleRate
	return true
}

// SetAmplitude sets the output gain. Non-finite values are ignored.
func (o *Oscillator) SetAmplitude(a float64) {
	if mathutil.IsFinite(a) {
		o.amplitude = a
	}
}

// Tick returns the sample at the current phase and advances by one sample.
func (o *Oscillator) Tick() float64 {
	v := o.amplitude * o.waveform.At(o.phase)
	o.phase = mathutil.WrapPhase(o.phase, o.step)
	return v
}

// Reset returns the oscillator to phase zero.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Waveform returns the active shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// Frequency returns the pitch in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// SampleRate returns the rate fixed at construction.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Amplitude returns the output gain.
func (o *Oscillator) Amplitude() float64 { return o.amplitude }

// Phase returns the position within the current cycle.
func (o *Oscillator) Phase() float64 { return o.phase }
