package synth

import (
	"fmt"
	"strings"

	"github.com/tphakala/go-audio-synth/internal/mathutil"
)

// FilterKind selects the one-pole recurrence a Filter runs.
type FilterKind int

const (
	// LowPass is an exponential smoother: y = (1-α)·x + α·y₋₁.
	LowPass FilterKind = iota

	// HighPass is a first-difference filter: y = α·(y₋₁ + x - x₋₁).
	HighPass
)

// String returns the kind's name.
func (k FilterKind) String() string {
	switch k {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	default:
		return "unknown"
	}
}

// ParseFilterKind looks up a filter kind by name.
func ParseFilterKind(name string) (FilterKind, bool) {
	switch strings.ToLower(name) {
	case "lowpass", "low", "lp":
		return LowPass, true
	case "highpass", "high", "hp":
		return HighPass, true
	default:
		return 0, false
	}
}

// Filter is a stateful single-pole IIR filter. Its output depends only on
// the input sequence, alpha and the memory accumulated since construction
// or the last Reset. A Filter must not be shared between goroutines.
type Filter struct {
	kind       FilterKind
	alpha      float64
	lastOutput float64
	lastInput  float64
}

// NewFilter creates a filter with zeroed memory. Alpha must lie in [0, 1).
func NewFilter(kind FilterKind, alpha float64) (*Filter, error) {
	if kind != LowPass && kind != HighPass {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidFilter, int(kind))
	}
	if !mathutil.IsFinite(alpha) || alpha < 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: alpha must be in [0, 1), got %v", ErrInvalidFilter, alpha)
	}
	return &Filter{kind: kind, alpha: alpha}, nil
}

// NewFilterCutoff creates a filter whose alpha is derived from a cutoff
// frequency via the RC time constant.
func NewFilterCutoff(kind FilterKind, cutoffHz, sampleRate float64) (*Filter, error) {
	if !mathutil.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be finite and positive", ErrInvalidFilter)
	}
	if !mathutil.IsFinite(cutoffHz) || cutoffHz <= 0 {
		return nil, fmt.Errorf("%w: cutoff must be finite and positive, got %v", ErrInvalidFilter, cutoffHz)
	}

	var alpha float64
	switch kind {
	case HighPass:
		alpha = mathutil.HighPassAlpha(cutoffHz, sampleRate)
	default:
		alpha = mathutil.LowPassAlpha(cutoffHz, sampleRate)
	}
	return NewFilter(kind, alpha)
}

// Apply filters one sample and updates the filter memory.
func (f *Filter) Apply(input float64) float64 {
	var output float64
	switch f.kind {
	case LowPass:
		output = (1-f.alpha)*input + f.alpha*f.lastOutput
	case HighPass:
		output = f.alpha * (f.lastOutput + input - f.lastInput)
		f.lastInput = input
	}
	f.lastOutput = output
	return output
}

// Process filters buf in place.
func (f *Filter) Process(buf []float64) {
	for i, v := range buf {
		buf[i] = f.Apply(v)
	}
}

// Reset clears the filter memory.
func (f *Filter) Reset() {
	f.lastOutput = 0
	f.lastInput = 0
}

// Kind returns the filter kind.
func (f *Filter) Kind() FilterKind {
	return f.kind
}

// Alpha returns the filter coefficient.
func (f *Filter) Alpha() float64 {
	return f.alpha
}

// FilterChain applies filters in order.
type FilterChain []*Filter

// Apply runs one sample through every filter.
func (c FilterChain) Apply(input float64) float64 {
	for _, f := range c {
		input = f.Apply(input)
	}
	return input
}

// Reset clears the memory of every filter in the chain.
func (c FilterChain) Reset() {
	for _, f := range c {
		f.Reset()
	}
}
