package synth

import (
	"fmt"

	"github.com/tphakala/go-audio-synth/internal/mathutil"
)

// FilterSpec describes a filter stage to build. Exactly one of Alpha or
// CutoffHz is used: a positive CutoffHz wins and alpha is derived from the
// sample rate the chain is built for.
type FilterSpec struct {
	Kind     FilterKind
	Alpha    float64
	CutoffHz float64
}

// LowPassSpec returns a low-pass stage with a fixed coefficient.
func LowPassSpec(alpha float64) FilterSpec {
	return FilterSpec{Kind: LowPass, Alpha: alpha}
}

// HighPassSpec returns a high-pass stage with a fixed coefficient.
func HighPassSpec(alpha float64) FilterSpec {
	return FilterSpec{Kind: HighPass, Alpha: alpha}
}

// Validate checks the stage against a sample rate.
func (s FilterSpec) Validate(sampleRate int) error {
	_, err := s.build(float64(sampleRate))
	return err
}

func (s FilterSpec) build(sampleRate float64) (*Filter, error) {
	if s.CutoffHz > 0 || !mathutil.IsFinite(s.CutoffHz) {
		return NewFilterCutoff(s.Kind, s.CutoffHz, sampleRate)
	}
	return NewFilter(s.Kind, s.Alpha)
}

// String describes the stage.
func (s FilterSpec) String() string {
	if s.CutoffHz > 0 {
		return fmt.Sprintf("%s %.1f Hz", s.Kind, s.CutoffHz)
	}
	return fmt.Sprintf("%s α=%.4f", s.Kind, s.Alpha)
}

// BuildFilterChain creates fresh filters, with zeroed memory, for each stage
// in order. Each render pass or stream gets its own chain.
func BuildFilterChain(specs []FilterSpec, sampleRate float64) (FilterChain, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	chain := make(FilterChain, 0, len(specs))
	for i, spec := range specs {
		f, err := spec.build(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("failed to create filter %d: %w", i, err)
		}
		chain = append(chain, f)
	}
	return chain, nil
}
