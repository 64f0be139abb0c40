// Package mathutil provides small numeric helpers shared by the oscillators,
// filters and analysis code.
package mathutil

import "math"

// Frac returns the fractional part of x in [0, 1).
//
// Unlike math.Modf, negative inputs wrap forward: Frac(-0.25) == 0.75.
// This keeps waveform lookups well defined for negative time.
func Frac(x float64) float64 {
	f := x - math.Floor(x)
	// x - floor(x) rounds to 1.0 for tiny negative x
	if f >= fullCycle {
		return 0
	}
	return f
}

// WrapPhase advances phase by step and folds the result back into [0, 1).
// Steps larger than one cycle (frequency above the sample rate) are folded too.
func WrapPhase(phase, step float64) float64 {
	phase += step
	if phase >= 0 && phase < fullCycle {
		return phase
	}
	return Frac(phase)
}

// Radians converts a normalized phase to an angle.
func Radians(phase float64) float64 {
	return twoPi * phase
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
