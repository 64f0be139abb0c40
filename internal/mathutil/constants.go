package mathutil

import "math"

// Phase constants
const (
	twoPi     = 2 * math.Pi // Radians per cycle
	fullCycle = 1.0         // Normalized phase span of one period
)

// Filter coefficient constants
const (
	// RC time constant: RC = 1 / (2π·fc)
	rcNumerator = 1.0

	// Upper bound for a usable smoothing coefficient. One-pole recurrences
	// stop responding at alpha == 1.
	maxAlpha = 1.0 - 1e-12
)

// Level conversion constants
const (
	dbPerDecade = 20.0 // Amplitude dB uses 20·log10
	minLinear   = 1e-20
)
