package mathutil

import "math"

// LowPassAlpha returns the one-pole smoothing coefficient for a low-pass
// filter with the given -3 dB cutoff, for use in
//
//	y[n] = (1-α)·x[n] + α·y[n-1]
//
// With dt = 1/fs and RC = 1/(2π·fc), α = RC / (RC + dt).
// Cutoffs at or below zero yield the heaviest usable smoothing.
func LowPassAlpha(cutoffHz, sampleRate float64) float64 {
	if cutoffHz <= 0 {
		return maxAlpha
	}
	rc := rcNumerator / (twoPi * cutoffHz)
	dt := 1.0 / sampleRate
	return clampAlpha(rc / (rc + dt))
}

// HighPassAlpha returns the coefficient for the first-difference high-pass
//
//	y[n] = α·(y[n-1] + x[n] - x[n-1])
//
// which shares the RC derivation with LowPassAlpha.
func HighPassAlpha(cutoffHz, sampleRate float64) float64 {
	return LowPassAlpha(cutoffHz, sampleRate)
}

func clampAlpha(a float64) float64 {
	if math.IsNaN(a) || a < 0 {
		return 0
	}
	if a > maxAlpha {
		return maxAlpha
	}
	return a
}

// LinearToDB converts a linear amplitude to decibels relative to full scale.
func LinearToDB(v float64) float64 {
	v = math.Abs(v)
	if v < minLinear {
		v = minLinear
	}
	return dbPerDecade * math.Log10(v)
}

// DBToLinear converts decibels to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/dbPerDecade)
}
