// Package testutil provides reusable test helper functions for synthesizer tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	PeriodTolerance    = 1e-6
	MagnitudeTolerance = 1e-2
	DBTolerance        = 0.01
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertPeriodic verifies f(t) == f(t+period) over a grid of sample times.
// Times for which skip returns true are ignored (discontinuities).
func AssertPeriodic(t *testing.T, f func(float64) float64, period float64, times []float64,
	tolerance float64, skip func(float64) bool,
) bool {
	t.Helper()
	for _, tm := range times {
		if skip != nil && skip(tm) {
			continue
		}
		a, b := f(tm), f(tm+period)
		if math.Abs(a-b) > tolerance {
			return assert.Fail(t, "not periodic",
				"f(%g)=%g != f(%g)=%g (period %g)", tm, a, tm+period, b, period)
		}
	}
	return true
}

// AssertContinuous verifies consecutive samples never jump by more than maxStep.
func AssertContinuous(t *testing.T, s []float64, maxStep float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if math.Abs(s[i]-s[i-1]) > maxStep {
			return assert.Fail(t, "discontinuity",
				"|s[%d]-s[%d]| = %f exceeds %f", i, i-1, math.Abs(s[i]-s[i-1]), maxStep)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// SampleGrid returns n evenly spaced times covering [start, start+span).
func SampleGrid(start, span float64, n int) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = start + span*float64(i)/float64(n)
	}
	return times
}
