// Package simdops provides generic SIMD operations for float32 and float64 types.
// The mixer and the WAV reader work in float64 while the live output path
// works in float32; both go through the same Ops table.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{Sum: f32.Sum, Scale: f32.Scale}
	ops64 = Ops[float64]{Sum: f64.Sum, Scale: f64.Scale}
)

// For returns the shared Ops table for F. Callers fetch it once at
// construction and keep the pointer.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		return any(&ops32).(*Ops[F])
	default:
		return any(&ops64).(*Ops[F])
	}
}

// Interleave2 writes a and b alternately into dst: dst[0]=a[0], dst[1]=b[0], ...
// Only the float32 device path interleaves, so it is not part of Ops.
func Interleave2(dst, a, b []float32) {
	f32.Interleave2(dst, a, b)
}

// CPUInfo describes the instruction set the SIMD kernels dispatch to.
func CPUInfo() string {
	return cpu.Info()
}
