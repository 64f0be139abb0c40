// Package analysis measures rendered signals: level, DC offset and the
// dominant frequency. It backs the analyzer command and the spectral tests.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// minSpectrumSamples is the shortest signal worth transforming.
const minSpectrumSamples = 4

// Stats summarizes the level of a signal.
type Stats struct {
	Peak          float64 // Largest absolute sample value
	RMS           float64 // Root mean square level
	DC            float64 // Mean value
	ZeroCrossings int     // Sign changes between consecutive samples
}

// Measure computes level statistics. An empty signal yields zero Stats.
func Measure(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	n := float64(len(samples))
	peak := math.Max(math.Abs(floats.Max(samples)), math.Abs(floats.Min(samples)))

	return Stats{
		Peak:          peak,
		RMS:           math.Sqrt(floats.Dot(samples, samples) / n),
		DC:            floats.Sum(samples) / n,
		ZeroCrossings: zeroCrossings(samples),
	}
}

func zeroCrossings(samples []float64) int {
	count := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			count++
		}
	}
	return count
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// spectral component. A Hann window limits leakage and the peak bin is
// refined by parabolic interpolation of its neighbours' magnitudes.
func DominantFrequency(samples []float64, sampleRate float64) float64 {
	n := len(samples)
	if n < minSpectrumSamples || sampleRate <= 0 {
		return 0
	}

	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = v * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	peakBin := 1
	peakMag := 0.0
	for k := 1; k < len(coeffs); k++ {
		if m := cmplx.Abs(coeffs[k]); m > peakMag {
			peakMag = m
			peakBin = k
		}
	}

	offset := 0.0
	if peakBin > 0 && peakBin < len(coeffs)-1 {
		a := cmplx.Abs(coeffs[peakBin-1])
		b := peakMag
		c := cmplx.Abs(coeffs[peakBin+1])
		if denom := a - 2*b + c; denom != 0 {
			offset = 0.5 * (a - c) / denom
		}
	}

	return (fft.Freq(peakBin) + offset/float64(n)) * sampleRate
}
