package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-synth/internal/analysis"
	"github.com/tphakala/go-audio-synth/internal/testutil"
)

func TestNewFilter_AlphaRange(t *testing.T) {
	tests := []struct {
		name    string
		alpha   float64
		wantErr bool
	}{
		{"Zero", 0, false},
		{"Typical", 0.9, false},
		{"Just below one", math.Nextafter(1, 0), false},
		{"One", 1, true},
		{"Above one", 1.5, true},
		{"Negative", -0.1, true},
		{"NaN", math.NaN(), true},
		{"Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, kind := range []FilterKind{LowPass, HighPass} {
				f, err := NewFilter(kind, tt.alpha)
				if tt.wantErr {
					assert.ErrorIs(t, err, ErrInvalidFilter)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, kind, f.Kind())
				assert.Equal(t, tt.alpha, f.Alpha())
			}
		})
	}

	_, err := NewFilter(FilterKind(9), 0.5)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestLowPass_AlphaZeroIsIdentity(t *testing.T) {
	f, err := NewFilter(LowPass, 0)
	require.NoError(t, err)

	for _, x := range []float64{0.3, -1, 1, 0, 0.123456} {
		assert.Equal(t, x, f.Apply(x))
	}
}

func TestLowPass_Recurrence(t *testing.T) {
	f, err := NewFilter(LowPass, 0.5)
	require.NoError(t, err)

	// y0 = 0.5·1 + 0.5·0, y1 = 0.5·1 + 0.5·0.5, ...
	assert.Equal(t, 0.5, f.Apply(1))
	assert.Equal(t, 0.75, f.Apply(1))
	assert.Equal(t, 0.875, f.Apply(1))
	assert.Equal(t, 0.4375, f.Apply(0))
}

func TestLowPass_StepConvergesToInput(t *testing.T) {
	f, err := NewFilter(LowPass, 0.95)
	require.NoError(t, err)

	var y float64
	prev := 0.0
	for range 2000 {
		y = f.Apply(1)
		assert.GreaterOrEqual(t, y, prev, "step response must be monotonic")
		prev = y
	}
	assert.InDelta(t, 1.0, y, 1e-9)
}

func TestHighPass_Recurrence(t *testing.T) {
	f, err := NewFilter(HighPass, 0.5)
	require.NoError(t, err)

	// y = α·(y₋₁ + x - x₋₁)
	assert.Equal(t, 0.5, f.Apply(1))    // 0.5·(0 + 1 - 0)
	assert.Equal(t, 0.25, f.Apply(1))   // 0.5·(0.5 + 1 - 1)
	assert.Equal(t, -0.375, f.Apply(0)) // 0.5·(0.25 + 0 - 1)
}

// TestHighPass_RemovesDC checks a constant input decays to zero.
func TestHighPass_RemovesDC(t *testing.T) {
	f, err := NewFilter(HighPass, 0.9)
	require.NoError(t, err)

	var y float64
	for range 500 {
		y = f.Apply(0.8)
	}
	assert.InDelta(t, 0.0, y, 1e-9)
}

func TestFilter_Deterministic(t *testing.T) {
	input := make([]float64, 256)
	src := Source{Waveform: Sawtooth, Amplitude: 1, Frequency: 330}
	for i := range input {
		input[i] = src.Sample(float64(i) / 8000)
	}

	for _, kind := range []FilterKind{LowPass, HighPass} {
		a, err := NewFilter(kind, 0.7)
		require.NoError(t, err)
		b, err := NewFilter(kind, 0.7)
		require.NoError(t, err)

		first := append([]float64(nil), input...)
		second := append([]float64(nil), input...)
		a.Process(first)
		b.Process(second)
		assert.Equal(t, first, second, kind.String())

		// Reset restores the initial state exactly
		a.Reset()
		again := append([]float64(nil), input...)
		a.Process(again)
		assert.Equal(t, first, again, kind.String())
	}
}

func TestNewFilterCutoff(t *testing.T) {
	lp, err := NewFilterCutoff(LowPass, 1000, 44100)
	require.NoError(t, err)
	rc := 1 / (2 * math.Pi * 1000)
	dt := 1.0 / 44100
	assert.InDelta(t, rc/(rc+dt), lp.Alpha(), testutil.DefaultTolerance)

	hp, err := NewFilterCutoff(HighPass, 1000, 44100)
	require.NoError(t, err)
	assert.Equal(t, HighPass, hp.Kind())

	_, err = NewFilterCutoff(LowPass, 0, 44100)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = NewFilterCutoff(LowPass, 1000, 0)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = NewFilterCutoff(LowPass, math.NaN(), 44100)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

// TestLowPass_AttenuatesHighFrequencies compares the RMS of a tone below
// and far above the cutoff after filtering.
func TestLowPass_AttenuatesHighFrequencies(t *testing.T) {
	const sampleRate = 44100.0
	rms := func(freq float64) float64 {
		f, err := NewFilterCutoff(LowPass, 500, sampleRate)
		require.NoError(t, err)
		src := SineSource(freq)
		out := make([]float64, 8192)
		for i := range out {
			out[i] = f.Apply(src.Sample(float64(i) / sampleRate))
		}
		return analysis.Measure(out[1024:]).RMS
	}

	low, high := rms(100), rms(8000)
	assert.Greater(t, low, 0.6)
	assert.Less(t, high, 0.1)
}

func TestParseFilterKind(t *testing.T) {
	for _, name := range []string{"lowpass", "LP", "low"} {
		k, ok := ParseFilterKind(name)
		assert.True(t, ok)
		assert.Equal(t, LowPass, k)
	}
	for _, name := range []string{"highpass", "hp", "High"} {
		k, ok := ParseFilterKind(name)
		assert.True(t, ok)
		assert.Equal(t, HighPass, k)
	}
	_, ok := ParseFilterKind("bandpass")
	assert.False(t, ok)
	assert.Equal(t, "unknown", FilterKind(5).String())
}

func TestBuildFilterChain(t *testing.T) {
	chain, err := BuildFilterChain(nil, 44100)
	require.NoError(t, err)
	assert.Empty(t, chain)
	assert.Equal(t, 0.25, chain.Apply(0.25))

	chain, err = BuildFilterChain([]FilterSpec{
		LowPassSpec(0.5),
		{Kind: HighPass, CutoffHz: 20},
	}, 44100)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, LowPass, chain[0].Kind())
	assert.Equal(t, HighPass, chain[1].Kind())

	// The chain is the composition of its stages
	lp, _ := NewFilter(LowPass, 0.5)
	hp, _ := NewFilterCutoff(HighPass, 20, 44100)
	for _, x := range []float64{1, 0.5, -0.25, 0} {
		assert.Equal(t, hp.Apply(lp.Apply(x)), chain.Apply(x))
	}

	chain.Reset()
	lp.Reset()
	hp.Reset()
	assert.Equal(t, hp.Apply(lp.Apply(0.7)), chain.Apply(0.7))

	_, err = BuildFilterChain([]FilterSpec{HighPassSpec(1.2)}, 44100)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilterSpec_String(t *testing.T) {
	assert.Equal(t, "lowpass α=0.5000", LowPassSpec(0.5).String())
	assert.Equal(t, "highpass 20.0 Hz", FilterSpec{Kind: HighPass, CutoffHz: 20}.String())
}

func BenchmarkFilterProcess(b *testing.B) {
	f, _ := NewFilter(LowPass, 0.9)
	buf := make([]float64, 4096)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.01)
	}
	for b.Loop() {
		f.Process(buf)
	}
}
