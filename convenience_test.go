package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-synth/internal/testutil"
)

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		name     string
		expected float64
	}{
		{"A4", 440},
		{"a4", 440},
		{"A5", 880},
		{"A3", 220},
		{"C#5", NoteCSharp5},
		{"Db5", NoteCSharp5},
		{"E5", NoteE5},
		{"C4", 261.63},
		{"A0", 27.5},
		{"440", 440},
		{" 554.37 ", 554.37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hz, err := NoteFrequency(tt.name)
			require.NoError(t, err)
			testutil.AssertRelativeError(t, tt.expected, hz, 1e-4)
		})
	}
}

func TestNoteFrequency_Invalid(t *testing.T) {
	for _, name := range []string{"", "H4", "A", "A#", "Cx4", "C4.5"} {
		_, err := NoteFrequency(name)
		assert.ErrorIs(t, err, ErrInvalidSource, name)
	}
}

func TestParseFrequencies(t *testing.T) {
	freqs, err := ParseFrequencies("440, C#5,E5,")
	require.NoError(t, err)
	require.Len(t, freqs, 3)
	assert.Equal(t, 440.0, freqs[0])
	testutil.AssertRelativeError(t, NoteCSharp5, freqs[1], 1e-4)
	testutil.AssertRelativeError(t, NoteE5, freqs[2], 1e-4)

	_, err = ParseFrequencies(" , ")
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = ParseFrequencies("440,Q9")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestNewChord(t *testing.T) {
	req, err := NewChord(RateCD, 2.0, NoteA4, NoteCSharp5, NoteE5)
	require.NoError(t, err)
	require.Len(t, req.Sources, 3)
	assert.Equal(t, 44100, req.SampleRate)
	assert.Equal(t, 1, req.Channels)
	assert.Equal(t, 16, req.BitDepth)
	assert.Equal(t, 88200, req.NumSamples())
	for _, src := range req.Sources {
		assert.Equal(t, Sine, src.Waveform)
		assert.Equal(t, 1.0, src.Amplitude)
	}

	_, err = NewChord(RateCD, 1.0)
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = NewChord(RateCD, 1.0, 440, -1)
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = NewChord(0, 1.0, 440)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestNewChord_NeverClips checks the equal-weight mix of full-scale sines
// stays within full scale.
func TestNewChord_NeverClips(t *testing.T) {
	req, err := NewChord(RateCD, 0.5, NoteA4, NoteCSharp5, NoteE5)
	require.NoError(t, err)

	mix, err := RenderFloat(req)
	require.NoError(t, err)
	testutil.AssertAllInRange(t, mix, -1, 1)
}

func TestNewTone(t *testing.T) {
	req, err := NewTone(Triangle, 1000, 0.25)
	require.NoError(t, err)
	require.Len(t, req.Sources, 1)
	assert.Equal(t, Triangle, req.Sources[0].Waveform)
	assert.Equal(t, 11025, req.NumSamples())

	_, err = NewTone(Square, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestSampleFormat(t *testing.T) {
	tests := []struct {
		name  string
		f     SampleFormat
		bytes int
	}{
		{"f32le", FormatFloat32LE, 4},
		{"s16le", FormatSignedInt16LE, 2},
		{"u8", FormatUnsignedInt8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.f.String())
			assert.Equal(t, tt.bytes, tt.f.BytesPerSample())
			parsed, ok := ParseSampleFormat(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.f, parsed)
		})
	}

	assert.Zero(t, SampleFormat(9).BytesPerSample())
	assert.Equal(t, "unknown", SampleFormat(9).String())
	_, ok := ParseSampleFormat("s24")
	assert.False(t, ok)
}
