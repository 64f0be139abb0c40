package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000
)

// Frequencies of the A major triad, the chord the CLI renders by default.
const (
	NoteA4      = 440.0
	NoteCSharp5 = 554.37
	NoteE5      = 659.26
)

// NewChord creates a mono 16-bit request mixing one full-scale sine per
// frequency.
func NewChord(sampleRate int, duration float64, frequencies ...float64) (*RenderRequest, error) {
	sources := make([]Source, 0, len(frequencies))
	for _, f := range frequencies {
		src, err := NewSource(Sine, defaultAmplitude, f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	req := DefaultRenderRequest(duration, sources...)
	req.SampleRate = sampleRate
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// NewTone creates a mono 16-bit request for a single waveform.
func NewTone(w Waveform, frequency, duration float64) (*RenderRequest, error) {
	src, err := NewSource(w, defaultAmplitude, frequency)
	if err != nil {
		return nil, err
	}
	req := DefaultRenderRequest(duration, src)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// semitoneOffsets maps note letters to semitones above C.
var semitoneOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// NoteFrequency returns the equal-tempered frequency of a note name such as
// "A4", "C#5" or "Eb3", tuned to A4 = 440 Hz. Plain numbers are accepted as
// frequencies in Hz.
func NoteFrequency(name string) (float64, error) {
	name = strings.TrimSpace(name)
	if hz, err := strconv.ParseFloat(name, 64); err == nil {
		return hz, nil
	}
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: bad note name %q", ErrInvalidSource, name)
	}

	semitone, ok := semitoneOffsets[strings.ToUpper(name[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: bad note letter in %q", ErrInvalidSource, name)
	}

	rest := name[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: bad octave in %q", ErrInvalidSource, name)
	}

	n := (octave-referenceOctave)*semitonesPerOctave + semitone - referenceSemitone
	return referencePitch * math.Pow(2, float64(n)/semitonesPerOctave), nil
}

// ParseFrequencies parses a comma-separated list of note names or Hz values.
func ParseFrequencies(list string) ([]float64, error) {
	fields := strings.Split(list, ",")
	freqs := make([]float64, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		hz, err := NoteFrequency(f)
		if err != nil {
			return nil, err
		}
		freqs = append(freqs, hz)
	}
	if len(freqs) == 0 {
		return nil, ErrNoSources
	}
	return freqs, nil
}
