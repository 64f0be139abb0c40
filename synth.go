package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-synth/wav"
)

// Common errors returned by the synthesizer.
var (
	// ErrInvalidConfig indicates invalid render or stream parameters.
	ErrInvalidConfig = errors.New("invalid synthesizer configuration")

	// ErrInvalidSource indicates a source with a non-finite or non-positive frequency
	// or an invalid amplitude.
	ErrInvalidSource = errors.New("invalid sound source")

	// ErrInvalidFilter indicates a filter coefficient outside [0, 1).
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrNoSources indicates a mix with nothing to mix.
	ErrNoSources = errors.New("no sound sources")

	// ErrUnsupportedFormat indicates a live sample format the renderer cannot encode.
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrUnsupportedBitDepth indicates a PCM bit depth the encoder cannot write.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// RenderRequest describes one offline rendering pass. It is consumed once by
// Render or WriteWAV and is not modified.
type RenderRequest struct {
	// Sources are mixed with equal weight. At least one is required.
	Sources []Source

	// Filters are applied to the mixed signal before quantization.
	Filters []FilterSpec

	// SampleRate in Hz.
	SampleRate int

	// Duration in seconds. The sample count is SampleRate·Duration, truncated.
	Duration float64

	// Channels receive identical copies of the mono mix.
	Channels int

	// BitDepth of the signed PCM output: 16, 24 or 32.
	BitDepth int
}

// Validate checks if the request is renderable.
func (r *RenderRequest) Validate() error {
	if len(r.Sources) == 0 {
		return ErrNoSources
	}

	for i, src := range r.Sources {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("source %d: %w", i, err)
		}
	}

	if r.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if math.IsNaN(r.Duration) || math.IsInf(r.Duration, 0) || r.Duration < 0 {
		return fmt.Errorf("%w: duration must be a finite, non-negative number of seconds", ErrInvalidConfig)
	}

	if r.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if r.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if _, err := fullScale(r.BitDepth); err != nil {
		return err
	}

	for i, spec := range r.Filters {
		if err := spec.Validate(r.SampleRate); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}

	// The WAV rate and size fields are 32-bit
	bytesPerFrame := int64(r.Channels) * int64(r.BitDepth/bitsPerByte)
	if int64(r.SampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate exceeds the 32-bit WAV field", ErrInvalidConfig)
	}

	if int64(r.SampleRate)*bytesPerFrame > math.MaxUint32 {
		return fmt.Errorf("%w: byte rate exceeds the 32-bit WAV field", ErrInvalidConfig)
	}

	// Checked in float64 so huge durations cannot overflow NumSamples
	if float64(r.SampleRate)*r.Duration > float64(wav.MaxDataSize/bytesPerFrame) {
		return fmt.Errorf("%w: rendered data exceeds the 4 GiB WAV limit", ErrInvalidConfig)
	}

	if r.DataSize() > wav.MaxDataSize {
		return fmt.Errorf("%w: rendered data exceeds the 4 GiB WAV limit", ErrInvalidConfig)
	}

	return nil
}

// NumSamples returns the number of sample frames the request renders.
func (r *RenderRequest) NumSamples() int {
	return int(float64(r.SampleRate) * r.Duration)
}

// DataSize returns the PCM body size in bytes.
func (r *RenderRequest) DataSize() int64 {
	return int64(r.NumSamples()) * int64(r.Channels) * int64(r.BitDepth/bitsPerByte)
}

// DefaultRenderRequest returns a mono 16-bit request at 44.1 kHz for the
// given sources.
func DefaultRenderRequest(duration float64, sources ...Source) *RenderRequest {
	return &RenderRequest{
		Sources:    sources,
		SampleRate: defaultSampleRate,
		Duration:   duration,
		Channels:   monoChannels,
		BitDepth:   defaultBitDepth,
	}
}

// fullScale returns the signed maximum for a bit depth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d (want 16, 24 or 32)", ErrUnsupportedBitDepth, bitDepth)
	}
}

// Quantize scales a sample in [-1, 1] to a signed integer of the given bit
// depth. Values outside the range are clamped; the scaled value is truncated
// toward zero, not rounded. Unsupported bit depths quantize as 16-bit.
func Quantize(sample float64, bitDepth int) int {
	maxVal, err := fullScale(bitDepth)
	if err != nil {
		maxVal = maxInt16
	}
	return quantize(sample, maxVal)
}

func quantize(sample, maxVal float64) int {
	if sample > 1.0 {
		sample = 1.0
	} else if sample < -1.0 {
		sample = -1.0
	} else if sample != sample { // NaN
		sample = 0
	}
	return int(sample * maxVal)
}
