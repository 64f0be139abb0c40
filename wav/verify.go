package wav

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/tphakala/go-audio-synth/internal/simdops"
)

// Info describes a decoded WAV file.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
	Duration   time.Duration
}

// Decode reads a complete WAV stream with the go-audio decoder, which
// checks the container independently of Header.
func Decode(r io.ReadSeeker) (*audio.IntBuffer, Info, error) {
	decoder := gowav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, Info{}, errors.New("wav: invalid WAV stream")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to read audio data: %w", err)
	}

	info := Info{
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
	}
	if info.Channels > 0 {
		info.Frames = len(buf.Data) / info.Channels
	}
	if info.SampleRate > 0 {
		info.Duration = time.Duration(float64(info.Frames) / float64(info.SampleRate) * float64(time.Second))
	}

	return buf, info, nil
}

// Normalize converts decoded integer samples of one channel to [-1, 1].
func Normalize(buf *audio.IntBuffer, bitDepth, channel int) []float64 {
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	if channel < 0 || channel >= channels {
		return nil
	}

	if bitDepth < bitsPerSample16/2 {
		bitDepth = bitsPerSample16
	}
	maxVal := float64(int64(1)<<(bitDepth-1) - 1)
	out := make([]float64, 0, len(buf.Data)/channels)
	for i := channel; i < len(buf.Data); i += channels {
		out = append(out, float64(buf.Data[i]))
	}
	simdops.For[float64]().Scale(out, out, 1/maxVal)
	return out
}
