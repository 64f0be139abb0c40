package synth

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/tphakala/go-audio-synth/wav"
)

// renderBlockFrames is the number of frames rendered per encoder write.
const renderBlockFrames = 4096

// offlineRenderer walks sample indices 0..total-1 once.
type offlineRenderer struct {
	mixer      *Mixer
	filters    FilterChain
	sampleRate float64
	channels   int
	maxVal     float64
	next       int
	total      int
}

func newOfflineRenderer(req *RenderRequest) (*offlineRenderer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxVal, err := fullScale(req.BitDepth)
	if err != nil {
		return nil, err
	}

	filters, err := BuildFilterChain(req.Filters, float64(req.SampleRate))
	if err != nil {
		return nil, err
	}

	return &offlineRenderer{
		mixer:      NewMixer(req.Sources...),
		filters:    filters,
		sampleRate: float64(req.SampleRate),
		channels:   req.Channels,
		maxVal:     maxVal,
		total:      req.NumSamples(),
	}, nil
}

// sample returns the mixed, filtered value of the next frame.
func (r *offlineRenderer) sample() float64 {
	t := float64(r.next) / r.sampleRate
	v := r.mixer.At(t)
	if len(r.filters) > 0 {
		v = r.filters.Apply(v)
	}
	r.next++
	return v
}

// fill writes whole interleaved frames into dst and returns the number of
// ints written. It returns 0 once every frame has been rendered.
func (r *offlineRenderer) fill(dst []int) int {
	frames := min(len(dst)/r.channels, r.total-r.next)
	for i := range frames {
		q := quantize(r.sample(), r.maxVal)
		base := i * r.channels
		for ch := range r.channels {
			dst[base+ch] = q
		}
	}
	return frames * r.channels
}

// Render mixes the request into interleaved integer PCM. Each frame holds
// the same quantized mix in every channel.
func Render(req *RenderRequest) (*audio.IntBuffer, error) {
	r, err := newOfflineRenderer(req)
	if err != nil {
		return nil, err
	}

	data := make([]int, r.total*r.channels)
	r.fill(data)

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: req.Channels,
			SampleRate:  req.SampleRate,
		},
		Data:           data,
		SourceBitDepth: req.BitDepth,
	}, nil
}

// RenderFloat returns the mono mix after filtering and before quantization.
func RenderFloat(req *RenderRequest) ([]float64, error) {
	r, err := newOfflineRenderer(req)
	if err != nil {
		return nil, err
	}

	out := make([]float64, r.total)
	for i := range out {
		out[i] = r.sample()
	}
	return out, nil
}

// WriteWAV writes the header and PCM body for req to w in one pass and
// returns the number of bytes written. Write errors are returned as they
// occur; partial output is left for the caller to discard.
func WriteWAV(w io.Writer, req *RenderRequest) (int64, error) {
	r, err := newOfflineRenderer(req)
	if err != nil {
		return 0, err
	}

	header := wav.NewHeader(
		uint32(req.DataSize()),
		uint32(req.SampleRate),
		uint16(req.BitDepth),
		uint16(req.Channels),
	)

	enc, err := wav.NewEncoder(w, header)
	if err != nil {
		return 0, err
	}

	block := make([]int, renderBlockFrames*r.channels)
	for {
		n := r.fill(block)
		if n == 0 {
			break
		}
		if err := enc.WriteSamples(block[:n]); err != nil {
			return wav.HeaderSize + int64(enc.Written()), err
		}
	}

	if err := enc.Close(); err != nil {
		return wav.HeaderSize + int64(enc.Written()), fmt.Errorf("failed to finish WAV stream: %w", err)
	}

	return wav.HeaderSize + int64(enc.Written()), nil
}
