package synth

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/tphakala/go-audio-synth/control"
	"github.com/tphakala/go-audio-synth/internal/mathutil"
	"github.com/tphakala/go-audio-synth/internal/simdops"
)

// StreamConfig holds live rendering parameters negotiated with the device.
type StreamConfig struct {
	// SampleRate of the device in Hz.
	SampleRate int

	// Channels of the device. Every channel receives the same mono mix.
	Channels int

	// Format of the device buffer.
	Format SampleFormat

	// Waveform all voices start with.
	Waveform Waveform

	// Frequencies holds one voice per entry, mixed with equal weight.
	// The first voice is the pitch reference for frequency commands.
	Frequencies []float64

	// Gain is applied after mixing and filtering.
	Gain float64

	// Filters are applied to the mix.
	Filters []FilterSpec
}

// DefaultStreamConfig returns a mono float32 sine at 440 Hz and 44.1 kHz.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		SampleRate:  defaultSampleRate,
		Channels:    monoChannels,
		Format:      FormatFloat32LE,
		Waveform:    Sine,
		Frequencies: []float64{defaultFrequency},
		Gain:        defaultGain,
	}
}

// Validate checks the configuration. Unsupported formats are reported here,
// once, rather than per callback.
func (c *StreamConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be 1-%d", ErrInvalidConfig, maxChannels)
	}

	if c.Format.BytesPerSample() == 0 {
		return fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(c.Format))
	}

	if !c.Waveform.Valid() {
		return fmt.Errorf("%w: unknown waveform %d", ErrInvalidConfig, int(c.Waveform))
	}

	if len(c.Frequencies) == 0 {
		return ErrNoSources
	}

	for i, f := range c.Frequencies {
		if !mathutil.IsFinite(f) || f <= 0 {
			return fmt.Errorf("%w: voice %d frequency must be finite and positive", ErrInvalidSource, i)
		}
	}

	if !mathutil.IsFinite(c.Gain) || c.Gain < 0 {
		return fmt.Errorf("%w: gain must be finite and non-negative", ErrInvalidConfig)
	}

	for i, spec := range c.Filters {
		if err := spec.Validate(c.SampleRate); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}

	return nil
}

// Stream renders oscillator voices for a real-time output callback.
//
// Read (or FillFloat32) is called from the device's audio goroutine. It
// drains at most one control message per call, never blocks and does not
// allocate once its scratch buffers cover the driver's request size.
// The stream owns all oscillator and filter state; other goroutines only
// talk to it through the control channel.
type Stream struct {
	voices  []*Oscillator
	ratios  []float64 // Voice frequency relative to voice 0
	filters FilterChain
	rx      *control.Channel

	format        SampleFormat
	channels      int
	bytesPerFrame int
	gain          float32

	mix    []float32 // One slot per voice
	mono   []float32 // One sample per frame
	frames []float32 // Interleaved scratch

	ops *simdops.Ops[float32]

	rendered atomic.Int64
	stopped  atomic.Bool
	done     chan struct{}
}

// NewStream creates a stream. rx may be nil for a stream without control.
func NewStream(cfg StreamConfig, rx *control.Channel) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filters, err := BuildFilterChain(cfg.Filters, float64(cfg.SampleRate))
	if err != nil {
		return nil, err
	}

	s := &Stream{
		voices:        make([]*Oscillator, len(cfg.Frequencies)),
		ratios:        make([]float64, len(cfg.Frequencies)),
		filters:       filters,
		rx:            rx,
		format:        cfg.Format,
		channels:      cfg.Channels,
		bytesPerFrame: cfg.Channels * cfg.Format.BytesPerSample(),
		gain:          float32(cfg.Gain),
		mix:           make([]float32, len(cfg.Frequencies)),
		mono:          make([]float32, defaultScratchFrames),
		frames:        make([]float32, defaultScratchFrames*cfg.Channels),
		ops:           simdops.For[float32](),
		done:          make(chan struct{}),
	}

	for i, f := range cfg.Frequencies {
		osc, err := NewOscillator(cfg.Waveform, f, float64(cfg.SampleRate))
		if err != nil {
			return nil, fmt.Errorf("voice %d: %w", i, err)
		}
		s.voices[i] = osc
		s.ratios[i] = f / cfg.Frequencies[0]
	}

	return s, nil
}

// Read fills p with whole frames in the configured device format. It
// implements io.Reader for drivers such as oto's Player. After the control
// channel closes the stream keeps answering with silence. A non-empty p
// shorter than one frame yields io.ErrShortBuffer; trailing bytes beyond the
// last whole frame are left untouched.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	frames := len(p) / s.bytesPerFrame
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	mono := s.renderMono(frames)
	n := frames * s.bytesPerFrame
	s.encode(p[:n], mono)
	return n, nil
}

// FillFloat32 fills buf with interleaved float32 frames and returns the
// number of samples written. It follows the same control and stop rules
// as Read.
func (s *Stream) FillFloat32(buf []float32) int {
	frames := len(buf) / s.channels
	if frames == 0 {
		return 0
	}

	mono := s.renderMono(frames)
	s.fanOut(buf[:frames*s.channels], mono)
	return frames * s.channels
}

// ReadFloat32 is FillFloat32 in the shape of a pull callback that consumes
// float32 samples directly from the render thread.
func (s *Stream) ReadFloat32(buf []float32) (int, error) {
	return s.FillFloat32(buf), nil
}

// renderMono polls the control channel and renders one mixed sample per
// frame into the mono scratch buffer.
func (s *Stream) renderMono(frames int) []float32 {
	s.poll()

	if len(s.mono) < frames {
		// Only when a driver asks for more than the initial scratch size
		s.mono = make([]float32, frames)
	}
	mono := s.mono[:frames]

	if s.stopped.Load() {
		clear(mono)
		return mono
	}

	for i := range mono {
		v := s.mixVoices()
		if len(s.filters) > 0 {
			v = s.filters.Apply(v)
		}
		mono[i] = float32(v)
	}

	if s.gain != 1 {
		s.ops.Scale(mono, mono, s.gain)
	}

	s.rendered.Add(int64(frames))
	return mono
}

func (s *Stream) mixVoices() float64 {
	if len(s.voices) == 1 {
		return s.voices[0].Tick()
	}
	for i, osc := range s.voices {
		s.mix[i] = float32(osc.Tick())
	}
	return float64(s.ops.Sum(s.mix)) / float64(len(s.voices))
}

// poll drains at most one control message.
func (s *Stream) poll() {
	if s.rx == nil || s.stopped.Load() {
		return
	}

	msg, status := s.rx.TryReceive()
	switch status {
	case control.Received:
		s.apply(msg)
	case control.Closed:
		s.Stop()
	case control.Empty:
	}
}

// apply interprets a control message: the command selects the waveform for
// every voice and an optional argument retunes voice 0 in Hz, with the other
// voices keeping their interval to it.
func (s *Stream) apply(msg control.Message) {
	w := WaveformFromToken(msg.Command())
	for _, osc := range s.voices {
		osc.SetWaveform(w)
	}

	arg, ok := msg.Arg(0)
	if !ok {
		return
	}
	hz, err := strconv.ParseFloat(arg, 64)
	if err != nil || !mathutil.IsFinite(hz) || hz <= 0 {
		return
	}
	for i, osc := range s.voices {
		osc.SetFrequency(hz * s.ratios[i])
	}
}

// fanOut copies each mono sample into every channel of its frame.
func (s *Stream) fanOut(dst, mono []float32) {
	switch s.channels {
	case monoChannels:
		copy(dst, mono)
	case stereoChannels:
		simdops.Interleave2(dst, mono, mono)
	default:
		for i, v := range mono {
			frame := dst[i*s.channels : (i+1)*s.channels]
			for ch := range frame {
				frame[ch] = v
			}
		}
	}
}

// encode writes mono samples, replicated across channels, in the device format.
func (s *Stream) encode(p []byte, mono []float32) {
	total := len(mono) * s.channels
	if len(s.frames) < total {
		s.frames = make([]float32, total)
	}
	interleaved := s.frames[:total]
	s.fanOut(interleaved, mono)

	switch s.format {
	case FormatFloat32LE:
		for i, v := range interleaved {
			binary.LittleEndian.PutUint32(p[i*bytesPerFloat32:], math.Float32bits(v))
		}
	case FormatSignedInt16LE:
		for i, v := range interleaved {
			q := int16(quantize(float64(v), maxInt16))
			binary.LittleEndian.PutUint16(p[i*bytesPerInt16:], uint16(q))
		}
	case FormatUnsignedInt8:
		for i, v := range interleaved {
			p[i] = byte(uint8Midpoint + float64(quantize(float64(v), uint8Scale)))
		}
	}
}

// Stop ends audio production. Later reads return silence and the control
// channel is detached so the producer learns the stream is gone.
func (s *Stream) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	if s.rx != nil {
		s.rx.Detach()
	}
}

// Stopped reports whether the stream has stopped.
func (s *Stream) Stopped() bool {
	return s.stopped.Load()
}

// Done returns a channel closed when the stream stops.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Frames returns the number of audible frames rendered so far.
func (s *Stream) Frames() int64 {
	return s.rendered.Load()
}

// Waveform returns the waveform of voice 0. Only safe to call from the
// render goroutine or after the stream has stopped.
func (s *Stream) Waveform() Waveform {
	return s.voices[0].Waveform()
}

// Frequency returns the frequency of voice 0, with the same restriction as Waveform.
func (s *Stream) Frequency() float64 {
	return s.voices[0].Frequency()
}
