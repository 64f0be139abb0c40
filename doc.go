// Package synth generates audio from parametric waveforms in pure Go.
//
// Signals are built from four waveform shapes, shaped by one-pole filters and
// either rendered offline to 16/24/32-bit PCM WAV or streamed to an output
// device in real time.
//
// # Features
//
//   - Sine, sawtooth, triangle and square sources and phase-accumulating oscillators
//   - Stateful one-pole low-pass and high-pass filters
//   - Equal-weight mixing with SIMD summation via github.com/tphakala/simd
//   - Canonical 44-byte WAV framing with a single-pass, append-only encoder
//   - Live rendering as an io.Reader for github.com/ebitengine/oto/v3
//   - Lock-free control of a running stream through the control package
//
// # Quick Start
//
// Rendering an A major chord to a file:
//
//	req, err := synth.NewChord(synth.RateCD, 2.0, synth.NoteA4, synth.NoteCSharp5, synth.NoteE5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := os.Create("chord.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	if _, err := synth.WriteWAV(f, req); err != nil {
//	    log.Fatal(err)
//	}
//
// Streaming with live waveform changes:
//
//	rx := control.New()
//	stream, err := synth.NewStream(synth.DefaultStreamConfig(), rx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	player := otoContext.NewPlayer(stream)
//	player.Play()
//
//	rx.SendLine("sawtooth") // applied within one callback
//
// # Numeric Conventions
//
// Mixes are computed in float64 and nominally lie in [-1, 1]. Conversion to
// integer PCM clamps to that range, multiplies by the signed maximum of the
// bit depth and truncates toward zero, so output matches reference renders
// bit for bit.
//
// # Thread Safety
//
// [Source] values are immutable and safe for concurrent use. [Oscillator],
// [Filter], [Mixer] and [Stream] carry per-sample state and are driven by a
// single goroutine. The only cross-goroutine path into a running [Stream] is
// its control channel.
package synth
