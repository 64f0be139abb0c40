package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ebitengine/oto/v3"

	synth "github.com/tphakala/go-audio-synth"
	"github.com/tphakala/go-audio-synth/control"
	"github.com/tphakala/go-audio-synth/internal/mathutil"
)

const promptText = "> "

// stdout receives the interactive prompt.
var stdout io.Writer = os.Stdout

// liveOptions holds the raw flag values.
type liveOptions struct {
	freqs    string
	wave     string
	rate     int
	channels int
	format   string
	volumeDB float64
	lowpass  float64
	highpass float64
}

// buildConfig turns flag values into a validated stream configuration.
func buildConfig(opts liveOptions) (synth.StreamConfig, error) {
	cfg := synth.DefaultStreamConfig()

	w, ok := synth.ParseWaveform(opts.wave)
	if !ok {
		return cfg, fmt.Errorf("unknown waveform %q", opts.wave)
	}
	f, ok := synth.ParseSampleFormat(opts.format)
	if !ok {
		return cfg, fmt.Errorf("%w: %q", synth.ErrUnsupportedFormat, opts.format)
	}
	freqs, err := synth.ParseFrequencies(opts.freqs)
	if err != nil {
		return cfg, fmt.Errorf("invalid -freqs: %w", err)
	}

	cfg.Waveform = w
	cfg.Format = f
	cfg.Frequencies = freqs
	cfg.SampleRate = opts.rate
	cfg.Channels = opts.channels
	cfg.Gain = mathutil.DBToLinear(opts.volumeDB)
	if opts.lowpass != 0 {
		cfg.Filters = append(cfg.Filters, synth.LowPassSpec(opts.lowpass))
	}
	if opts.highpass != 0 {
		cfg.Filters = append(cfg.Filters, synth.HighPassSpec(opts.highpass))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// otoFormat maps a stream format to the device format.
func otoFormat(f synth.SampleFormat) (oto.Format, error) {
	switch f {
	case synth.FormatFloat32LE:
		return oto.FormatFloat32LE, nil
	case synth.FormatSignedInt16LE:
		return oto.FormatSignedInt16LE, nil
	case synth.FormatUnsignedInt8:
		return oto.FormatUnsignedInt8, nil
	default:
		return 0, fmt.Errorf("%w: %s", synth.ErrUnsupportedFormat, f)
	}
}

// promptFor returns the prompt writer: stdout on a terminal, nothing when
// input is piped.
func promptFor(interactive bool) io.Writer {
	if interactive {
		return stdout
	}
	return io.Discard
}

// readCommands forwards console lines to the stream until input ends, a
// quit command arrives or the stream detaches.
func readCommands(r io.Reader, tx *control.Channel, prompt io.Writer) error {
	scanner := bufio.NewScanner(r)
	for {
		_, _ = io.WriteString(prompt, promptText)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			return nil
		}

		if err := tx.SendLine(line); err != nil {
			if errors.Is(err, control.ErrClosed) {
				return nil
			}
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

// waitForSession blocks until the console reader finishes, the stream stops
// or an interrupt arrives. Only a console read error is returned; the reader
// may still be blocked on stdin when an interrupt ends the session.
func waitForSession(cmdDone <-chan error, streamDone <-chan struct{}, interrupt <-chan os.Signal) error {
	select {
	case err := <-cmdDone:
		return err
	case <-streamDone:
		return nil
	case <-interrupt:
		return nil
	}
}
