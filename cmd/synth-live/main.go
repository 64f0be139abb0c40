// Command synth-live plays oscillators on the default output device and
// switches their waveform from console input.
//
// Usage:
//
//	synth-live
//	synth-live -freqs A3,C#4,E4 -wave triangle -volume -12
//	synth-live -format s16le -channels 1 -lowpass 0.95
//
// Each input line is a command: a waveform name (sine, sawtooth, triangle,
// square), optionally followed by a frequency in Hz for the first voice.
// Unknown names select square. End of input or Ctrl-C stops playback.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	synth "github.com/tphakala/go-audio-synth"
	"github.com/tphakala/go-audio-synth/control"
)

const (
	// CLI defaults
	defaultFreqs    = "440"
	defaultWave     = "sine"
	defaultFormat   = "f32le"
	defaultChannels = 2
	defaultVolumeDB = -6.0
	defaultBuffer   = 50 * time.Millisecond

	// How long to wait for the audio callback to observe a hang-up before
	// stopping the stream directly.
	stopTimeout = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freqs := flag.String("freqs", defaultFreqs, "Comma-separated voice frequencies in Hz or note names")
	wave := flag.String("wave", defaultWave, "Initial waveform: sine, sawtooth, triangle, square")
	rate := flag.Int("rate", synth.RateCD, "Device sample rate in Hz")
	channels := flag.Int("channels", defaultChannels, "Device channels")
	format := flag.String("format", defaultFormat, "Device sample format: f32le, s16le, u8")
	volume := flag.Float64("volume", defaultVolumeDB, "Output volume in dB relative to full scale")
	lowpass := flag.Float64("lowpass", 0, "Low-pass coefficient in [0, 1), 0 disables")
	highpass := flag.Float64("highpass", 0, "High-pass coefficient in [0, 1), 0 disables")
	buffer := flag.Duration("buffer", defaultBuffer, "Device buffer duration")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	cfg, err := buildConfig(liveOptions{
		freqs:    *freqs,
		wave:     *wave,
		rate:     *rate,
		channels: *channels,
		format:   *format,
		volumeDB: *volume,
		lowpass:  *lowpass,
		highpass: *highpass,
	})
	if err != nil {
		return err
	}

	otoFmt, err := otoFormat(cfg.Format)
	if err != nil {
		return err
	}

	rx := control.New()
	stream, err := synth.NewStream(cfg, rx)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Device: %d Hz, %d channels, %s, buffer %s", cfg.SampleRate, cfg.Channels, cfg.Format, *buffer)
		log.Printf("Voices: %v Hz, %s, gain %.3f", cfg.Frequencies, cfg.Waveform, cfg.Gain)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       otoFmt,
		BufferSize:   *buffer,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(stream)
	player.Play()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("Commands: sine, sawtooth, triangle, square [Hz]. Ctrl-D to quit.")
	}

	// The reader goroutine is abandoned on interrupt; it exits with the process.
	cmdDone := make(chan error, 1)
	go func() {
		cmdDone <- readCommands(os.Stdin, rx, promptFor(interactive))
	}()

	readErr := waitForSession(cmdDone, stream.Done(), interrupt)
	rx.Close()

	select {
	case <-stream.Done():
	case <-time.After(stopTimeout):
		stream.Stop()
	}

	if err := player.Close(); err != nil && *verbose {
		log.Printf("Player close: %v", err)
	}

	if *verbose {
		log.Printf("Rendered %d frames (%.1fs)", stream.Frames(), float64(stream.Frames())/float64(cfg.SampleRate))
	}

	return readErr
}
