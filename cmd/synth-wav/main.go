// Command synth-wav renders mixed waveforms to a WAV file.
//
// Usage:
//
//	synth-wav                                        # A major chord to chord.wav
//	synth-wav -freqs A3,C#4,E4 -wave triangle out.wav
//	synth-wav -wave square -lowpass 2000hz -bits 24 lead.wav
//	synth-wav -duration 5 -channels 2 -verify pad.wav
//
// Frequencies accept note names (A4, C#5, Eb3) or plain values in Hz.
// Filters take a coefficient in [0, 1) or a cutoff with an "hz" suffix.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	synth "github.com/tphakala/go-audio-synth"
	"github.com/tphakala/go-audio-synth/internal/simdops"
)

const (
	// CLI defaults
	defaultOutput    = "chord.wav"
	defaultFreqs     = "440,554.37,659.26" // A major
	defaultWave      = "sine"
	defaultDuration  = 2.0
	defaultAmplitude = 1.0
	defaultBitDepth  = 16
	defaultChannels  = 1

	// Progress reporting
	progressInterval = 10 // Print progress every N%
	percentScale     = 100
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freqs := flag.String("freqs", defaultFreqs, "Comma-separated frequencies in Hz or note names (e.g., A4,C#5,E5)")
	wave := flag.String("wave", defaultWave, "Waveform: sine, sawtooth, triangle, square")
	amplitude := flag.Float64("amp", defaultAmplitude, "Amplitude of every source (0-1)")
	duration := flag.Float64("duration", defaultDuration, "Duration in seconds")
	rate := flag.Int("rate", synth.RateCD, "Sample rate in Hz")
	bits := flag.Int("bits", defaultBitDepth, "Bit depth: 16, 24 or 32")
	channels := flag.Int("channels", defaultChannels, "Output channels (the mix is duplicated)")
	lowpass := flag.String("lowpass", "", "Low-pass filter: coefficient (0.9) or cutoff (2000hz)")
	highpass := flag.String("highpass", "", "High-pass filter: coefficient (0.99) or cutoff (20hz)")
	verify := flag.Bool("verify", false, "Decode the written file and report its format and pitch")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Usage = usage
	flag.Parse()

	outputPath := defaultOutput
	if flag.NArg() > 0 {
		outputPath = flag.Arg(0)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	req, err := buildRequest(renderOptions{
		freqs:     *freqs,
		wave:      *wave,
		amplitude: *amplitude,
		duration:  *duration,
		rate:      *rate,
		bits:      *bits,
		channels:  *channels,
		lowpass:   *lowpass,
		highpass:  *highpass,
	})
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Output: %s", outputPath)
		for _, src := range req.Sources {
			log.Printf("Source: %s", src)
		}
		for _, f := range req.Filters {
			log.Printf("Filter: %s", f)
		}
		log.Printf("Format: %d Hz, %d channels, %d-bit, %.2fs", req.SampleRate, req.Channels, req.BitDepth, req.Duration)
		log.Printf("SIMD: %s", simdops.CPUInfo())
	}

	start := time.Now()
	written, err := writeFile(outputPath, req, *verbose)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Rendered %s\n", filepath.Base(outputPath))
	fmt.Printf("  %d sources, %d Hz, %d channels, %d-bit\n",
		len(req.Sources), req.SampleRate, req.Channels, req.BitDepth)
	fmt.Printf("  %d samples, %d bytes\n", req.NumSamples(), written)
	fmt.Printf("  Elapsed: %.3fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(), req.Duration/elapsed.Seconds())

	if *verify {
		report, err := verifyFile(outputPath, req)
		if err != nil {
			return err
		}
		fmt.Printf("Verified %s\n", filepath.Base(outputPath))
		fmt.Printf("  %d Hz, %d channels, %d-bit, %d frames (%s)\n",
			report.info.SampleRate, report.info.Channels, report.info.BitDepth,
			report.info.Frames, report.info.Duration)
		fmt.Printf("  Peak: %.4f, RMS: %.4f, Dominant: %.2f Hz\n",
			report.stats.Peak, report.stats.RMS, report.dominant)
	}

	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] [output.wav]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s                                   # A major chord to %s\n", os.Args[0], defaultOutput)
	fmt.Fprintf(os.Stderr, "  %s -freqs A2 -wave saw -lowpass 800hz bass.wav\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -rate 48000 -bits 24 -channels 2 pad.wav\n", os.Args[0])
}
