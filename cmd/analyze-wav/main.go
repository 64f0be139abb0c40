// Command analyze-wav reports the format, level and pitch of WAV files and
// the measured response of one-pole filters.
//
// Usage:
//
//	analyze-wav chord.wav lead.wav
//	analyze-wav -filter lowpass -alpha 0.9
//	analyze-wav -filter highpass -cutoff 200
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	synth "github.com/tphakala/go-audio-synth"
	"github.com/tphakala/go-audio-synth/internal/analysis"
	"github.com/tphakala/go-audio-synth/internal/mathutil"
	"github.com/tphakala/go-audio-synth/wav"
)

const (
	// Filter response measurement
	responseRate     = synth.RateCD
	responseSamples  = 16384
	responseSettle   = 4096 // Samples skipped while the filter memory settles
	sineRMS          = 0.7071067811865476
	maxChannelsShown = 8
)

// responseFrequencies are the probe tones for filter analysis.
var responseFrequencies = []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	filterName := flag.String("filter", "", "Analyze a filter instead of files: lowpass or highpass")
	alpha := flag.Float64("alpha", 0.9, "Filter coefficient in [0, 1)")
	cutoff := flag.Float64("cutoff", 0, "Filter cutoff in Hz (overrides -alpha)")
	flag.Parse()

	if *filterName != "" {
		kind, ok := synth.ParseFilterKind(*filterName)
		if !ok {
			return fmt.Errorf("unknown filter %q", *filterName)
		}
		return analyzeFilter(synth.FilterSpec{Kind: kind, Alpha: *alpha, CutoffHz: *cutoff})
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file.wav...\n\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("no input files")
	}

	for _, path := range flag.Args() {
		if err := analyzeFile(path); err != nil {
			return err
		}
	}
	return nil
}

func analyzeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf, info, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("invalid WAV file %s: %w", path, err)
	}

	fmt.Printf("=== %s ===\n", path)
	fmt.Printf("  Format: %d Hz, %d channels, %d-bit\n", info.SampleRate, info.Channels, info.BitDepth)
	fmt.Printf("  Length: %d frames (%s)\n", info.Frames, info.Duration)

	for ch := range min(info.Channels, maxChannelsShown) {
		samples := wav.Normalize(buf, info.BitDepth, ch)
		stats := analysis.Measure(samples)
		dominant := analysis.DominantFrequency(samples, float64(info.SampleRate))
		fmt.Printf("  Channel %d: peak %.4f (%.2f dBFS), RMS %.4f, DC %+.5f, dominant %.2f Hz\n",
			ch, stats.Peak, mathutil.LinearToDB(stats.Peak), stats.RMS, stats.DC, dominant)
	}
	if info.Channels > maxChannelsShown {
		fmt.Printf("  ... (%d more channels)\n", info.Channels-maxChannelsShown)
	}
	return nil
}

func analyzeFilter(spec synth.FilterSpec) error {
	if err := spec.Validate(responseRate); err != nil {
		return err
	}

	fmt.Printf("=== Analyzing %s at %d Hz ===\n", spec, responseRate)
	fmt.Println("  Frequency      Gain")
	for _, freq := range responseFrequencies {
		gain, err := measureGain(spec, freq)
		if err != nil {
			return err
		}
		fmt.Printf("  %7.0f Hz  %+7.2f dB\n", freq, mathutil.LinearToDB(gain))
	}
	return nil
}

// measureGain renders a unit sine through a fresh filter and returns the
// RMS gain once the filter has settled.
func measureGain(spec synth.FilterSpec, freq float64) (float64, error) {
	req := synth.DefaultRenderRequest(float64(responseSamples)/responseRate, synth.SineSource(freq))
	req.SampleRate = responseRate
	req.Filters = []synth.FilterSpec{spec}

	out, err := synth.RenderFloat(req)
	if err != nil {
		return 0, err
	}
	return analysis.Measure(out[responseSettle:]).RMS / sineRMS, nil
}
