package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	synth "github.com/tphakala/go-audio-synth"
	"github.com/tphakala/go-audio-synth/internal/analysis"
	"github.com/tphakala/go-audio-synth/wav"
)

// cutoffSuffix marks a filter flag value as a cutoff frequency.
const cutoffSuffix = "hz"

// renderOptions holds the raw flag values.
type renderOptions struct {
	freqs     string
	wave      string
	amplitude float64
	duration  float64
	rate      int
	bits      int
	channels  int
	lowpass   string
	highpass  string
}

// buildRequest turns flag values into a validated render request.
func buildRequest(opts renderOptions) (*synth.RenderRequest, error) {
	w, ok := synth.ParseWaveform(opts.wave)
	if !ok {
		return nil, fmt.Errorf("unknown waveform %q", opts.wave)
	}

	freqs, err := synth.ParseFrequencies(opts.freqs)
	if err != nil {
		return nil, fmt.Errorf("invalid -freqs: %w", err)
	}

	sources := make([]synth.Source, 0, len(freqs))
	for _, f := range freqs {
		src, err := synth.NewSource(w, opts.amplitude, f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	req := &synth.RenderRequest{
		Sources:    sources,
		SampleRate: opts.rate,
		Duration:   opts.duration,
		Channels:   opts.channels,
		BitDepth:   opts.bits,
	}

	for _, f := range []struct {
		kind  synth.FilterKind
		value string
	}{
		{synth.LowPass, opts.lowpass},
		{synth.HighPass, opts.highpass},
	} {
		spec, ok, err := parseFilterFlag(f.kind, f.value)
		if err != nil {
			return nil, err
		}
		if ok {
			req.Filters = append(req.Filters, spec)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// parseFilterFlag reads "0.9" as a coefficient and "2000hz" as a cutoff.
// An empty value means no filter.
func parseFilterFlag(kind synth.FilterKind, value string) (synth.FilterSpec, bool, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return synth.FilterSpec{}, false, nil
	}

	if hz, found := strings.CutSuffix(value, cutoffSuffix); found {
		cutoff, err := strconv.ParseFloat(strings.TrimSpace(hz), 64)
		if err != nil {
			return synth.FilterSpec{}, false, fmt.Errorf("invalid -%s cutoff %q: %w", kind, value, err)
		}
		return synth.FilterSpec{Kind: kind, CutoffHz: cutoff}, true, nil
	}

	alpha, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return synth.FilterSpec{}, false, fmt.Errorf("invalid -%s coefficient %q: %w", kind, value, err)
	}
	return synth.FilterSpec{Kind: kind, Alpha: alpha}, true, nil
}

// writeFile renders req to path. A failed render leaves the partial file
// in place.
func writeFile(path string, req *synth.RenderRequest, verbose bool) (written int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	pw := &progressWriter{
		w:        f,
		progress: newProgressTracker(req.DataSize()+wav.HeaderSize, verbose),
	}
	return synth.WriteWAV(pw, req)
}

// progressWriter reports progress as bytes reach the file.
type progressWriter struct {
	w        io.Writer
	written  int64
	progress *progressTracker
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.progress.reportIfNeeded(p.written)
	return n, err
}

// progressTracker handles progress reporting.
type progressTracker struct {
	total        int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(total int64, verbose bool) *progressTracker {
	return &progressTracker{
		total:   total,
		verbose: verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(current int64) {
	if !p.verbose || p.total == 0 {
		return
	}

	progress := int(float64(current) / float64(p.total) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// verifyReport summarizes a decoded output file.
type verifyReport struct {
	info     wav.Info
	stats    analysis.Stats
	dominant float64
}

// verifyFile decodes path with the go-audio decoder and checks it against req.
func verifyFile(path string, req *synth.RenderRequest) (*verifyReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf, info, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("invalid WAV file %s: %w", path, err)
	}

	var errs []error
	if info.SampleRate != req.SampleRate {
		errs = append(errs, fmt.Errorf("sample rate %d, want %d", info.SampleRate, req.SampleRate))
	}
	if info.Channels != req.Channels {
		errs = append(errs, fmt.Errorf("channels %d, want %d", info.Channels, req.Channels))
	}
	if info.BitDepth != req.BitDepth {
		errs = append(errs, fmt.Errorf("bit depth %d, want %d", info.BitDepth, req.BitDepth))
	}
	if info.Frames != req.NumSamples() {
		errs = append(errs, fmt.Errorf("frames %d, want %d", info.Frames, req.NumSamples()))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}

	mono := wav.Normalize(buf, info.BitDepth, 0)
	return &verifyReport{
		info:     info,
		stats:    analysis.Measure(mono),
		dominant: analysis.DominantFrequency(mono, float64(info.SampleRate)),
	}, nil
}
