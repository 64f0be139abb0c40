package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	synth "github.com/tphakala/go-audio-synth"
	"github.com/tphakala/go-audio-synth/control"
)

func defaultLiveOptions() liveOptions {
	return liveOptions{
		freqs:    defaultFreqs,
		wave:     defaultWave,
		rate:     synth.RateCD,
		channels: defaultChannels,
		format:   defaultFormat,
		volumeDB: defaultVolumeDB,
	}
}

func TestBuildConfig(t *testing.T) {
	opts := defaultLiveOptions()
	opts.freqs = "A3,E4"
	opts.format = "s16le"
	opts.lowpass = 0.9

	cfg, err := buildConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, synth.FormatSignedInt16LE, cfg.Format)
	assert.Equal(t, synth.Sine, cfg.Waveform)
	assert.Len(t, cfg.Frequencies, 2)
	assert.Equal(t, 220.0, cfg.Frequencies[0])
	assert.Equal(t, []synth.FilterSpec{synth.LowPassSpec(0.9)}, cfg.Filters)
	assert.InDelta(t, 0.5, cfg.Gain, 0.01)
}

func TestBuildConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *liveOptions)
		wantErr error
	}{
		{"Format", func(o *liveOptions) { o.format = "s24le" }, synth.ErrUnsupportedFormat},
		{"Frequencies", func(o *liveOptions) { o.freqs = "" }, synth.ErrNoSources},
		{"Channels", func(o *liveOptions) { o.channels = 0 }, synth.ErrInvalidConfig},
		{"High-pass", func(o *liveOptions) { o.highpass = 1 }, synth.ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultLiveOptions()
			tt.mutate(&opts)
			_, err := buildConfig(opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	opts := defaultLiveOptions()
	opts.wave = "organ"
	_, err := buildConfig(opts)
	assert.ErrorContains(t, err, "unknown waveform")
}

func TestOtoFormat(t *testing.T) {
	tests := []struct {
		in   synth.SampleFormat
		want oto.Format
	}{
		{synth.FormatFloat32LE, oto.FormatFloat32LE},
		{synth.FormatSignedInt16LE, oto.FormatSignedInt16LE},
		{synth.FormatUnsignedInt8, oto.FormatUnsignedInt8},
	}
	for _, tt := range tests {
		got, err := otoFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := otoFormat(synth.SampleFormat(8))
	assert.ErrorIs(t, err, synth.ErrUnsupportedFormat)
}

func TestReadCommands_ForwardsLatestLine(t *testing.T) {
	rx := control.New()
	var prompt bytes.Buffer

	err := readCommands(strings.NewReader("sine\n\nsawtooth 220\n"), rx, &prompt)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(promptText, 4), prompt.String())

	msg, status := rx.TryReceive()
	require.Equal(t, control.Received, status)
	assert.Equal(t, "sawtooth", msg.Command())
	arg, ok := msg.Arg(0)
	assert.True(t, ok)
	assert.Equal(t, "220", arg)
}

func TestReadCommands_Quit(t *testing.T) {
	rx := control.New()
	err := readCommands(strings.NewReader("square\nquit\ntriangle\n"), rx, io.Discard)
	require.NoError(t, err)

	msg, status := rx.TryReceive()
	require.Equal(t, control.Received, status)
	assert.Equal(t, "square", msg.Command())
}

func TestReadCommands_StopsWhenStreamDetaches(t *testing.T) {
	rx := control.New()
	rx.Detach()
	err := readCommands(strings.NewReader("sine\nsquare\n"), rx, io.Discard)
	assert.NoError(t, err)
}

func TestReadCommands_ReadError(t *testing.T) {
	rx := control.New()
	boom := errors.New("tty gone")
	err := readCommands(iotest.ErrReader(boom), rx, io.Discard)
	assert.ErrorIs(t, err, boom)
}

// TestReadCommands_DrivesStream runs the full console-to-callback path
// without a device.
func TestReadCommands_DrivesStream(t *testing.T) {
	cfg, err := buildConfig(defaultLiveOptions())
	require.NoError(t, err)

	rx := control.New()
	stream, err := synth.NewStream(cfg, rx)
	require.NoError(t, err)

	require.NoError(t, readCommands(strings.NewReader("triangle\n"), rx, io.Discard))
	rx.Close()

	buf := make([]byte, 256)
	_, err = stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, synth.Triangle, stream.Waveform())

	_, err = stream.Read(buf)
	require.NoError(t, err)
	assert.True(t, stream.Stopped())
	<-stream.Done()
}

// TestWaitForSession_InterruptWithBlockedReader covers Ctrl-C while the
// console reader is still waiting for a line.
func TestWaitForSession_InterruptWithBlockedReader(t *testing.T) {
	rx := control.New()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	cmdDone := make(chan error, 1)
	go func() {
		cmdDone <- readCommands(pr, rx, io.Discard)
	}()

	interrupt := make(chan os.Signal, 1)
	interrupt <- os.Interrupt

	result := make(chan error, 1)
	go func() {
		result <- waitForSession(cmdDone, make(chan struct{}), interrupt)
	}()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not end on interrupt")
	}
	assert.Empty(t, cmdDone, "reader is still blocked")
}

func TestWaitForSession(t *testing.T) {
	boom := errors.New("tty gone")

	t.Run("Reader error", func(t *testing.T) {
		cmdDone := make(chan error, 1)
		cmdDone <- boom
		err := waitForSession(cmdDone, nil, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Stream stopped", func(t *testing.T) {
		streamDone := make(chan struct{})
		close(streamDone)
		err := waitForSession(nil, streamDone, nil)
		assert.NoError(t, err)
	})
}
