package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Encoder writes a header followed by signed little-endian PCM samples.
// Writing is append-only, so any io.Writer works; no seeking is needed
// because the data size is known before the first sample.
type Encoder struct {
	w       *bufio.Writer
	header  Header
	written uint64
	byteBuf []byte // Preallocated buffer for encoding
}

// NewEncoder writes h to w and returns an encoder for the body.
func NewEncoder(w io.Writer, h Header) (*Encoder, error) {
	switch h.BitsPerSample {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, h.BitsPerSample)
	}

	e := &Encoder{
		w:       bufio.NewWriterSize(w, writerBufferSize),
		header:  h,
		byteBuf: make([]byte, encodeChunk*int(h.BitsPerSample/bitsPerByte)),
	}

	if _, err := h.WriteTo(e.w); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	return e, nil
}

// Header returns the header the encoder was created with.
func (e *Encoder) Header() Header {
	return e.header
}

// Written returns the number of body bytes written so far.
func (e *Encoder) Written() uint64 {
	return e.written
}

// WriteSamples encodes interleaved samples at the header's bit depth.
// Samples must already be within the signed range of that depth.
func (e *Encoder) WriteSamples(samples []int) error {
	for len(samples) > 0 {
		n := min(len(samples), encodeChunk)
		if err := e.writeChunk(samples[:n]); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

func (e *Encoder) writeChunk(samples []int) error {
	var buf []byte

	switch e.header.BitsPerSample {
	case bitsPerSample16:
		buf = e.byteBuf[:len(samples)*bytesPerSample16]
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*bytesPerSample16:], uint16(int16(s)))
		}
	case bitsPerSample24:
		buf = e.byteBuf[:len(samples)*bytesPerSample24]
		for i, s := range samples {
			buf[i*bytesPerSample24] = byte(s)
			buf[i*bytesPerSample24+1] = byte(s >> bitShift8)
			buf[i*bytesPerSample24+2] = byte(s >> bitShift16)
		}
	case bitsPerSample32:
		buf = e.byteBuf[:len(samples)*bytesPerSample32]
		for i, s := range samples {
			binary.LittleEndian.PutUint32(buf[i*bytesPerSample32:], uint32(int32(s)))
		}
	}

	written, err := e.w.Write(buf)
	e.written += uint64(written)
	if err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close flushes buffered data. It does not close the underlying writer.
// ErrSizeMismatch is returned when the body does not match the header.
func (e *Encoder) Close() error {
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush audio data: %w", err)
	}
	if e.written != uint64(e.header.Subchunk2Size) {
		return fmt.Errorf("%w: wrote %d bytes, header declares %d",
			ErrSizeMismatch, e.written, e.header.Subchunk2Size)
	}
	return nil
}
