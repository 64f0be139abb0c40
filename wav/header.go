// Package wav frames linear PCM audio in the canonical 44-byte RIFF/WAVE
// container and verifies written files by decoding them again.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Errors returned by the encoder.
var (
	// ErrUnsupportedBitDepth indicates a bit depth other than 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("wav: unsupported bit depth")

	// ErrSizeMismatch indicates the body written differs from the header's data size.
	ErrSizeMismatch = errors.New("wav: body size does not match header")
)

// Header is the 44-byte PCM WAV header. All fields except the magic strings
// are derived from the four parameters given to NewHeader.
type Header struct {
	ChunkSize     uint32
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2Size uint32
}

// NewHeader derives a PCM header from the body size and stream format.
func NewHeader(dataSize, sampleRate uint32, bitsPerSample, numChannels uint16) Header {
	bytesPerSample := bitsPerSample / bitsPerByte
	return Header{
		ChunkSize:     dataSize + chunkSizeOverhead,
		Subchunk1Size: pcmSubchunkSize,
		AudioFormat:   formatPCM,
		NumChannels:   numChannels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(bytesPerSample) * uint32(numChannels),
		BlockAlign:    bytesPerSample * numChannels,
		BitsPerSample: bitsPerSample,
		Subchunk2Size: dataSize,
	}
}

// DataSize returns the body size in bytes.
func (h Header) DataSize() uint32 {
	return h.Subchunk2Size
}

// MarshalBinary encodes the header in its little-endian on-disk layout.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	h.put(b)
	return b, nil
}

// UnmarshalBinary decodes a 44-byte PCM header.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("wav: header needs %d bytes, got %d", HeaderSize, len(b))
	}
	if string(b[offsetRIFF:offsetRIFF+4]) != "RIFF" ||
		string(b[offsetWAVE:offsetWAVE+4]) != "WAVE" ||
		string(b[offsetFmt:offsetFmt+4]) != "fmt " ||
		string(b[offsetData:offsetData+4]) != "data" {
		return errors.New("wav: not a canonical PCM header")
	}

	le := binary.LittleEndian
	h.ChunkSize = le.Uint32(b[offsetChunkSize:])
	h.Subchunk1Size = le.Uint32(b[offsetSubchunk1Size:])
	h.AudioFormat = le.Uint16(b[offsetAudioFormat:])
	h.NumChannels = le.Uint16(b[offsetNumChannels:])
	h.SampleRate = le.Uint32(b[offsetSampleRate:])
	h.ByteRate = le.Uint32(b[offsetByteRate:])
	h.BlockAlign = le.Uint16(b[offsetBlockAlign:])
	h.BitsPerSample = le.Uint16(b[offsetBitsPerSample:])
	h.Subchunk2Size = le.Uint32(b[offsetSubchunk2Size:])
	return nil
}

// WriteTo writes the encoded header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	var b [HeaderSize]byte
	h.put(b[:])
	n, err := w.Write(b[:])
	return int64(n), err
}

func (h Header) put(b []byte) {
	le := binary.LittleEndian

	// RIFF header
	copy(b[offsetRIFF:], "RIFF")
	le.PutUint32(b[offsetChunkSize:], h.ChunkSize)
	copy(b[offsetWAVE:], "WAVE")

	// fmt subchunk
	copy(b[offsetFmt:], "fmt ")
	le.PutUint32(b[offsetSubchunk1Size:], h.Subchunk1Size)
	le.PutUint16(b[offsetAudioFormat:], h.AudioFormat)
	le.PutUint16(b[offsetNumChannels:], h.NumChannels)
	le.PutUint32(b[offsetSampleRate:], h.SampleRate)
	le.PutUint32(b[offsetByteRate:], h.ByteRate)
	le.PutUint16(b[offsetBlockAlign:], h.BlockAlign)
	le.PutUint16(b[offsetBitsPerSample:], h.BitsPerSample)

	// data subchunk
	copy(b[offsetData:], "data")
	le.PutUint32(b[offsetSubchunk2Size:], h.Subchunk2Size)
}
