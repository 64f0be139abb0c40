package wav

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewHeader_CDMono checks the derived fields for one second of CD mono.
func TestNewHeader_CDMono(t *testing.T) {
	const dataSize = 44100 * 2
	h := NewHeader(dataSize, 44100, 16, 1)

	assert.Equal(t, uint32(dataSize+36), h.ChunkSize)
	assert.Equal(t, uint32(88200), h.ByteRate)
	assert.Equal(t, uint16(2), h.BlockAlign)
	assert.Equal(t, uint32(16), h.Subchunk1Size)
	assert.Equal(t, uint16(1), h.AudioFormat)
	assert.Equal(t, uint32(dataSize), h.DataSize())
}

func TestNewHeader_DerivedFields(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate uint32
		bits       uint16
		channels   uint16
		byteRate   uint32
		blockAlign uint16
	}{
		{"Stereo 16-bit", 48000, 16, 2, 192000, 4},
		{"Mono 24-bit", 96000, 24, 1, 288000, 3},
		{"Quad 32-bit", 44100, 32, 4, 705600, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(1000, tt.sampleRate, tt.bits, tt.channels)
			assert.Equal(t, tt.byteRate, h.ByteRate)
			assert.Equal(t, tt.blockAlign, h.BlockAlign)
			assert.Equal(t, uint32(1036), h.ChunkSize)
		})
	}
}

// TestHeader_Layout compares every field against its fixed offset.
func TestHeader_Layout(t *testing.T) {
	h := NewHeader(88200, 44100, 16, 1)
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, HeaderSize)

	le := binary.LittleEndian
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, uint32(88236), le.Uint32(b[4:]))
	assert.Equal(t, "WAVE", string(b[8:12]))
	assert.Equal(t, "fmt ", string(b[12:16]))
	assert.Equal(t, uint32(16), le.Uint32(b[16:]))
	assert.Equal(t, uint16(1), le.Uint16(b[20:]))
	assert.Equal(t, uint16(1), le.Uint16(b[22:]))
	assert.Equal(t, uint32(44100), le.Uint32(b[24:]))
	assert.Equal(t, uint32(88200), le.Uint32(b[28:]))
	assert.Equal(t, uint16(2), le.Uint16(b[32:]))
	assert.Equal(t, uint16(16), le.Uint16(b[34:]))
	assert.Equal(t, "data", string(b[36:40]))
	assert.Equal(t, uint32(88200), le.Uint32(b[40:]))
}

func TestHeader_WriteToMatchesMarshal(t *testing.T) {
	h := NewHeader(4, 8000, 16, 2)
	want, err := h.MarshalBinary()
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(HeaderSize), n)
	assert.Equal(t, want, buf.Bytes())
}

func TestHeader_Unmarshal(t *testing.T) {
	h := NewHeader(2048, 22050, 24, 2)
	b, err := h.MarshalBinary()
	require.NoError(t, err)

	var got Header
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, h, got)

	assert.Error(t, got.UnmarshalBinary(b[:20]))

	b[0] = 'X'
	assert.Error(t, got.UnmarshalBinary(b))
}
