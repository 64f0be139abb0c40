package wav

import "math"

// Canonical 44-byte PCM header layout
const (
	HeaderSize = 44 // Total header size in bytes

	chunkSizeOverhead = 36 // chunk_size = data_size + 36
	pcmSubchunkSize   = 16 // fmt subchunk size for PCM
	formatPCM         = 1  // audio_format for linear PCM
	bitsPerByte       = 8
)

// Field offsets
const (
	offsetRIFF          = 0
	offsetChunkSize     = 4
	offsetWAVE          = 8
	offsetFmt           = 12
	offsetSubchunk1Size = 16
	offsetAudioFormat   = 20
	offsetNumChannels   = 22
	offsetSampleRate    = 24
	offsetByteRate      = 28
	offsetBlockAlign    = 32
	offsetBitsPerSample = 34
	offsetData          = 36
	offsetSubchunk2Size = 40
)

// MaxDataSize is the largest body that keeps chunk_size within 32 bits.
const MaxDataSize = math.MaxUint32 - chunkSizeOverhead

// Sample widths
const (
	bitsPerSample16  = 16
	bitsPerSample24  = 24
	bitsPerSample32  = 32
	bytesPerSample16 = 2
	bytesPerSample24 = 3
	bytesPerSample32 = 4
	bitShift8        = 8
	bitShift16       = 16
)

// I/O buffer sizes
const (
	writerBufferSize = 256 * 1024 // 256KB write buffer
	encodeChunk      = 4096       // Samples encoded per scratch fill
)
