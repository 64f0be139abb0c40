package synth

import "strings"

// SampleFormat is the sample encoding a live output device consumes.
// The values mirror the formats oto can open.
type SampleFormat int

const (
	// FormatFloat32LE is 32-bit IEEE float, little endian, nominal range [-1, 1].
	FormatFloat32LE SampleFormat = iota

	// FormatSignedInt16LE is signed 16-bit PCM, little endian.
	FormatSignedInt16LE

	// FormatUnsignedInt8 is offset-binary 8-bit PCM.
	FormatUnsignedInt8
)

// String returns the format name.
func (f SampleFormat) String() string {
	switch f {
	case FormatFloat32LE:
		return "f32le"
	case FormatSignedInt16LE:
		return "s16le"
	case FormatUnsignedInt8:
		return "u8"
	default:
		return "unknown"
	}
}

// BytesPerSample returns the encoded size of one sample, or 0 for an
// unsupported format.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatFloat32LE:
		return bytesPerFloat32
	case FormatSignedInt16LE:
		return bytesPerInt16
	case FormatUnsignedInt8:
		return bytesPerUint8
	default:
		return 0
	}
}

// ParseSampleFormat looks up a format by name.
func ParseSampleFormat(name string) (SampleFormat, bool) {
	switch strings.ToLower(name) {
	case "f32le", "f32", "float32":
		return FormatFloat32LE, true
	case "s16le", "s16", "int16":
		return FormatSignedInt16LE, true
	case "u8", "uint8":
		return FormatUnsignedInt8, true
	default:
		return 0, false
	}
}
