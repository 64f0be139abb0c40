package synth

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2   // Fast path in the live interleaver
	maxChannels    = 256 // Maximum supported channel count
)

// PCM bit depths
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
	bitsPerByte     = 8
)

// Signed full-scale values used when quantizing a [-1, 1] mix
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// Live output encoding
const (
	bytesPerFloat32 = 4
	bytesPerInt16   = 2
	bytesPerUint8   = 1
	uint8Midpoint   = 128.0 // Offset-binary zero for unsigned 8-bit
	uint8Scale      = 127.0
)

// Defaults
const (
	defaultSampleRate = 44100
	defaultFrequency  = 440.0 // A4
	defaultAmplitude  = 1.0
	defaultGain       = 1.0
	defaultBitDepth   = bitsPerSample16

	// Initial scratch size for the live renderer (frames). Grown once if a
	// driver asks for more.
	defaultScratchFrames = 4096
)

// Waveform shape constants
const (
	halfCycle = 0.5
	sawScale  = 2.0
	triSlope  = 4.0
)

// Note naming
const (
	semitonesPerOctave = 12
	referenceOctave    = 4
	referencePitch     = 440.0 // A4 concert pitch
	referenceSemitone  = 9     // A is 9 semitones above C
)
