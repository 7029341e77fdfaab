package main

const (
	// Frames read from the input per chunk.
	bufferSize = 65536

	// I/Q recordings carry I on the left channel and Q on the right.
	iqChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Full-scale values used for normalization.
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// PCM format tag for the WAV encoder.
	wavFormatPCM = 1

	progressInterval = 10 // Print progress every N%
	percentScale     = 100
	minRequiredArgs  = 2

	// CLI defaults
	defaultCutoff          = 5000.0
	defaultTransitionWidth = 1000.0
	defaultWindow          = "hamming"
)

// Offsets printed by -response, as multiples of the cutoff.
var responseOffsets = []float64{0, 0.5, 0.9, 1, 1.5, 2, 4}
