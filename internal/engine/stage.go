// Package engine is a reference streaming realization of a stage plan:
// frequency-translating FIR stages, overlap-save FFT stages and a cubic
// fractional resampler, run in sequence by a Chain.
package engine

import "errors"

// ErrInvalidStage indicates a stage constructed with unusable parameters.
var ErrInvalidStage = errors.New("invalid stage parameters")

// Stage is a single streaming step of a chain.
type Stage interface {
	// Process transforms input samples to output samples.
	Process(input []complex128) ([]complex128, error)

	// Flush returns any remaining buffered samples.
	Flush() ([]complex128, error)

	// Reset clears internal state.
	Reset()

	// Ratio returns the stage's rate ratio (output/input).
	Ratio() float64

	// TapCount returns the filter length (interpolation points for the resampler).
	TapCount() int

	// Latency returns the stage delay in output samples.
	Latency() int
}
