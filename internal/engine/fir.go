package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/simd/f64"
)

// FIRStage is a direct-form FIR filter that optionally translates the
// signal by a center frequency, interpolates by zero-stuffing and decimates.
//
// Real and imaginary parts are kept in separate histories so each output is
// two real SIMD dot products against the same taps.
type FIRStage struct {
	taps          []float64 // reversed for direct dot products
	interpolation int
	decimation    int

	// Oscillator that moves centerFreq to 0 Hz.
	phase     float64
	phaseStep float64

	histRe []float64
	histIm []float64
	pos    int // start of the next output window in the history
}

// NewFIRStage creates a FIR stage. The taps should carry a DC gain equal to
// interpolation to make up for zero-stuffing. A zero centerFreq disables the
// mixer.
func NewFIRStage(taps []float64, interpolation, decimation int, centerFreq, inputRate float64) (*FIRStage, error) {
	if len(taps) == 0 {
		return nil, fmt.Errorf("%w: no taps", ErrInvalidStage)
	}
	if interpolation < 1 || decimation < 1 {
		return nil, fmt.Errorf("%w: interpolation %d and decimation %d must be at least 1",
			ErrInvalidStage, interpolation, decimation)
	}
	if inputRate <= 0 || math.IsNaN(centerFreq) || math.IsInf(centerFreq, 0) {
		return nil, fmt.Errorf("%w: input rate %v, center frequency %v", ErrInvalidStage, inputRate, centerFreq)
	}

	reversed := slices.Clone(taps)
	slices.Reverse(reversed)

	s := &FIRStage{
		taps:          reversed,
		interpolation: interpolation,
		decimation:    decimation,
		phaseStep:     -twoPi * centerFreq / inputRate,
	}
	s.Reset()
	return s, nil
}

// Process filters input and returns the decimated output.
func (s *FIRStage) Process(input []complex128) ([]complex128, error) {
	if len(input) == 0 {
		return []complex128{}, nil
	}

	for _, x := range input {
		x = s.mix(x)
		s.histRe = append(s.histRe, real(x))
		s.histIm = append(s.histIm, imag(x))
		for range s.interpolation - 1 {
			s.histRe = append(s.histRe, 0)
			s.histIm = append(s.histIm, 0)
		}
	}

	n := len(s.taps)
	histLen := len(s.histRe)
	outputSize := max(histLen-n+1-s.pos, 0)/s.decimation + 1
	output := make([]complex128, 0, outputSize)

	for ; s.pos+n <= histLen; s.pos += s.decimation {
		re := f64.DotProductUnsafe(s.taps, s.histRe[s.pos:s.pos+n])
		im := f64.DotProductUnsafe(s.taps, s.histIm[s.pos:s.pos+n])
		output = append(output, complex(re, im))
	}

	// Consume processed samples from history
	consumed := min(s.pos, histLen)
	if consumed > 0 {
		copy(s.histRe, s.histRe[consumed:])
		copy(s.histIm, s.histIm[consumed:])
		s.histRe = s.histRe[:histLen-consumed]
		s.histIm = s.histIm[:histLen-consumed]
		s.pos -= consumed
	}

	return output, nil
}

// mix rotates x by the oscillator and advances it one input sample.
func (s *FIRStage) mix(x complex128) complex128 {
	if s.phaseStep == 0 {
		return x
	}
	sin, cos := math.Sincos(s.phase)
	s.phase += s.phaseStep
	if s.phase > math.Pi || s.phase < -math.Pi {
		s.phase = math.Remainder(s.phase, twoPi)
	}
	return x * complex(cos, sin)
}

// Flush returns any remaining samples. The history is primed with zeros so
// every input sample has already produced its outputs.
func (s *FIRStage) Flush() ([]complex128, error) {
	return []complex128{}, nil
}

// Reset clears the history and the oscillator phase.
func (s *FIRStage) Reset() {
	n := len(s.taps)
	s.histRe = make([]float64, n-1, 2*n)
	s.histIm = make([]float64, n-1, 2*n)
	s.pos = 0
	s.phase = 0
}

// Ratio returns interpolation/decimation.
func (s *FIRStage) Ratio() float64 {
	return float64(s.interpolation) / float64(s.decimation)
}

// TapCount returns the filter length.
func (s *FIRStage) TapCount() int {
	return len(s.taps)
}

// Latency returns the group delay in output samples.
func (s *FIRStage) Latency() int {
	return (len(s.taps) - 1) / latencyDivisor / s.decimation
}
