package engine

import (
	"fmt"
	"slices"

	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTStage filters by overlap-save FFT convolution and then keeps every
// decimation-th output. It interpolates by zero-stuffing first when asked.
//
// Overlap-save method:
//  1. Each block holds the previous kernelLen-1 inputs followed by blockSize new ones
//  2. The circular convolution of a block is exact past its first kernelLen-1 outputs
//  3. Those first kernelLen-1 outputs are discarded (circular wrap)
type FFTStage struct {
	fft       *fourier.CmplxFFT
	fftSize   int
	blockSize int // new input samples per block = fftSize - overlap
	overlap   int // kernelLen - 1

	// Kernel spectrum, pre-scaled by 1/fftSize since gonum does not normalize.
	kernelFFT []complex128
	kernelLen int

	interpolation int
	decimation    int
	phase         int // offset of the next kept output within the next block

	pending *RingBuffer

	// Working buffers
	block    []complex128
	spectrum []complex128
	product  []complex128
	result   []complex128
	stuffed  []complex128
}

// NewFFTStage creates an overlap-save stage for the given taps.
func NewFFTStage(taps []float64, interpolation, decimation int) (*FFTStage, error) {
	kernelLen := len(taps)
	if kernelLen == 0 {
		return nil, fmt.Errorf("%w: no taps", ErrInvalidStage)
	}
	if interpolation < 1 || decimation < 1 {
		return nil, fmt.Errorf("%w: interpolation %d and decimation %d must be at least 1",
			ErrInvalidStage, interpolation, decimation)
	}

	// Choose FFT size: power of 2 comfortably larger than the kernel
	fftSize := minFFTSize
	for fftSize < fftKernelMultiple*kernelLen {
		fftSize *= 2
	}
	overlap := kernelLen - 1

	fft := fourier.NewCmplxFFT(fftSize)

	kernelPadded := make([]complex128, fftSize)
	for i, t := range taps {
		kernelPadded[i] = complex(t, 0)
	}
	kernelFFT := fft.Coefficients(nil, kernelPadded)
	scale := complex(1/float64(fftSize), 0)
	for i := range kernelFFT {
		kernelFFT[i] *= scale
	}

	s := &FFTStage{
		fft:           fft,
		fftSize:       fftSize,
		blockSize:     fftSize - overlap,
		overlap:       overlap,
		kernelFFT:     kernelFFT,
		kernelLen:     kernelLen,
		interpolation: interpolation,
		decimation:    decimation,
		pending:       NewRingBuffer(fftSize),
		block:         make([]complex128, fftSize),
		spectrum:      make([]complex128, fftSize),
		product:       make([]complex128, fftSize),
		result:        make([]complex128, fftSize),
	}
	return s, nil
}

// Process queues input and filters every complete block.
func (s *FFTStage) Process(input []complex128) ([]complex128, error) {
	if len(input) == 0 {
		return []complex128{}, nil
	}

	s.pending.Write(s.upsample(input))

	blocks := s.pending.Available() / s.blockSize
	output := make([]complex128, 0, blocks*s.blockSize/s.decimation+1)
	for s.pending.Available() >= s.blockSize {
		s.pending.ReadInto(s.block[s.overlap:])
		output = s.filterBlock(output, s.blockSize)
	}
	return output, nil
}

// upsample zero-stuffs input by the interpolation factor.
func (s *FFTStage) upsample(input []complex128) []complex128 {
	if s.interpolation == 1 {
		return input
	}
	s.stuffed = slices.Grow(s.stuffed[:0], len(input)*s.interpolation)[:len(input)*s.interpolation]
	clear(s.stuffed)
	for i, x := range input {
		s.stuffed[i*s.interpolation] = x
	}
	return s.stuffed
}

// filterBlock convolves the current block, appends the kept outputs among
// the first valid new positions, and slides the overlap forward.
func (s *FFTStage) filterBlock(output []complex128, valid int) []complex128 {
	s.spectrum = s.fft.Coefficients(s.spectrum, s.block)

	// Multiply in frequency domain using SIMD
	c128.Mul(s.product, s.spectrum, s.kernelFFT)

	s.result = s.fft.Sequence(s.result, s.product)

	i := s.phase
	for ; i < valid; i += s.decimation {
		output = append(output, s.result[s.overlap+i])
	}
	s.phase = i - valid

	copy(s.block[:s.overlap], s.block[s.fftSize-s.overlap:])
	return output
}

// Flush zero-pads the queued samples to a full block and returns only the
// outputs that belong to real input.
func (s *FFTStage) Flush() ([]complex128, error) {
	queued := s.pending.Available()
	if queued == 0 {
		return []complex128{}, nil
	}

	clear(s.block[s.overlap:])
	s.pending.ReadInto(s.block[s.overlap:])
	return s.filterBlock(make([]complex128, 0, queued/s.decimation+1), queued), nil
}

// Reset clears queued input and the overlap history.
func (s *FFTStage) Reset() {
	s.pending.Clear()
	clear(s.block)
	s.phase = 0
}

// Ratio returns interpolation/decimation.
func (s *FFTStage) Ratio() float64 {
	return float64(s.interpolation) / float64(s.decimation)
}

// TapCount returns the kernel length.
func (s *FFTStage) TapCount() int {
	return s.kernelLen
}

// Latency returns the group delay in output samples. Samples also wait for
// a full block, which Flush releases.
func (s *FFTStage) Latency() int {
	return s.overlap / latencyDivisor / s.decimation
}

// BlockSize returns the number of input samples consumed per FFT block.
func (s *FFTStage) BlockSize() int {
	return s.blockSize
}
