package engine

import "math"

// Cubic (Hermite) interpolation constants
const (
	// Cubic interpolation uses 4-point window
	cubicInterpolationPoints = 4

	// Cubic interpolation latency (centered around middle points)
	cubicLatencySamples = 2

	// Hermite interpolation coefficients for smooth C1 continuity
	// Formula: y = ((a*x + b)*x + c)*x + d
	// coefA := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// FFT overlap-save constants
const (
	// Smallest FFT size used for block convolution.
	minFFTSize = 512

	// The FFT is at least this many times the kernel length so each block
	// yields a useful number of new outputs.
	fftKernelMultiple = 2
)

// Mixer constants
const (
	twoPi = 2 * math.Pi
)

// Buffer constants
const (
	bufferGrowthFactor = 2

	// Latency is half the linear-phase filter length.
	latencyDivisor = 2
)
