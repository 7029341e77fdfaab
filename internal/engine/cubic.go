package engine

import (
	"fmt"
	"math"
)

// CubicStage implements cubic (4-point, 3rd order) Hermite interpolation
// on complex samples. It covers the fractional rate change left after the
// integer stages, where the signal is already band limited well below
// Nyquist.
type CubicStage struct {
	ratio   float64
	step    float64 // input samples per output sample
	phase   float64
	history [cubicInterpolationPoints]complex128 // 4-point window, newest first
}

// NewCubicStage creates a new cubic interpolation stage for output/input ratio.
func NewCubicStage(ratio float64) (*CubicStage, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: resampling ratio %v", ErrInvalidStage, ratio)
	}
	return &CubicStage{
		ratio: ratio,
		step:  1 / ratio,
	}, nil
}

// Process resamples input using cubic interpolation.
func (c *CubicStage) Process(input []complex128) ([]complex128, error) {
	if len(input) == 0 {
		return []complex128{}, nil
	}

	// Estimate output size
	outputSize := int(math.Ceil(float64(len(input)) * c.ratio))
	output := make([]complex128, 0, outputSize)

	for _, sample := range input {
		// Shift history window
		c.history[3] = c.history[2]
		c.history[2] = c.history[1]
		c.history[1] = c.history[0]
		c.history[0] = sample

		// Generate output samples
		for c.phase < 1.0 {
			output = append(output, c.interpolate(c.phase))
			c.phase += c.step
		}

		// Wrap phase
		c.phase -= 1.0
	}

	return output, nil
}

// interpolate evaluates y = ((a*x + b)*x + c)*x + d between the two middle
// points of the window, x being the fractional position.
func (c *CubicStage) interpolate(x float64) complex128 {
	y0 := c.history[3] // oldest
	y1 := c.history[2]
	y2 := c.history[1]
	y3 := c.history[0] // newest

	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	xc := complex(x, 0)
	return ((coefA*xc+coefB)*xc+coefC)*xc + coefD
}

// Flush returns any remaining samples.
func (c *CubicStage) Flush() ([]complex128, error) {
	// Cubic interpolation doesn't buffer samples
	return []complex128{}, nil
}

// Reset clears internal state.
func (c *CubicStage) Reset() {
	c.phase = 0
	c.history = [cubicInterpolationPoints]complex128{}
}

// Ratio returns the stage's resampling ratio.
func (c *CubicStage) Ratio() float64 {
	return c.ratio
}

// TapCount returns the number of interpolation points.
func (c *CubicStage) TapCount() int {
	return cubicInterpolationPoints
}

// Latency returns the stage latency in samples.
func (c *CubicStage) Latency() int {
	return cubicLatencySamples
}
