// Package testutil provides assertion helpers shared by the channel filter tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances.
const (
	DefaultTolerance = 1e-10

	// Streaming rate checks: the final discrepancy must stay within
	// RateTolerance samples and successive runs must agree within
	// RateDriftTolerance samples.
	RateTolerance      = 100.0
	RateDriftTolerance = 200.0
)

const halfDivisor = 2

// AssertSymmetric verifies that s[i] == s[n-1-i].
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/halfDivisor; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"not symmetric at i=%d: s[%d]=%g != s[%d]=%g", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that every element is finite.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return assert.Fail(t, "non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertDCGain verifies that the coefficients sum to expectedGain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance, "DC gain = %g, want %g", sum, expectedGain)
}

// AssertCenterIsMax verifies that the middle element is the largest.
func AssertCenterIsMax(t *testing.T, s []float64) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	center := len(s) / halfDivisor
	for i, v := range s {
		if v > s[center] {
			return assert.Fail(t, "center is not max",
				"s[%d]=%g > center s[%d]=%g", i, v, center, s[center])
		}
	}
	return true
}

// AssertOddLength verifies that a filter has an odd number of taps.
func AssertOddLength(t *testing.T, s []float64) bool {
	t.Helper()
	return assert.Equal(t, 1, len(s)%halfDivisor, "length %d is not odd", len(s))
}

// RateDiscrepancy returns expected minus actual output samples for n inputs
// at the given output/input ratio.
func RateDiscrepancy(n, produced int, ratio float64) float64 {
	return float64(n)*ratio - float64(produced)
}

// AssertRateConverges streams n, 2n and 10n samples through fresh runs of
// run and checks the output count approaches n*ratio with a bounded error
// that does not grow with n.
func AssertRateConverges(t *testing.T, run func(n int) int, n int, ratio float64) bool {
	t.Helper()

	d1 := RateDiscrepancy(n, run(n), ratio)
	d2 := RateDiscrepancy(2*n, run(2*n), ratio)
	d3 := RateDiscrepancy(10*n, run(10*n), ratio)

	ok := assert.InDelta(t, 0, d3, RateTolerance, "%f fewer output samples than expected", d3)
	ok = assert.InDelta(t, d1, d2, RateDriftTolerance, "varying delta: %.0f %.0f %.0f", d1, d2, d3) && ok
	ok = assert.InDelta(t, d2, d3, RateDriftTolerance, "varying delta: %.0f %.0f %.0f", d1, d2, d3) && ok
	return ok
}
