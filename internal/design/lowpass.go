package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/f64"
)

// LowPass designs a linear-phase windowed-sinc low-pass filter.
//
// The result has numTaps symmetric coefficients whose sum (the DC gain) is
// gain. An interpolating stage passes its interpolation factor as gain to
// make up for zero-stuffing.
func (p Params) LowPass(numTaps int, gain, rate, cutoff float64) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if numTaps < MinTapCount || numTaps > MaxTapCount || numTaps%2 == 0 {
		return nil, fmt.Errorf("%w: tap count must be odd and within [%d, %d], got %d",
			ErrInvalidParams, MinTapCount, MaxTapCount, numTaps)
	}
	if rate <= 0 || cutoff <= 0 || cutoff > rate/2 {
		return nil, fmt.Errorf("%w: cutoff %v Hz outside (0, %v] for rate %v Hz",
			ErrInvalidParams, cutoff, rate/2, rate)
	}
	if gain <= 0 {
		return nil, fmt.Errorf("%w: gain must be positive, got %v", ErrInvalidParams, gain)
	}

	window := p.Window.coefficients(numTaps, p.KaiserBeta)
	taps := make([]float64, numTaps)
	center := (numTaps - 1) / 2
	omega := 2 * math.Pi * cutoff / rate

	for i := range taps {
		k := float64(i - center)
		if i == center {
			taps[i] = omega / math.Pi * window[i]
			continue
		}
		taps[i] = math.Sin(k*omega) / (k * math.Pi) * window[i]
	}

	sum := f64.Sum(taps)
	if math.Abs(sum) > gainEpsilon {
		f64.Scale(taps, taps, gain/sum)
	}
	return taps, nil
}

// Response evaluates the filter's complex frequency response at freq Hz.
func Response(taps []float64, freq, rate float64) complex128 {
	omega := -2 * math.Pi * freq / rate
	var h complex128
	for n, c := range taps {
		h += complex(c, 0) * cmplx.Rect(1, omega*float64(n))
	}
	return h
}

// MagnitudeDB returns |H(freq)| in decibels, normalized to the DC gain.
func MagnitudeDB(taps []float64, freq, rate float64) float64 {
	dc := cmplx.Abs(Response(taps, 0, rate))
	mag := cmplx.Abs(Response(taps, freq, rate))
	if dc < minMagnitude {
		dc = minMagnitude
	}
	if mag < minMagnitude {
		mag = minMagnitude
	}
	return dbMultiplier * math.Log10(mag/dc)
}
