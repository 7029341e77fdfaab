// Package design derives per-stage filter parameters: tap counts from
// transition width, the realization used for a stage, and windowed-sinc
// low-pass coefficients.
package design

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams indicates an unusable design configuration.
var ErrInvalidParams = errors.New("invalid filter design parameters")

// Realization identifies how a stage is executed.
type Realization int

const (
	// FrequencyTranslatingFIR mixes the signal down by the center frequency
	// and filters it in the time domain in the same pass.
	FrequencyTranslatingFIR Realization = iota

	// FFTOverlapFilter filters by overlap-save block convolution.
	FFTOverlapFilter
)

// String returns the realization name used in plan explanations.
func (r Realization) String() string {
	switch r {
	case FrequencyTranslatingFIR:
		return "FrequencyTranslatingFIR"
	case FFTOverlapFilter:
		return "FFTOverlapFilter"
	default:
		return fmt.Sprintf("Realization(%d)", int(r))
	}
}

// Factor is a stage's rate change as a reduced integer pair.
// A stage either interpolates or decimates, never both.
type Factor struct {
	Interpolation int
	Decimation    int
}

// Unity is the factor of a stage that keeps its rate.
var Unity = Factor{Interpolation: 1, Decimation: 1}

// Value returns rateIn/rateOut: above 1 decimates, below 1 interpolates.
func (f Factor) Value() float64 {
	return float64(f.Decimation) / float64(f.Interpolation)
}

// Decimating reports whether the stage lowers the rate.
func (f Factor) Decimating() bool {
	return f.Decimation > f.Interpolation
}

// Interpolating reports whether the stage raises the rate.
func (f Factor) Interpolating() bool {
	return f.Interpolation > f.Decimation
}

// Params names the window design constants used for every stage.
// Swapping the window changes tap counts without touching the planner.
type Params struct {
	Window Window

	// KaiserBeta is only read when Window is WindowKaiser.
	KaiserBeta float64
}

// DefaultParams returns the Hamming design.
func DefaultParams() Params {
	return Params{Window: WindowHamming, KaiserBeta: defaultKaiserBeta}
}

// Validate checks the window selection.
func (p Params) Validate() error {
	if _, ok := windowNames[p.Window]; !ok {
		return fmt.Errorf("%w: unknown window %d", ErrInvalidParams, int(p.Window))
	}
	if p.Window == WindowKaiser && (p.KaiserBeta <= 0 || math.IsNaN(p.KaiserBeta) || math.IsInf(p.KaiserBeta, 0)) {
		return fmt.Errorf("%w: kaiser beta must be positive, got %v", ErrInvalidParams, p.KaiserBeta)
	}
	return nil
}

// Attenuation returns the stopband attenuation in dB of the configured window.
func (p Params) Attenuation() float64 {
	return p.Window.attenuation(p.KaiserBeta)
}

// TapCount estimates the odd filter length needed to fall from passband to
// stopband within transitionWidth at the given sample rate.
//
//	N = floor(att * rate / (22 * transitionWidth)), rounded up to odd
//
// With the Hamming window this gives 43 taps for (10000 Hz, 550 Hz) and
// 49 taps for (2000 Hz, 100 Hz).
func (p Params) TapCount(rate, transitionWidth float64) int {
	estimate := p.Attenuation() * rate / (tapCountDivisor * transitionWidth)
	if estimate > MaxTapCount {
		return MaxTapCount + 1
	}

	n := int(estimate)
	if n%2 == 0 {
		n++
	}
	return max(n, MinTapCount)
}

// Design returns the tap count and realization for one stage. The filter of
// an interpolating stage runs at the interpolated rate.
// The length estimate depends on the transition band, not on the cutoff.
func (p Params) Design(rateIn float64, factor Factor, _, transitionWidth float64, tuning bool) (int, Realization) {
	designRate := rateIn * float64(max(factor.Interpolation, 1))
	realization := FFTOverlapFilter
	if tuning {
		realization = FrequencyTranslatingFIR
	}
	return p.TapCount(designRate, transitionWidth), realization
}
