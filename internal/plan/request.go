package plan

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidRequest indicates a malformed request (a programmer error).
	ErrInvalidRequest = errors.New("invalid rate conversion request")

	// ErrInvalidCutoff indicates a cutoff above the Nyquist limit of the
	// narrowest rate in the plan.
	ErrInvalidCutoff = errors.New("cutoff frequency exceeds the Nyquist limit")
)

// InvalidCutoffError reports the requested cutoff and the rate limiting it.
type InvalidCutoffError struct {
	Cutoff float64
	Rate   float64
}

func (e *InvalidCutoffError) Error() string {
	return fmt.Sprintf("cutoff frequency %s Hz exceeds the Nyquist limit of %s Hz for rate %s Hz",
		FormatRate(e.Cutoff), FormatRate(e.Rate/halfDivisor), FormatRate(e.Rate))
}

func (e *InvalidCutoffError) Unwrap() error {
	return ErrInvalidCutoff
}

// Request is the immutable input of a plan. All values are in Hz.
type Request struct {
	InputRate       float64
	OutputRate      float64
	CutoffFreq      float64
	TransitionWidth float64

	// CenterFreq is the offset the tuning stage translates to zero.
	CenterFreq float64
}

// Ratio returns OutputRate / InputRate.
func (r Request) Ratio() float64 {
	return r.OutputRate / r.InputRate
}

// LimitingRate returns the narrowest rate the signal passes through.
func (r Request) LimitingRate() float64 {
	return min(r.InputRate, r.OutputRate)
}

// Validate rejects malformed values and cutoffs above the Nyquist limit.
func (r Request) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"input rate", r.InputRate},
		{"output rate", r.OutputRate},
		{"cutoff frequency", r.CutoffFreq},
		{"transition width", r.TransitionWidth},
	}
	for _, p := range positive {
		if !isFinite(p.value) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidRequest, p.name, p.value)
		}
	}
	if !isFinite(r.CenterFreq) {
		return fmt.Errorf("%w: center frequency must be finite, got %v", ErrInvalidRequest, r.CenterFreq)
	}

	if limit := r.LimitingRate(); r.CutoffFreq > limit/halfDivisor {
		return &InvalidCutoffError{Cutoff: r.CutoffFreq, Rate: limit}
	}
	return nil
}

// FormatRate renders a frequency without trailing zeros and with at most
// three decimals.
func FormatRate(hz float64) string {
	rounded := math.Round(hz*rateDisplayScale) / rateDisplayScale
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sameRate(a, b float64) bool {
	return math.Abs(a-b) <= rateTolerance*math.Max(math.Abs(a), math.Abs(b))
}
