package design

import (
	"fmt"
	"math"
	"strings"
)

// Window selects the window applied to the ideal sinc response.
type Window int

const (
	// WindowHamming is the default: 53 dB stopband at moderate length.
	WindowHamming Window = iota

	// WindowHann trades stopband depth (44 dB) for shorter filters.
	WindowHann

	// WindowBlackman reaches 74 dB at roughly 1.4x the Hamming length.
	WindowBlackman

	// WindowRectangular is plain truncation (21 dB).
	WindowRectangular

	// WindowKaiser is parameterized by β; attenuation follows Kaiser's formula.
	WindowKaiser
)

var windowNames = map[Window]string{
	WindowHamming:     "hamming",
	WindowHann:        "hann",
	WindowBlackman:    "blackman",
	WindowRectangular: "rectangular",
	WindowKaiser:      "kaiser",
}

// String returns the lower-case window name.
func (w Window) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// ParseWindow maps a window name to its Window value.
func ParseWindow(name string) (Window, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for w, n := range windowNames {
		if n == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown window %q", ErrInvalidParams, name)
}

// attenuation returns the stopband attenuation in dB the window achieves.
func (w Window) attenuation(beta float64) float64 {
	switch w {
	case WindowHann:
		return hannAttenuation
	case WindowBlackman:
		return blackmanAttenuation
	case WindowRectangular:
		return rectangularAttenuation
	case WindowKaiser:
		return beta/kaiserBetaCoeff + kaiserBetaOffset
	default:
		return hammingAttenuation
	}
}

// coefficients returns n symmetric window samples.
func (w Window) coefficients(n int, beta float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}

	span := float64(n - 1)
	for i := range out {
		x := 2 * math.Pi * float64(i) / span
		switch w {
		case WindowHann:
			out[i] = hannA0 - hannA0*math.Cos(x)
		case WindowBlackman:
			out[i] = blackmanA0 - blackmanA1*math.Cos(x) + blackmanA2*math.Cos(2*x)
		case WindowRectangular:
			out[i] = 1
		case WindowKaiser:
			r := 2*float64(i)/span - 1
			out[i] = besselI0(beta*math.Sqrt(1-r*r)) / besselI0(beta)
		default:
			out[i] = hammingA0 - hammingA1*math.Cos(x)
		}
	}
	return out
}

// besselI0 evaluates the modified Bessel function I₀ by its power series.
func besselI0(x float64) float64 {
	half := x / 2
	sum, term := 1.0, 1.0
	for k := 1; k < besselMaxTerms; k++ {
		term *= (half / float64(k)) * (half / float64(k))
		sum += term
		if term < besselEpsilon*sum {
			break
		}
	}
	return sum
}
