package channelfilter

import (
	"fmt"
	"math"
)

// Common sample rates for convenience functions.
const (
	// RateTelephony is the narrowband voice sample rate.
	RateTelephony = 8000

	// RateVoIP is the wideband voice sample rate.
	RateVoIP = 16000

	// RateAudio is the usual sound card rate for demodulated audio.
	RateAudio = 48000

	// RateWFM is a common rate for broadcast FM baseband.
	RateWFM = 200000

	// RateRTLSDR is a common RTL-SDR dongle rate.
	RateRTLSDR = 2400000
)

// Number is any numeric type a sample rate may be given as.
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Rate converts a rate given as any numeric type to Hz as float64, so that
// integer and floating-point rates plan identically.
func Rate[T Number](hz T) float64 {
	return float64(hz)
}

// NewForRates creates a channel filter centered at 0 Hz. Rates may be
// integers or floats.
func NewForRates[T Number](inputRate, outputRate T, cutoffFreq, transitionWidth float64) (*Filter, error) {
	return New(&Config{
		InputRate:       Rate(inputRate),
		OutputRate:      Rate(outputRate),
		CutoffFreq:      cutoffFreq,
		TransitionWidth: transitionWidth,
	})
}

// Explain describes the plan for a configuration without building any stages.
func Explain(config *Config) (string, error) {
	if config == nil {
		return "", fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return "", err
	}
	p, err := buildPlan(config)
	if err != nil {
		return "", err
	}
	return p.Explain(), nil
}

// FilterComplex filters a complete signal in one call, including the tail
// that streaming would only release on Flush.
func FilterComplex(input []complex128, config *Config) ([]complex128, error) {
	f, err := New(config)
	if err != nil {
		return nil, err
	}

	output, err := f.Process(input)
	if err != nil {
		return nil, err
	}

	flushed, err := f.Flush()
	if err != nil {
		return nil, err
	}

	return append(output, flushed...), nil
}

// FilterIQ is FilterComplex for separate I and Q slices.
func FilterIQ(i, q []float64, config *Config) (iOut, qOut []float64, err error) {
	input, err := ToComplex(i, q)
	if err != nil {
		return nil, nil, err
	}
	output, err := FilterComplex(input, config)
	if err != nil {
		return nil, nil, err
	}
	iOut, qOut = FromComplex(output)
	return iOut, qOut, nil
}

// ToComplex combines I and Q slices of equal length into complex samples.
func ToComplex(i, q []float64) ([]complex128, error) {
	if len(i) != len(q) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(i), len(q))
	}
	out := make([]complex128, len(i))
	for n := range i {
		out[n] = complex(i[n], q[n])
	}
	return out, nil
}

// FromComplex splits complex samples into I and Q slices.
func FromComplex(samples []complex128) (i, q []float64) {
	i = make([]float64, len(samples))
	q = make([]float64, len(samples))
	for n, s := range samples {
		i[n] = real(s)
		q[n] = imag(s)
	}
	return i, q
}

// InterleaveIQ converts complex samples to interleaved I/Q pairs.
func InterleaveIQ(samples []complex128) []float64 {
	out := make([]float64, iqChannels*len(samples))
	for n, s := range samples {
		out[iqChannels*n] = real(s)
		out[iqChannels*n+1] = imag(s)
	}
	return out
}

// DeinterleaveIQ converts interleaved I/Q pairs to complex samples.
// A trailing unpaired value is dropped.
func DeinterleaveIQ(interleaved []float64) []complex128 {
	out := make([]complex128, len(interleaved)/iqChannels)
	for n := range out {
		out[n] = complex(interleaved[iqChannels*n], interleaved[iqChannels*n+1])
	}
	return out
}

// Power returns the mean power of samples in dB relative to full scale.
func Power(samples []complex128) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range samples {
		sum += real(s)*real(s) + imag(s)*imag(s)
	}
	return powerDBMultiplier * math.Log10(sum/float64(len(samples)))
}
