package design

// Maximum stopband attenuation (dB) reachable by each fixed window when used
// for windowed-sinc design. The tap-count estimate scales with these.
const (
	hammingAttenuation     = 53.0
	hannAttenuation        = 44.0
	blackmanAttenuation    = 74.0
	rectangularAttenuation = 21.0
)

// Kaiser window constants (Kaiser & Schafer)
const (
	kaiserBetaCoeff   = 0.1102 // β = 0.1102 * (att - 8.7)
	kaiserBetaOffset  = 8.7
	defaultKaiserBeta = 7.0

	// Series truncation for the modified Bessel function I₀
	besselEpsilon  = 1e-21
	besselMaxTerms = 500
)

// Tap-count estimate: N ≈ att * fs / (22 * Δf)
const (
	tapCountDivisor = 22.0

	// MinTapCount and MaxTapCount bound a single stage's filter length.
	MinTapCount = 1
	MaxTapCount = 1 << 20
)

// Window coefficients
const (
	hammingA0  = 0.54
	hammingA1  = 0.46
	hannA0     = 0.5
	blackmanA0 = 0.42
	blackmanA1 = 0.5
	blackmanA2 = 0.08
)

// Numerical thresholds
const (
	gainEpsilon  = 1e-12
	minMagnitude = 1e-12
	dbMultiplier = 20.0
)
