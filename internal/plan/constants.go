package plan

// Ratio decomposition constants
const (
	// MaxStageFactor bounds the factor of a single stage. A rate ratio is
	// realized exactly only when every prime in its reduced fraction is below
	// it; otherwise the integer part is rounded down to such a number and the
	// final resampler takes the rest.
	MaxStageFactor = 16

	// maxIntegerFactor bounds the total integer decimation or interpolation,
	// and the terms of the reduced rate ratio.
	maxIntegerFactor = 1 << 30

	// maxContinuedFractionTerms caps the continued fraction expansion.
	maxContinuedFractionTerms = 32
)

// Numerical tolerances
const (
	// Relative tolerance for treating two rates (or a ratio and its rational
	// approximation) as equal.
	rateTolerance = 1e-9

	// Fractional parts below this end the continued fraction expansion.
	fractionEpsilon = 1e-12
)

// Formatting
const (
	// Rates are printed with at most three decimals.
	rateDisplayScale = 1000

	halfDivisor = 2.0
)
