package plan

import (
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-channel-filter/internal/design"
)

// integerRatio returns the integer interpolation and decimation realized by
// the stage chain. A ratio that reduces to up/down with only small primes is
// realized exactly; anything else keeps the largest such integer not above
// the dominant direction's integer part and leaves the remainder to the final
// resampler.
func integerRatio(inputRate, outputRate float64) (up, down int, err error) {
	if sameRate(inputRate, outputRate) {
		return 1, 1, nil
	}

	ratio := outputRate / inputRate
	if num, den, ok := rationalize(ratio, maxIntegerFactor); ok &&
		isSmooth(num, MaxStageFactor) && isSmooth(den, MaxStageFactor) {
		return num, den, nil
	}

	whole := math.Floor(inputRate / outputRate * (1 + rateTolerance))
	if ratio > 1 {
		whole = math.Floor(ratio * (1 + rateTolerance))
	}
	if whole > maxIntegerFactor {
		return 0, 0, fmt.Errorf("%w: rate ratio %s:%s is too extreme",
			ErrInvalidRequest, FormatRate(inputRate), FormatRate(outputRate))
	}

	n := smoothFloor(int(whole), MaxStageFactor)
	if ratio > 1 {
		return n, 1, nil
	}
	return 1, n, nil
}

// isSmooth reports whether every prime factor of n is below bound.
func isSmooth(n, bound int) bool {
	if n < 1 {
		return false
	}
	for p := 2; p < bound && n > 1; p++ {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}

// smoothFloor returns the largest n' <= n whose prime factors are all below
// bound. 1 always qualifies.
func smoothFloor(n, bound int) int {
	for n > 1 && !isSmooth(n, bound) {
		n--
	}
	return max(n, 1)
}

// rationalize finds num/den == v with both terms at most maxTerm using the
// continued fraction expansion of v. The first convergent within the rate
// tolerance wins.
func rationalize(v float64, maxTerm int) (num, den int, ok bool) {
	// Convergent recurrences h(n) = a*h(n-1) + h(n-2), likewise k.
	hPrev, h := 0, 1
	kPrev, k := 1, 0

	x := v
	for range maxContinuedFractionTerms {
		a := math.Floor(x)
		if a > float64(maxTerm) {
			return 0, 0, false
		}

		ai := int(a)
		hPrev, h = h, ai*h+hPrev
		kPrev, k = k, ai*k+kPrev
		if h > maxTerm || k > maxTerm {
			return 0, 0, false
		}
		if h > 0 && math.Abs(float64(h)/float64(k)-v) <= rateTolerance*v {
			return h, k, true
		}

		frac := x - a
		if frac < fractionEpsilon {
			break
		}
		x = 1 / frac
	}
	return 0, 0, false
}

// primeFactors returns the prime factorization of n in ascending order.
func primeFactors(n int) []int {
	var factors []int
	for p := 2; p*p <= n; p++ {
		for n%p == 0 {
			factors = append(factors, p)
			n /= p
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// stageFactors splits up/down into single-prime stages, each below
// MaxStageFactor when up and down come from integerRatio. Interpolation runs
// first, smallest factor first; decimation follows, largest factor first,
// so the heaviest reduction happens at the highest rate.
func stageFactors(up, down int) []design.Factor {
	ups := primeFactors(up)
	downs := primeFactors(down)
	slices.Reverse(downs)

	factors := make([]design.Factor, 0, len(ups)+len(downs))
	for _, u := range ups {
		factors = append(factors, design.Factor{Interpolation: u, Decimation: 1})
	}
	for _, d := range downs {
		factors = append(factors, design.Factor{Interpolation: 1, Decimation: d})
	}
	return factors
}
