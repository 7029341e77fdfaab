// Package plan decomposes a rate conversion into a cascade of integer
// interpolation and decimation stages, each with its own filter design,
// plus an optional fractional resampler for the remainder.
package plan

import (
	"fmt"
	"time"

	"github.com/tphakala/go-channel-filter/internal/design"
)

// StageSpec describes one integer stage of a plan.
type StageSpec struct {
	RateIn  float64
	RateOut float64
	Factor  design.Factor

	// Cutoff and TransitionWidth are the stage's local design band in Hz.
	Cutoff          float64
	TransitionWidth float64

	TapCount    int
	Realization design.Realization

	// CarriesTuning marks the one stage that translates CenterFreq to zero.
	CarriesTuning bool
}

// DesignRate returns the rate the stage's filter runs at: the input rate
// when decimating, the interpolated rate otherwise.
func (s StageSpec) DesignRate() float64 {
	return s.RateIn * float64(s.Factor.Interpolation)
}

// Gain returns the passband gain the stage's taps are designed for.
func (s StageSpec) Gain() float64 {
	return float64(s.Factor.Interpolation)
}

// Work returns taps times output rate, a rough cost figure.
func (s StageSpec) Work() float64 {
	return float64(s.TapCount) * s.RateOut
}

// ResamplerSpec is the fractional rate change left after the integer stages.
type ResamplerSpec struct {
	RateIn  float64
	RateOut float64
}

// Ratio returns RateOut / RateIn.
func (r ResamplerSpec) Ratio() float64 {
	return r.RateOut / r.RateIn
}

// Plan is the immutable result of Build.
type Plan struct {
	InputRate  float64
	OutputRate float64
	Stages     []StageSpec

	// Resampler is nil when the integer stages already reach OutputRate.
	Resampler *ResamplerSpec
}

// HasFinalResampler reports whether a fractional resampler follows the stages.
func (p *Plan) HasFinalResampler() bool {
	return p.Resampler != nil
}

// StageOutputRate returns the rate after the last integer stage.
func (p *Plan) StageOutputRate() float64 {
	if len(p.Stages) == 0 {
		return p.InputRate
	}
	return p.Stages[len(p.Stages)-1].RateOut
}

// TotalTaps returns the summed filter length of all stages.
func (p *Plan) TotalTaps() int {
	total := 0
	for _, s := range p.Stages {
		total += s.TapCount
	}
	return total
}

// Work returns the summed per-stage work estimate.
func (p *Plan) Work() float64 {
	var total float64
	for _, s := range p.Stages {
		total += s.Work()
	}
	return total
}

// GroupDelay returns the delay through the linear-phase stages.
func (p *Plan) GroupDelay() time.Duration {
	var seconds float64
	for _, s := range p.Stages {
		seconds += float64(s.TapCount-1) / halfDivisor / s.DesignRate()
	}
	return time.Duration(seconds * float64(time.Second))
}

// Build plans the stage cascade for req using the given design constants.
func Build(req Request, params design.Params) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	up, down, err := integerRatio(req.InputRate, req.OutputRate)
	if err != nil {
		return nil, err
	}

	factors := stageFactors(up, down)
	if len(factors) == 0 && (req.CenterFreq != 0 || !sameRate(req.InputRate, req.OutputRate)) {
		// The band limit and the translation still need a stage to carry
		// them when only the resampler changes the rate.
		factors = append(factors, design.Unity)
	}

	p := &Plan{
		InputRate:  req.InputRate,
		OutputRate: req.OutputRate,
		Stages:     make([]StageSpec, 0, len(factors)),
	}

	// Rates derive from the cumulative product so long chains do not drift.
	cumUp, cumDown := 1, 1
	rate := req.InputRate
	last := len(factors) - 1

	for i, f := range factors {
		cumUp *= f.Interpolation
		cumDown *= f.Decimation
		next := req.InputRate * float64(cumUp) / float64(cumDown)

		cutoff, tw := stageBand(req, rate, next, i == last)
		taps, realization := params.Design(rate, f, cutoff, tw, i == 0)
		if taps > design.MaxTapCount {
			return nil, fmt.Errorf("%w: stage %d (%s Hz to %s Hz) needs more than %d taps for a %s Hz transition width",
				ErrInvalidRequest, i+1, FormatRate(rate), FormatRate(next), design.MaxTapCount, FormatRate(tw))
		}

		p.Stages = append(p.Stages, StageSpec{
			RateIn:          rate,
			RateOut:         next,
			Factor:          f,
			Cutoff:          cutoff,
			TransitionWidth: tw,
			TapCount:        taps,
			Realization:     realization,
			CarriesTuning:   i == 0,
		})
		rate = next
	}

	if !sameRate(rate, req.OutputRate) {
		p.Resampler = &ResamplerSpec{RateIn: rate, RateOut: req.OutputRate}
	}

	return p, nil
}

// stageBand returns the design band for a stage. The last stage shapes the
// final passband. Earlier stages only have to keep what would alias into it
// out of their output, so their transition band stretches from the inner
// passband edge to the stage's Nyquist limit.
func stageBand(req Request, rateIn, rateOut float64, last bool) (cutoff, transitionWidth float64) {
	if last {
		return req.CutoffFreq, req.TransitionWidth
	}

	inner := max(req.CutoffFreq-req.TransitionWidth/halfDivisor, 0)
	limit := min(rateIn, rateOut) / halfDivisor
	return (inner + limit) / halfDivisor, limit - inner
}
