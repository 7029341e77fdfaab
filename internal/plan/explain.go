package plan

import (
	"fmt"
	"strings"
)

// Explain renders the plan for operators and tests, for example:
//
//	2 stages from 10000 to 1000
//	  decimate by 5 using  43 taps (86000) in FrequencyTranslatingFIR
//	  decimate by 2 using  49 taps (49000) in FFTOverlapFilter
//	No final resampler stage.
//
// The parenthetical is taps times the stage output rate.
func (p *Plan) Explain() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d stages from %s to %s", len(p.Stages), FormatRate(p.InputRate), FormatRate(p.OutputRate))
	for _, s := range p.Stages {
		verb, by := "decimate", s.Factor.Decimation
		if s.Factor.Interpolating() {
			verb, by = "interpolate", s.Factor.Interpolation
		}
		fmt.Fprintf(&b, "\n  %s by %d using %3d taps (%s) in %s",
			verb, by, s.TapCount, FormatRate(s.Work()), s.Realization)
	}

	if p.Resampler == nil {
		b.WriteString("\nNo final resampler stage.")
	} else {
		fmt.Fprintf(&b, "\nResampler from %s to %s.", FormatRate(p.Resampler.RateIn), FormatRate(p.Resampler.RateOut))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p *Plan) String() string {
	return p.Explain()
}
