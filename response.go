package channelfilter

import (
	"github.com/tphakala/go-channel-filter/internal/design"
)

// StageResponse is the designed magnitude response of one stage at one
// frequency offset from the channel center.
type StageResponse struct {
	Stage int
	Gain  float64 // dB, relative to the stage's DC gain
}

// Response returns the magnitude in dB the stage filters apply to a tone at
// offset Hz from the center frequency, together with the per-stage
// contributions. Folding by decimation is not modeled, so the figure is the
// rejection of the filters themselves.
func (f *Filter) Response(offset float64) (float64, []StageResponse, error) {
	p := f.Plan()

	var total float64
	stages := make([]StageResponse, 0, len(p.Stages))
	for i, spec := range p.Stages {
		taps, err := f.params.LowPass(spec.TapCount, spec.Gain(), spec.DesignRate(), spec.Cutoff)
		if err != nil {
			return 0, nil, err
		}
		gain := design.MagnitudeDB(taps, offset, spec.DesignRate())
		stages = append(stages, StageResponse{Stage: i + 1, Gain: gain})
		total += gain
	}
	return total, stages, nil
}
