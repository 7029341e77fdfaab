package channelfilter

import (
	"fmt"

	"github.com/tphakala/go-channel-filter/internal/design"
	"github.com/tphakala/go-channel-filter/internal/engine"
	"github.com/tphakala/go-channel-filter/internal/plan"
)

// createStage designs the taps for one planned stage and wraps them in the
// engine stage matching its realization.
//
// Parameters:
//   - spec: the planned stage (rates, factor, local band, tap count)
//   - params: window design constants
//   - centerFreq: translated to 0 Hz if the stage carries tuning
func createStage(spec plan.StageSpec, params design.Params, centerFreq float64) (engine.Stage, error) {
	taps, err := params.LowPass(spec.TapCount, spec.Gain(), spec.DesignRate(), spec.Cutoff)
	if err != nil {
		return nil, err
	}

	interpolation, decimation := spec.Factor.Interpolation, spec.Factor.Decimation

	switch spec.Realization {
	case design.FrequencyTranslatingFIR:
		if !spec.CarriesTuning {
			centerFreq = 0
		}
		stage, err := engine.NewFIRStage(taps, interpolation, decimation, centerFreq, spec.RateIn)
		if err != nil {
			return nil, err
		}
		return stage, nil
	case design.FFTOverlapFilter:
		stage, err := engine.NewFFTStage(taps, interpolation, decimation)
		if err != nil {
			return nil, err
		}
		return stage, nil
	default:
		return nil, fmt.Errorf("%w: unknown realization %s", ErrInvalidConfig, spec.Realization)
	}
}

// createResampler creates the cubic stage for the final fractional rate change.
func createResampler(spec plan.ResamplerSpec) (engine.Stage, error) {
	stage, err := engine.NewCubicStage(spec.Ratio())
	if err != nil {
		return nil, err
	}
	return stage, nil
}
