package channelfilter

import (
	"fmt"

	"github.com/tphakala/go-channel-filter/internal/design"
	"github.com/tphakala/go-channel-filter/internal/engine"
	"github.com/tphakala/go-channel-filter/internal/plan"
)

// buildPlan plans a validated configuration without realizing it.
func buildPlan(config *Config) (*plan.Plan, error) {
	p, err := plan.Build(config.request(), config.params())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return p, nil
}

// buildState plans the request and realizes the plan as a stage chain.
func buildState(req plan.Request, params design.Params) (*state, error) {
	p, err := plan.Build(req, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	chain, err := buildChain(p, params, req.CenterFreq)
	if err != nil {
		return nil, err
	}

	return &state{request: req, plan: p, chain: chain}, nil
}

// buildChain creates one engine stage per plan stage plus the final
// resampler when the plan needs one.
func buildChain(p *plan.Plan, params design.Params, centerFreq float64) (*engine.Chain, error) {
	stages := make([]engine.Stage, 0, len(p.Stages)+1)

	for i, spec := range p.Stages {
		stage, err := createStage(spec, params, centerFreq)
		if err != nil {
			return nil, fmt.Errorf("failed to create stage %d (%s): %w", i+1, spec.Realization, err)
		}
		stages = append(stages, stage)
	}

	if p.Resampler != nil {
		stage, err := createResampler(*p.Resampler)
		if err != nil {
			return nil, fmt.Errorf("failed to create resampler: %w", err)
		}
		stages = append(stages, stage)
	}

	return engine.NewChain(stages...), nil
}
