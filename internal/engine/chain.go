package engine

import (
	"fmt"
	"slices"
)

// Chain runs stages in order, each feeding the next.
type Chain struct {
	stages []Stage
}

// NewChain creates a chain of the given stages. An empty chain passes
// samples through unchanged.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Process streams input through every stage.
func (c *Chain) Process(input []complex128) ([]complex128, error) {
	if len(c.stages) == 0 {
		return slices.Clone(input), nil
	}

	data := input
	for i, s := range c.stages {
		out, err := s.Process(data)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		data = out
	}
	return data, nil
}

// Flush drains the chain: each stage's tail is pushed through the stages
// after it.
func (c *Chain) Flush() ([]complex128, error) {
	var carry []complex128
	for i, s := range c.stages {
		out, err := s.Process(carry)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		tail, err := s.Flush()
		if err != nil {
			return nil, fmt.Errorf("stage %d flush: %w", i+1, err)
		}
		carry = append(out, tail...)
	}
	if carry == nil {
		carry = []complex128{}
	}
	return carry, nil
}

// Reset clears the state of every stage.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Ratio returns the overall output/input ratio.
func (c *Chain) Ratio() float64 {
	ratio := 1.0
	for _, s := range c.stages {
		ratio *= s.Ratio()
	}
	return ratio
}

// Latency returns the total delay in output samples of the chain.
func (c *Chain) Latency() int {
	var latency float64
	for i, s := range c.stages {
		after := 1.0
		for _, next := range c.stages[i+1:] {
			after *= next.Ratio()
		}
		latency += float64(s.Latency()) * after
	}
	return int(latency)
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Stage returns the i-th stage.
func (c *Chain) Stage(i int) Stage {
	return c.stages[i]
}
