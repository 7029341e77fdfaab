package channelfilter

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tphakala/go-channel-filter/internal/design"
	"github.com/tphakala/go-channel-filter/internal/engine"
	"github.com/tphakala/go-channel-filter/internal/plan"
	"github.com/tphakala/simd/cpu"
)

// Config holds channel filter configuration. All frequencies are in Hz.
type Config struct {
	// InputRate is the sample rate of the incoming complex baseband.
	InputRate float64

	// OutputRate is the desired sample rate of the filtered channel.
	OutputRate float64

	// CutoffFreq is the half-amplitude edge of the passband.
	// It may not exceed half the lower of the two rates.
	CutoffFreq float64

	// TransitionWidth is the width of the band between passband and stopband.
	TransitionWidth float64

	// CenterFreq is the offset of the channel within the input band.
	// The first stage translates it to 0 Hz.
	CenterFreq float64

	// Window selects the filter design window. The zero value is Hamming.
	Window Window

	// KaiserBeta is only used with WindowKaiser. Zero selects a default.
	KaiserBeta float64
}

// Window selects the window used to design every stage's taps.
type Window = design.Window

// Design windows.
const (
	WindowHamming     = design.WindowHamming
	WindowHann        = design.WindowHann
	WindowBlackman    = design.WindowBlackman
	WindowRectangular = design.WindowRectangular
	WindowKaiser      = design.WindowKaiser
)

// ParseWindow parses a window name such as "hamming" or "kaiser".
func ParseWindow(name string) (Window, error) {
	return design.ParseWindow(name)
}

// FormatRate renders a frequency the way Explain does.
func FormatRate(hz float64) string {
	return plan.FormatRate(hz)
}

// Plan is the immutable stage decomposition of a filter.
type Plan = plan.Plan

// StageSpec describes one integer stage of a Plan.
type StageSpec = plan.StageSpec

// Realization identifies how a stage is executed.
type Realization = design.Realization

// Stage realizations.
const (
	FrequencyTranslatingFIR = design.FrequencyTranslatingFIR
	FFTOverlapFilter        = design.FFTOverlapFilter
)

// InvalidCutoffError reports a cutoff above the Nyquist limit together with
// the rate that limits it.
type InvalidCutoffError = plan.InvalidCutoffError

// Common errors returned by the channel filter.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid channel filter configuration")

	// ErrInvalidCutoff indicates a cutoff above the Nyquist limit.
	// Such errors also match ErrInvalidConfig.
	ErrInvalidCutoff = plan.ErrInvalidCutoff

	// ErrLengthMismatch indicates I and Q slices of different lengths.
	ErrLengthMismatch = errors.New("I and Q lengths differ")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.request().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) request() plan.Request {
	return plan.Request{
		InputRate:       c.InputRate,
		OutputRate:      c.OutputRate,
		CutoffFreq:      c.CutoffFreq,
		TransitionWidth: c.TransitionWidth,
		CenterFreq:      c.CenterFreq,
	}
}

func (c *Config) params() design.Params {
	p := design.DefaultParams()
	p.Window = c.Window
	if c.KaiserBeta != 0 {
		p.KaiserBeta = c.KaiserBeta
	}
	return p
}

// state is everything a rebuild replaces at once.
type state struct {
	request plan.Request
	plan    *plan.Plan
	chain   *engine.Chain
}

// Filter is a multistage channel filter: it translates a channel to 0 Hz,
// low-pass filters it and converts it to the output rate through a cascade
// of cheap integer stages and an optional fractional resampler.
//
// Accessors, Explain and Plan never block and always observe one complete
// plan. Setters and the streaming methods are serialized; a setter that
// changes the plan restarts the stream with fresh filter state.
type Filter struct {
	params design.Params

	mu    sync.Mutex // serializes rebuilds and streaming
	state atomic.Pointer[state]
}

// New creates a channel filter with the specified configuration.
func New(config *Config) (*Filter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	f := &Filter{params: config.params()}
	s, err := buildState(config.request(), f.params)
	if err != nil {
		return nil, err
	}
	f.state.Store(s)
	return f, nil
}

// InputRate returns the input sample rate.
func (f *Filter) InputRate() float64 {
	return f.state.Load().request.InputRate
}

// OutputRate returns the output sample rate.
func (f *Filter) OutputRate() float64 {
	return f.state.Load().request.OutputRate
}

// CutoffFreq returns the passband cutoff.
func (f *Filter) CutoffFreq() float64 {
	return f.state.Load().request.CutoffFreq
}

// SetCutoffFreq changes the passband cutoff and rebuilds the plan.
// On error the previous plan stays in effect.
func (f *Filter) SetCutoffFreq(hz float64) error {
	return f.update(func(r *plan.Request) { r.CutoffFreq = hz })
}

// TransitionWidth returns the transition band width.
func (f *Filter) TransitionWidth() float64 {
	return f.state.Load().request.TransitionWidth
}

// SetTransitionWidth changes the transition band width and rebuilds the plan.
// On error the previous plan stays in effect.
func (f *Filter) SetTransitionWidth(hz float64) error {
	return f.update(func(r *plan.Request) { r.TransitionWidth = hz })
}

// CenterFreq returns the frequency translated to 0 Hz.
func (f *Filter) CenterFreq() float64 {
	return f.state.Load().request.CenterFreq
}

// SetCenterFreq retunes the filter and rebuilds the plan.
// On error the previous plan stays in effect.
func (f *Filter) SetCenterFreq(hz float64) error {
	return f.update(func(r *plan.Request) { r.CenterFreq = hz })
}

// update builds a complete new state from a modified request and publishes it.
func (f *Filter) update(modify func(*plan.Request)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	req := f.state.Load().request
	modify(&req)
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s, err := buildState(req, f.params)
	if err != nil {
		return err
	}
	f.state.Store(s)
	return nil
}

// Plan returns the current stage plan. The plan is immutable.
func (f *Filter) Plan() *Plan {
	return f.state.Load().plan
}

// Explain returns a human-readable description of the current plan.
func (f *Filter) Explain() string {
	return f.state.Load().plan.Explain()
}

// Ratio returns OutputRate / InputRate.
func (f *Filter) Ratio() float64 {
	return f.state.Load().request.Ratio()
}

// Info summarizes the current plan.
type Info struct {
	// Stages is the number of integer stages.
	Stages int

	// TotalTaps is the summed filter length of all stages.
	TotalTaps int

	// Work is the summed taps times output rate of all stages.
	Work float64

	// HasFinalResampler reports whether a fractional resampler follows the stages.
	HasFinalResampler bool

	// Latency is the group delay of the filter stages.
	Latency time.Duration

	// LatencySamples is the processing latency in output samples.
	LatencySamples int

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// Info returns information about the current plan.
func (f *Filter) Info() Info {
	s := f.state.Load()
	return Info{
		Stages:            len(s.plan.Stages),
		TotalTaps:         s.plan.TotalTaps(),
		Work:              s.plan.Work(),
		HasFinalResampler: s.plan.HasFinalResampler(),
		Latency:           s.plan.GroupDelay(),
		LatencySamples:    s.chain.Latency(),
		SIMDType:          cpu.Info(),
	}
}

// Process filters a block of complex input samples and returns the output
// produced so far. Output may lag input by the stages' block sizes until
// Flush is called.
func (f *Filter) Process(input []complex128) ([]complex128, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Load().chain.Process(input)
}

// ProcessIQ is Process for separate in-phase and quadrature slices.
func (f *Filter) ProcessIQ(i, q []float64) (iOut, qOut []float64, err error) {
	input, err := ToComplex(i, q)
	if err != nil {
		return nil, nil, err
	}
	output, err := f.Process(input)
	if err != nil {
		return nil, nil, err
	}
	iOut, qOut = FromComplex(output)
	return iOut, qOut, nil
}

// Flush returns the samples still held by the stages and resets the stream.
// Call it once no more input will be provided.
func (f *Filter) Flush() ([]complex128, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	chain := f.state.Load().chain
	out, err := chain.Flush()
	chain.Reset()
	return out, err
}

// Reset clears all stream state without changing the plan.
func (f *Filter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Load().chain.Reset()
}
