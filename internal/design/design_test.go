package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-channel-filter/internal/testutil"
)

const (
	// Worked example: 10000 Hz -> 2000 Hz -> 1000 Hz, cutoff 500, transition 100
	exampleRate1      = 10000.0
	exampleRate2      = 2000.0
	exampleRelaxedTW  = 550.0
	exampleUserTW     = 100.0
	exampleStage1Taps = 43
	exampleStage2Taps = 49
	exampleUserCutoff = 500.0

	stopbandFloorDB  = -40.0
	passbandRippleDB = 0.2
	dcGainTolerance  = 1e-9
)

func TestTapCount_ReferenceValues(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, exampleStage1Taps, p.TapCount(exampleRate1, exampleRelaxedTW))
	assert.Equal(t, exampleStage2Taps, p.TapCount(exampleRate2, exampleUserTW))
}

func TestTapCount_Monotonic(t *testing.T) {
	p := DefaultParams()

	t.Run("narrower_transition", func(t *testing.T) {
		prev := 0
		for _, tw := range []float64{2000, 1000, 500, 250, 100, 50} {
			n := p.TapCount(48000, tw)
			assert.GreaterOrEqual(t, n, prev, "tw=%v", tw)
			prev = n
		}
	})

	t.Run("higher_rate", func(t *testing.T) {
		prev := 0
		for _, rate := range []float64{8000, 16000, 48000, 96000, 1e6, 32e6} {
			n := p.TapCount(rate, 1000)
			assert.GreaterOrEqual(t, n, prev, "rate=%v", rate)
			prev = n
		}
	})
}

func TestTapCount_Odd(t *testing.T) {
	for w := range windowNames {
		p := Params{Window: w, KaiserBeta: defaultKaiserBeta}
		for _, tw := range []float64{10, 33, 100, 999, 5000} {
			n := p.TapCount(44100, tw)
			assert.Equal(t, 1, n%2, "%s tw=%v gave %d taps", w, tw, n)
			assert.GreaterOrEqual(t, n, MinTapCount)
		}
	}
}

func TestTapCount_WindowOrdering(t *testing.T) {
	const rate, tw = 48000.0, 500.0

	hann := Params{Window: WindowHann}.TapCount(rate, tw)
	hamming := Params{Window: WindowHamming}.TapCount(rate, tw)
	blackman := Params{Window: WindowBlackman}.TapCount(rate, tw)

	assert.Less(t, hann, hamming)
	assert.Less(t, hamming, blackman)
}

func TestDesign_Realization(t *testing.T) {
	p := DefaultParams()

	n, r := p.Design(exampleRate1, Factor{Interpolation: 1, Decimation: 5}, 725, exampleRelaxedTW, true)
	assert.Equal(t, exampleStage1Taps, n)
	assert.Equal(t, FrequencyTranslatingFIR, r)

	n, r = p.Design(exampleRate2, Factor{Interpolation: 1, Decimation: 2}, exampleUserCutoff, exampleUserTW, false)
	assert.Equal(t, exampleStage2Taps, n)
	assert.Equal(t, FFTOverlapFilter, r)
}

func TestDesign_InterpolatingRunsAtOutputRate(t *testing.T) {
	p := DefaultParams()

	up, _ := p.Design(8000, Factor{Interpolation: 5, Decimation: 1}, 3000, 1000, false)
	assert.Equal(t, p.TapCount(40000, 1000), up)
}

func TestFactor(t *testing.T) {
	dec := Factor{Interpolation: 1, Decimation: 5}
	assert.True(t, dec.Decimating())
	assert.False(t, dec.Interpolating())
	assert.InDelta(t, 5.0, dec.Value(), 0)

	interp := Factor{Interpolation: 4, Decimation: 1}
	assert.True(t, interp.Interpolating())
	assert.InDelta(t, 0.25, interp.Value(), 0)

	assert.False(t, Unity.Decimating())
	assert.False(t, Unity.Interpolating())
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	err := Params{Window: Window(42)}.Validate()
	require.ErrorIs(t, err, ErrInvalidParams)

	err = Params{Window: WindowKaiser}.Validate()
	require.ErrorIs(t, err, ErrInvalidParams)
	assert.Contains(t, err.Error(), "kaiser beta")
}

func TestParseWindow(t *testing.T) {
	for w, name := range windowNames {
		got, err := ParseWindow(" " + name + " ")
		require.NoError(t, err)
		assert.Equal(t, w, got)
		assert.Equal(t, name, w.String())
	}

	_, err := ParseWindow("triangle")
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestLowPass_Shape(t *testing.T) {
	windows := []Params{
		{Window: WindowHamming},
		{Window: WindowHann},
		{Window: WindowBlackman},
		{Window: WindowKaiser, KaiserBeta: 8},
	}

	for _, p := range windows {
		t.Run(p.Window.String(), func(t *testing.T) {
			n := p.TapCount(exampleRate2, exampleUserTW)
			taps, err := p.LowPass(n, 1, exampleRate2, exampleUserCutoff)
			require.NoError(t, err)

			testutil.AssertOddLength(t, taps)
			testutil.AssertSymmetric(t, taps, testutil.DefaultTolerance)
			testutil.AssertDCGain(t, taps, 1, dcGainTolerance)
			testutil.AssertCenterIsMax(t, taps)
			testutil.AssertNoNaNOrInf(t, taps)
		})
	}
}

func TestLowPass_FrequencyResponse(t *testing.T) {
	p := DefaultParams()
	n := p.TapCount(exampleRate2, exampleUserTW)
	taps, err := p.LowPass(n, 1, exampleRate2, exampleUserCutoff)
	require.NoError(t, err)

	// Passband well below the transition band stays flat.
	for _, f := range []float64{0, 100, 200, 300} {
		assert.InDelta(t, 0, MagnitudeDB(taps, f, exampleRate2), passbandRippleDB, "f=%v", f)
	}

	// Half amplitude at the cutoff itself.
	assert.InDelta(t, -6.02, MagnitudeDB(taps, exampleUserCutoff, exampleRate2), 1.0)

	// Well past the transition band the window's attenuation applies.
	for _, f := range []float64{620, 700, 800, 999} {
		assert.Less(t, MagnitudeDB(taps, f, exampleRate2), stopbandFloorDB, "f=%v", f)
	}
}

func TestLowPass_InterpolationGain(t *testing.T) {
	p := DefaultParams()
	taps, err := p.LowPass(65, 5, 40000, 3000)
	require.NoError(t, err)
	testutil.AssertDCGain(t, taps, 5, dcGainTolerance)
}

func TestLowPass_Errors(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name    string
		numTaps int
		gain    float64
		rate    float64
		cutoff  float64
	}{
		{"even_taps", 10, 1, 1000, 100},
		{"zero_taps", 0, 1, 1000, 100},
		{"cutoff_above_nyquist", 11, 1, 1000, 600},
		{"negative_cutoff", 11, 1, 1000, -1},
		{"zero_rate", 11, 1, 0, 100},
		{"zero_gain", 11, 0, 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.LowPass(tt.numTaps, tt.gain, tt.rate, tt.cutoff)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestLowPass_SingleTap(t *testing.T) {
	taps, err := DefaultParams().LowPass(1, 1, 1000, 100)
	require.NoError(t, err)
	require.Len(t, taps, 1)
	assert.InDelta(t, 1.0, taps[0], dcGainTolerance)
}

func TestBesselI0(t *testing.T) {
	// Reference values of I₀
	assert.InDelta(t, 1.0, besselI0(0), 1e-15)
	assert.InDelta(t, 1.2660658777520082, besselI0(1), 1e-12)
	assert.InDelta(t, 27.239871823604442, besselI0(5), 1e-9)
	assert.InDelta(t, 2815.716628466254, besselI0(10), 1e-6)
}
