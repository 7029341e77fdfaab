package channelfilter

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bankInputRate = 240000.0

// bankConfigs returns three voice channels spread across the input band.
func bankConfigs() []*Config {
	centers := []float64{-60000, 0, 45000}
	configs := make([]*Config, len(centers))
	for i, c := range centers {
		configs[i] = &Config{
			InputRate:       bankInputRate,
			OutputRate:      RateVoIP,
			CutoffFreq:      5000,
			TransitionWidth: 2000,
			CenterFreq:      c,
		}
	}
	return configs
}

// carrier returns a unit tone at freq sampled at the bank input rate.
func carrier(n int, freq float64) []complex128 {
	s := make([]complex128, n)
	for i := range s {
		s[i] = cmplx.Rect(1, 2*math.Pi*freq*float64(i)/bankInputRate)
	}
	return s
}

// TestBankParallelMatchesSequential tests that parallel processing produces
// the same output as sequential processing.
func TestBankParallelMatchesSequential(t *testing.T) {
	input := carrier(24000, 45000+1000)

	seq, err := NewBank(false, bankConfigs()...)
	require.NoError(t, err)
	par, err := NewBank(true, bankConfigs()...)
	require.NoError(t, err)

	outSeq, err := seq.Process(input)
	require.NoError(t, err)
	outPar, err := par.Process(input)
	require.NoError(t, err)
	assert.Equal(t, outSeq, outPar)

	tailSeq, err := seq.Flush()
	require.NoError(t, err)
	tailPar, err := par.Flush()
	require.NoError(t, err)
	assert.Equal(t, tailSeq, tailPar)
}

func TestBankSelectsOccupiedChannel(t *testing.T) {
	b, err := NewBank(true, bankConfigs()...)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	assert.InDelta(t, bankInputRate, b.InputRate(), 0)

	outputs, err := b.Process(carrier(48000, -60000+800))
	require.NoError(t, err)
	require.Len(t, outputs, 3)

	const settle = 100
	for ch := range outputs {
		require.Greater(t, len(outputs[ch]), settle)
		outputs[ch] = outputs[ch][settle:]
	}

	powers := Powers(outputs)
	assert.InDelta(t, 0, powers[0], 0.5, "occupied channel")
	assert.Less(t, powers[1], -40.0, "empty channel at 0 Hz")
	assert.Less(t, powers[2], -40.0, "empty channel at 45 kHz")
}

func TestBankRetuneOneChannel(t *testing.T) {
	b, err := NewBank(false, bankConfigs()...)
	require.NoError(t, err)

	require.NoError(t, b.Channel(1).SetCenterFreq(30000))
	assert.InDelta(t, 30000.0, b.Channel(1).CenterFreq(), 0)
	assert.InDelta(t, -60000.0, b.Channel(0).CenterFreq(), 0)

	b.Reset()
	outputs, err := b.Process(carrier(2400, 30000))
	require.NoError(t, err)
	assert.Len(t, outputs, 3)
}

func TestNewBank_Errors(t *testing.T) {
	_, err := NewBank(false)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewBank(false, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	configs := bankConfigs()
	configs[2].InputRate = 2 * bankInputRate
	_, err = NewBank(true, configs...)
	require.ErrorIs(t, err, ErrInvalidConfig)

	configs = bankConfigs()
	configs[1].CutoffFreq = 9000
	_, err = NewBank(true, configs...)
	require.ErrorIs(t, err, ErrInvalidCutoff)
	assert.Contains(t, err.Error(), "channel 1")

	tooMany := make([]*Config, maxBankChannels+1)
	for i := range tooMany {
		tooMany[i] = bankConfigs()[0]
	}
	_, err = NewBank(true, tooMany...)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
