package main

import (
	"bytes"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	channelfilter "github.com/tphakala/go-channel-filter"
)

// writeTone writes n frames of a complex tone as a 16-bit I/Q WAV file.
func writeTone(t *testing.T, path string, rate int, freq, amplitude float64, n int) {
	t.Helper()

	samples := make([]complex128, n)
	for i := range samples {
		samples[i] = cmplx.Rect(amplitude, 2*math.Pi*freq*float64(i)/float64(rate))
	}

	out, err := createIQOutput(path, rate, bitsPerSample16)
	require.NoError(t, err)
	require.NoError(t, out.WriteSamples(samples))
	require.NoError(t, out.Close())
}

func TestOpenIQInput_FileNotFound(t *testing.T) {
	_, err := openIQInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenIQInput_InvalidWAV(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := openIQInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenIQInput_Mono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 48000, bitsPerSample16, 1, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 48000},
		Data:           make([]int, 100),
		SourceBitDepth: bitsPerSample16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	_, err = openIQInput(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 channel")
}

func TestOpenIQInput_EightBit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u8.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	const bitsPerSample8 = 8
	enc := wav.NewEncoder(f, 48000, bitsPerSample8, iqChannels, wavFormatPCM)
	data := make([]int, 200)
	for i := range data {
		data[i] = 128
	}
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: iqChannels, SampleRate: 48000},
		Data:           data,
		SourceBitDepth: bitsPerSample8,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	_, err = openIQInput(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bit depth 8")

	assert.False(t, supportedBitDepth(bitsPerSample8))
	assert.True(t, supportedBitDepth(bitsPerSample24))
}

func TestCreateIQOutput_InvalidDirectory(t *testing.T) {
	_, err := createIQOutput("/nonexistent/dir/output.wav", 48000, bitsPerSample16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestNormalizeQuantizeIQ(t *testing.T) {
	data := []int{32767, -32767, 0, 16384, 7}
	samples := normalizeIQ(nil, data, maxInt16)
	require.Len(t, samples, 2, "odd trailing value is dropped")
	assert.InDelta(t, 1.0, real(samples[0]), 1e-12)
	assert.InDelta(t, -1.0, imag(samples[0]), 1e-12)
	assert.InDelta(t, 0.5, imag(samples[1]), 1e-4)

	quantized := quantizeIQ(nil, []complex128{complex(2, -2), complex(0.5, 0)}, maxInt16)
	assert.Equal(t, []int{32767, -32767, 16383, 0}, quantized)

	assert.InDelta(t, maxInt24, maxValue(bitsPerSample24), 0)
	assert.InDelta(t, maxInt32, maxValue(bitsPerSample32), 0)
	assert.InDelta(t, maxInt16, maxValue(8), 0)
}

func TestFilterWAV(t *testing.T) {
	const (
		inputRate = 48000
		frames    = 48000
		center    = 6000.0
	)

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.wav")
	outputPath := filepath.Join(dir, "out.wav")
	writeTone(t, inputPath, inputRate, center+500, 0.5, frames)

	config := channelfilter.Config{
		OutputRate:      8000,
		CutoffFreq:      3000,
		TransitionWidth: 500,
		CenterFreq:      center,
	}
	stats, err := filterWAV(inputPath, outputPath, config, false)
	require.NoError(t, err)
	assert.Equal(t, inputRate, stats.inputRate)
	assert.Equal(t, int64(frames), stats.inputSamples)
	assert.InDelta(t, frames/6, stats.outputSamples, 1)

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 8000, dec.Format().SampleRate)
	assert.Equal(t, iqChannels, dec.Format().NumChannels)

	out := normalizeIQ(nil, buf.Data, maxInt16)
	assert.Len(t, out, int(stats.outputSamples))

	// The tone sits in the passband after translation.
	const settle = 200
	require.Greater(t, len(out), 2*settle)
	assert.InDelta(t, -6.02, channelfilter.Power(out[settle:len(out)-settle]), 0.5)
}

func TestFilterWAV_InvalidCutoff(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.wav")
	writeTone(t, inputPath, 48000, 0, 0.5, 1000)

	config := channelfilter.Config{OutputRate: 8000, CutoffFreq: 6000, TransitionWidth: 500}
	_, err := filterWAV(inputPath, filepath.Join(dir, "out.wav"), config, false)
	require.ErrorIs(t, err, channelfilter.ErrInvalidCutoff)
}

func TestWriteResponse(t *testing.T) {
	f, err := channelfilter.New(&channelfilter.Config{
		InputRate: 10000, OutputRate: 1000, CutoffFreq: 500, TransitionWidth: 100,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeResponse(&buf, f))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(responseOffsets))
	assert.Contains(t, lines[0], "0 Hz")
	assert.Contains(t, lines[0], "[2]")
}
