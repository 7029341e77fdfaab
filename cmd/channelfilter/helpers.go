package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	channelfilter "github.com/tphakala/go-channel-filter"
)

// iqInput holds a validated I/Q recording.
type iqInput struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openIQInput opens a stereo WAV file holding I on the left channel and Q on
// the right.
func openIQInput(path string, verbose bool) (*iqInput, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if format.NumChannels != iqChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("expected %d channel I/Q file, got %d channels: %s",
			iqChannels, format.NumChannels, path)
	}
	bitDepth := int(decoder.BitDepth)
	if !supportedBitDepth(bitDepth) {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32): %s", bitDepth, path)
	}

	if verbose {
		log.Printf("Input format: %d Hz I/Q, %d-bit", format.SampleRate, bitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &iqInput{
		file:         inputFile,
		decoder:      decoder,
		rate:         format.SampleRate,
		bitDepth:     bitDepth,
		totalSamples: int64(duration.Seconds() * float64(format.SampleRate)),
		format:       format,
	}, nil
}

// Close closes the input file.
func (in *iqInput) Close() error {
	return in.file.Close()
}

// iqOutput writes complex samples as a stereo PCM WAV file.
type iqOutput struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	maxVal  float64
}

func createIQOutput(path string, sampleRate, bitDepth int) (*iqOutput, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &iqOutput{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, iqChannels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: iqChannels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		maxVal: maxValue(bitDepth),
	}, nil
}

// WriteSamples quantizes and writes complex samples.
func (o *iqOutput) WriteSamples(samples []complex128) error {
	if len(samples) == 0 {
		return nil
	}
	o.buf.Data = quantizeIQ(o.buf.Data[:0], samples, o.maxVal)
	return o.encoder.Write(o.buf)
}

// Close finalizes the WAV header and closes the file.
func (o *iqOutput) Close() error {
	if err := o.encoder.Close(); err != nil {
		_ = o.file.Close()
		return err
	}
	return o.file.Close()
}

// supportedBitDepth reports whether samples of this depth decode as signed
// integers. 8-bit WAV data is unsigned.
func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return true
	default:
		return false
	}
}

// maxValue returns the full-scale value for a PCM bit depth.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// normalizeIQ converts interleaved PCM frames into normalized complex samples,
// reusing dst.
func normalizeIQ(dst []complex128, data []int, maxVal float64) []complex128 {
	inv := 1.0 / maxVal
	frames := len(data) / iqChannels
	dst = dst[:0]
	for i := range frames {
		dst = append(dst, complex(float64(data[2*i])*inv, float64(data[2*i+1])*inv))
	}
	return dst
}

// quantizeIQ converts complex samples into interleaved PCM, clamping to full
// scale.
func quantizeIQ(dst []int, samples []complex128, maxVal float64) []int {
	for _, s := range samples {
		dst = append(dst,
			int(max(-1, min(1, real(s)))*maxVal),
			int(max(-1, min(1, imag(s)))*maxVal))
	}
	return dst
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{totalSamples: totalSamples, verbose: verbose}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}
	progress := int(currentSamples * percentScale / p.totalSamples)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// filterStats summarizes one filtering run.
type filterStats struct {
	inputRate     int
	outputRate    float64
	bitDepth      int
	inputSamples  int64
	outputSamples int64
}

// filterWAV streams an I/Q recording through a channel filter configured by
// config, whose InputRate is taken from the file.
func filterWAV(inputPath, outputPath string, config channelfilter.Config, verbose bool) (stats *filterStats, err error) {
	input, err := openIQInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	config.InputRate = float64(input.rate)
	f, err := channelfilter.New(&config)
	if err != nil {
		return nil, err
	}
	if verbose {
		log.Printf("Plan:\n%s", f.Explain())
	}

	outputRate := int(f.OutputRate())
	if float64(outputRate) != f.OutputRate() {
		return nil, fmt.Errorf("output rate %s is not a whole number of Hz", channelfilter.FormatRate(f.OutputRate()))
	}

	output, err := createIQOutput(outputPath, outputRate, input.bitDepth)
	if err != nil {
		return nil, err
	}
	// Close errors matter on the success path since they finalize the header.
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	stats = &filterStats{
		inputRate:  input.rate,
		outputRate: f.OutputRate(),
		bitDepth:   input.bitDepth,
	}
	progress := newProgressTracker(input.totalSamples, verbose)

	maxVal := maxValue(input.bitDepth)
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*iqChannels),
		Format: input.format,
	}
	samples := make([]complex128, 0, bufferSize)

	for {
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read I/Q data: %w", err)
		}
		if n == 0 {
			break
		}

		samples = normalizeIQ(samples, intBuffer.Data[:n], maxVal)
		stats.inputSamples += int64(len(samples))

		out, err := f.Process(samples)
		if err != nil {
			return nil, err
		}
		stats.outputSamples += int64(len(out))
		if err := output.WriteSamples(out); err != nil {
			return nil, fmt.Errorf("failed to write I/Q data: %w", err)
		}

		progress.reportIfNeeded(stats.inputSamples)
		intBuffer.Data = intBuffer.Data[:cap(intBuffer.Data)]
	}

	tail, err := f.Flush()
	if err != nil {
		return nil, err
	}
	stats.outputSamples += int64(len(tail))
	if err := output.WriteSamples(tail); err != nil {
		return nil, fmt.Errorf("failed to write flushed data: %w", err)
	}

	return stats, nil
}

// writeResponse prints the designed rejection at several offsets from the
// channel center.
func writeResponse(w io.Writer, f *channelfilter.Filter) error {
	for _, k := range responseOffsets {
		offset := k * f.CutoffFreq()
		total, stages, err := f.Response(offset)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%10s Hz: %8.2f dB", channelfilter.FormatRate(offset), total); err != nil {
			return err
		}
		for _, s := range stages {
			if _, err := fmt.Fprintf(w, "  [%d] %7.2f", s.Stage, s.Gain); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
