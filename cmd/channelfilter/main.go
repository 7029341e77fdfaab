// Command channelfilter extracts a narrow channel from a complex baseband
// recording stored as a stereo I/Q WAV file.
//
// Usage:
//
//	channelfilter -rate 48000 -center -120000 -cutoff 5000 -tw 1000 in.wav out.wav
//	channelfilter -explain -in-rate 2400000 -rate 48000 -cutoff 5000 -tw 1000
//	channelfilter -response -in-rate 10000 -rate 1000 -cutoff 500 -tw 100
//
// With -explain or -response no files are processed; the stage plan for
// -in-rate is printed instead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	channelfilter "github.com/tphakala/go-channel-filter"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inRate := flag.Float64("in-rate", 0, "Input sample rate in Hz (only used with -explain or -response)")
	rate := flag.Float64("rate", channelfilter.RateAudio, "Output sample rate in Hz")
	cutoff := flag.Float64("cutoff", defaultCutoff, "Passband cutoff in Hz")
	tw := flag.Float64("tw", defaultTransitionWidth, "Transition width in Hz")
	center := flag.Float64("center", 0, "Channel center frequency offset in Hz")
	window := flag.String("window", defaultWindow, "Design window: hamming, hann, blackman, rectangular, kaiser")
	beta := flag.Float64("kaiser-beta", 0, "Kaiser window beta (0 selects the default)")
	explain := flag.Bool("explain", false, "Print the stage plan and exit")
	response := flag.Bool("response", false, "Print the designed response and exit")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	w, err := channelfilter.ParseWindow(*window)
	if err != nil {
		return err
	}
	config := channelfilter.Config{
		InputRate:       *inRate,
		OutputRate:      *rate,
		CutoffFreq:      *cutoff,
		TransitionWidth: *tw,
		CenterFreq:      *center,
		Window:          w,
		KaiserBeta:      *beta,
	}

	if *explain || *response {
		return printPlan(config, *response)
	}

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 48000 -center -120000 rtl.wav nfm.wav  # Extract an NFM channel\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -explain -in-rate 2400000 -rate 48000         # Show the stage plan\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Channel: %s Hz center, %s Hz cutoff, %s Hz transition",
			channelfilter.FormatRate(*center), channelfilter.FormatRate(*cutoff), channelfilter.FormatRate(*tw))
		log.Printf("Window: %s", w)
	}

	start := time.Now()
	stats, err := filterWAV(inputPath, outputPath, config, *verbose)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %s Hz (%d-bit I/Q)\n",
		stats.inputRate, channelfilter.FormatRate(stats.outputRate), stats.bitDepth)
	fmt.Printf("  %d samples -> %d samples\n", stats.inputSamples, stats.outputSamples)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.inputRate)/elapsed.Seconds())

	return nil
}

// printPlan prints the stage plan, and the designed response when asked.
func printPlan(config channelfilter.Config, response bool) error {
	f, err := channelfilter.New(&config)
	if err != nil {
		return err
	}

	fmt.Println(f.Explain())
	info := f.Info()
	fmt.Printf("Total taps: %d, work: %.0f MAC/s, latency: %v (%d samples), SIMD: %s\n",
		info.TotalTaps, info.Work, info.Latency, info.LatencySamples, info.SIMDType)

	if !response {
		return nil
	}
	fmt.Println()
	return writeResponse(os.Stdout, f)
}
