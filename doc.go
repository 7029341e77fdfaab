// Package channelfilter extracts a narrow channel from complex baseband and
// brings it to a new sample rate through a cascade of cheap stages.
//
// Filtering a 3 kHz voice channel out of a 32 MHz stream with one filter
// would need a filter running at 32 MHz with a transition band a few
// hundred hertz wide. Instead the rate change is factored into small integer
// stages (decimate by 5, 5, 5, then by 2 four times for 32 MHz to 16 kHz),
// each with a filter only as sharp as its own output rate demands. Only the
// last stage carries the user's transition width. Every stage factor is a
// prime below 16. Ratios that reduce to no such fraction keep the nearest
// smaller integer factor and leave the remainder to a final cubic resampler,
// after at least one low-pass stage.
//
// # Features
//
//   - Rational rate factoring with prime-sized interpolation and decimation stages
//   - Per-stage tap counts from transition width and window attenuation
//   - Frequency translation folded into the first stage
//   - Overlap-save FFT filtering using gonum and SIMD complex multiply via
//     github.com/tphakala/simd
//   - Lock-free plan reads while cutoff, transition width or center are retuned
//   - A text explanation of every plan
//   - A [Bank] of channels sharing one input, processed in parallel
//
// # Quick Start
//
//	f, err := channelfilter.New(&channelfilter.Config{
//	    InputRate:       2400000,
//	    OutputRate:      48000,
//	    CutoffFreq:      5000,
//	    TransitionWidth: 1000,
//	    CenterFreq:      -120000,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.Explain())
//
//	for block := range iqBlocks {
//	    out, err := f.Process(block)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    demodulate(out)
//	}
//	tail, _ := f.Flush()
//
// # Plans
//
// [Filter.Explain] prints the plan, for example for 10 kHz to 1 kHz with a
// 500 Hz cutoff and 100 Hz transition width:
//
//	2 stages from 10000 to 1000
//	  decimate by 5 using  43 taps (86000) in FrequencyTranslatingFIR
//	  decimate by 2 using  49 taps (49000) in FFTOverlapFilter
//	No final resampler stage.
//
// The cutoff may not exceed half the lower of the two rates; such
// configurations fail with an [*InvalidCutoffError].
//
// # Channel Banks
//
// [NewBank] builds one filter per channel over a shared input rate. Each
// channel may be retuned on its own through [Bank.Channel], and [Powers]
// compares channel occupancy.
//
// # Thread Safety
//
// Accessors, [Filter.Plan] and [Filter.Explain] may be called from any
// goroutine and always see one complete plan. Setters rebuild the plan and
// swap it in atomically. Process, Flush and Reset are serialized with the
// setters.
package channelfilter
