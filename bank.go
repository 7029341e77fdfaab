package channelfilter

import (
	"fmt"
	"sync"
)

// Bank extracts several channels from one input stream, one Filter per
// channel. All channels share the input rate.
type Bank struct {
	filters  []*Filter
	parallel bool
}

// NewBank creates a filter per configuration. When parallel is true the
// channels are processed concurrently, one goroutine per channel.
func NewBank(parallel bool, configs ...*Config) (*Bank, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: bank needs at least one channel", ErrInvalidConfig)
	}
	if len(configs) > maxBankChannels {
		return nil, fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxBankChannels)
	}

	b := &Bank{
		filters:  make([]*Filter, 0, len(configs)),
		parallel: parallel,
	}
	for ch, config := range configs {
		if config == nil {
			return nil, fmt.Errorf("%w: channel %d: config is nil", ErrInvalidConfig, ch)
		}
		if config.InputRate != configs[0].InputRate {
			return nil, fmt.Errorf("%w: channel %d input rate %v differs from %v",
				ErrInvalidConfig, ch, config.InputRate, configs[0].InputRate)
		}

		f, err := New(config)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		b.filters = append(b.filters, f)
	}
	return b, nil
}

// Len returns the number of channels.
func (b *Bank) Len() int {
	return len(b.filters)
}

// Channel returns the filter of channel ch, for retuning or inspection.
func (b *Bank) Channel(ch int) *Filter {
	return b.filters[ch]
}

// InputRate returns the shared input rate.
func (b *Bank) InputRate() float64 {
	return b.filters[0].InputRate()
}

// Process feeds the same input to every channel and returns one output
// slice per channel.
func (b *Bank) Process(input []complex128) ([][]complex128, error) {
	return b.each(func(f *Filter) ([]complex128, error) {
		return f.Process(input)
	})
}

// Flush flushes every channel.
func (b *Bank) Flush() ([][]complex128, error) {
	return b.each((*Filter).Flush)
}

// Reset clears the stream state of every channel.
func (b *Bank) Reset() {
	for _, f := range b.filters {
		f.Reset()
	}
}

// Powers returns the mean power in dB of each output of a Bank, as used to
// compare channel occupancy.
func Powers(outputs [][]complex128) []float64 {
	powers := make([]float64, len(outputs))
	for ch, out := range outputs {
		powers[ch] = Power(out)
	}
	return powers
}

// each runs op on every channel, sequentially or concurrently.
func (b *Bank) each(op func(*Filter) ([]complex128, error)) ([][]complex128, error) {
	output := make([][]complex128, len(b.filters))

	// Sequential processing (default or when parallel disabled)
	if !b.parallel || len(b.filters) <= 1 {
		for ch, f := range b.filters {
			result, err := op(f)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
		}
		return output, nil
	}

	// Parallel processing: each goroutine writes only its own slot
	var wg sync.WaitGroup
	errChan := make(chan error, len(b.filters))

	for ch, f := range b.filters {
		wg.Add(1)
		go func() {
			defer wg.Done()

			result, err := op(f)
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", ch, err)
				return
			}
			output[ch] = result
		}()
	}

	wg.Wait()
	close(errChan)

	// Check for errors
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}
