package channelfilter

// Sample layout constants
const (
	iqChannels = 2 // I and Q (used by interleave functions)
)

// Measurement constants
const (
	powerDBMultiplier = 10.0 // Power ratio to decibels
)

// Bank constants
const (
	maxBankChannels = 256 // Maximum number of channels in a Bank
)
