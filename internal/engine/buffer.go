package engine

// RingBuffer is a growable circular FIFO of complex samples. It queues
// input between block boundaries of the FFT stage.
//
// RingBuffer is not safe for concurrent use.
type RingBuffer struct {
	data     []complex128
	size     int
	readPos  int
	writePos int
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]complex128, max(capacity, 1))}
}

// Write appends samples, growing the buffer if needed.
func (b *RingBuffer) Write(samples []complex128) {
	if len(samples) == 0 {
		return
	}
	if b.size+len(samples) > len(b.data) {
		b.grow(b.size + len(samples))
	}

	// At most two copies: up to the end of the backing array, then the wrap.
	n := copy(b.data[b.writePos:], samples)
	copy(b.data, samples[n:])
	b.writePos = (b.writePos + len(samples)) % len(b.data)
	b.size += len(samples)
}

// ReadInto removes up to len(dst) samples into dst and returns the count.
func (b *RingBuffer) ReadInto(dst []complex128) int {
	n := min(len(dst), b.size)
	if n == 0 {
		return 0
	}

	first := copy(dst[:n], b.data[b.readPos:])
	copy(dst[first:n], b.data)
	b.readPos = (b.readPos + n) % len(b.data)
	b.size -= n
	return n
}

// Read removes and returns up to n samples.
func (b *RingBuffer) Read(n int) []complex128 {
	out := make([]complex128, min(max(n, 0), b.size))
	b.ReadInto(out)
	return out
}

// Available returns the number of samples available for reading.
func (b *RingBuffer) Available() int {
	return b.size
}

// Capacity returns the current buffer capacity.
func (b *RingBuffer) Capacity() int {
	return len(b.data)
}

// Clear removes all samples from the buffer.
func (b *RingBuffer) Clear() {
	b.size = 0
	b.readPos = 0
	b.writePos = 0
}

// grow increases the buffer capacity to at least minCapacity, keeping order.
func (b *RingBuffer) grow(minCapacity int) {
	newCapacity := len(b.data)
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}

	size := b.size
	newData := make([]complex128, newCapacity)
	b.ReadInto(newData[:size])

	b.data = newData
	b.readPos = 0
	b.size = size
	b.writePos = size
}
