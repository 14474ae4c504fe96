package fifo

import (
	"sync"

	"github.com/ardnew/softfloppy/pkg"
)

// DefaultCapacity is the queue capacity used when none is specified.
const DefaultCapacity = 2000

// Buffer is a fixed-capacity FIFO of bytes.
//
// Bytes are stored in a contiguous slice with the front at index zero;
// Pop shifts the remainder forward. Capacity is fixed at construction.
type Buffer struct {
	mutex sync.Mutex
	data  []byte
	used  int
}

// New creates a Buffer with the given capacity.
// A capacity less than 1 selects [DefaultCapacity].
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.used
}

// Free returns the remaining space in bytes.
func (b *Buffer) Free() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.data) - b.used
}

// Cap returns the fixed capacity in bytes.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Push appends data to the back of the queue. If the whole batch does
// not fit, nothing is inserted, a diagnostic is logged, and Push
// returns false.
func (b *Buffer) Push(data []byte) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.used+len(data) > len(b.data) {
		pkg.LogWarn(pkg.ComponentFIFO, "queue overflow, batch dropped",
			"len", len(data),
			"used", b.used,
			"cap", len(b.data))
		return false
	}

	copy(b.data[b.used:], data)
	b.used += len(data)
	return true
}

// Pop copies up to len(buf) bytes from the front of the queue into buf
// and returns the number of bytes copied.
func (b *Buffer) Pop(buf []byte) int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	n := b.used
	if n > len(buf) {
		n = len(buf)
	}

	copy(buf, b.data[:n])
	copy(b.data, b.data[n:b.used])
	b.used -= n
	return n
}

// Reset discards all buffered bytes.
func (b *Buffer) Reset() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.used = 0
}
