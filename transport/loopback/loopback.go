// Package loopback implements a self-test transport that echoes writes
// back to subsequent reads through a byte queue. It lets a host exercise
// the full handshake and framing path without any peer attached.
package loopback

import (
	"github.com/ardnew/softfloppy/fifo"
	"github.com/ardnew/softfloppy/pkg"
	"github.com/ardnew/softfloppy/transport"
)

// Loopback is a transport whose reads drain what its writes enqueued.
type Loopback struct {
	queue *fifo.Buffer
}

// New creates a loopback transport with the given queue capacity.
// A capacity less than 1 selects [fifo.DefaultCapacity].
func New(capacity int) *Loopback {
	return &Loopback{queue: fifo.New(capacity)}
}

// Read drains up to len(buf) queued bytes and reports how many were
// pending in total.
func (l *Loopback) Read(buf []byte) (n, avail int) {
	avail = l.queue.Len()
	n = l.queue.Pop(buf)
	pkg.LogDebug(pkg.ComponentTransport, "loopback read",
		"n", n, "avail", avail, "data", pkg.HexPreview(buf[:n]))
	return n, avail
}

// Write enqueues data for the next read.
func (l *Loopback) Write(data []byte) {
	pkg.LogDebug(pkg.ComponentTransport, "loopback write",
		"len", len(data), "data", pkg.HexPreview(data))
	l.queue.Push(data)
}

// Close discards any queued bytes.
func (l *Loopback) Close() error {
	l.queue.Reset()
	return nil
}

// Compile-time interface check
var _ transport.Transport = (*Loopback)(nil)
