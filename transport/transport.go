package transport

// Transport moves channel payload bytes between the bridge and a peer.
//
// Implementations must be safe for use from the single goroutine that
// serializes sector I/O; they may use internal goroutines to pump the
// underlying stream.
type Transport interface {
	// Read copies up to len(buf) pending bytes into buf. It returns the
	// number of bytes copied and the total number that were pending at
	// the time of the call, which may exceed the number copied. The
	// surplus lets the caller learn that more data is waiting than fit
	// the buffer.
	Read(buf []byte) (n, avail int)

	// Write queues data for delivery to the peer. Data that cannot be
	// delivered is dropped and logged.
	Write(data []byte)

	// Close releases any resources held by the transport.
	Close() error
}
