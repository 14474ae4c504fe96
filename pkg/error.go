package pkg

import "errors"

// Bridge and storage errors.
var (
	// ErrBadHeader indicates a frame header that failed to decode.
	ErrBadHeader = errors.New("unrecognized frame header")

	// ErrOverflow indicates a FIFO push that exceeded capacity.
	ErrOverflow = errors.New("queue overflow")

	// ErrOutOfRange indicates a sector address beyond the end of the image.
	ErrOutOfRange = errors.New("sector out of range")

	// ErrReadOnly indicates a write to read-only storage.
	ErrReadOnly = errors.New("storage is read-only")

	// ErrShortBuffer indicates the provided buffer is too small.
	ErrShortBuffer = errors.New("buffer too small")

	// ErrClosed indicates an operation on a closed transport.
	ErrClosed = errors.New("transport closed")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")
)
