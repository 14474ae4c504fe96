package pkg

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrBadHeader, "unrecognized frame header"},
		{ErrOverflow, "queue overflow"},
		{ErrOutOfRange, "sector out of range"},
		{ErrReadOnly, "storage is read-only"},
		{ErrShortBuffer, "buffer too small"},
		{ErrClosed, "transport closed"},
		{ErrInvalidParameter, "invalid parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorsIsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("open image: %w", ErrOutOfRange)
	if !errors.Is(wrapped, ErrOutOfRange) {
		t.Error("errors.Is failed to match wrapped sentinel")
	}
	if errors.Is(wrapped, ErrReadOnly) {
		t.Error("errors.Is matched unrelated sentinel")
	}
}
