// Package console implements a transport attached to the process
// terminal. Standard input is placed in raw mode so every keystroke is
// delivered to the channel immediately; channel output goes to standard
// output. Intended for interactive bridge testing.
package console

import (
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/ardnew/softfloppy/fifo"
	"github.com/ardnew/softfloppy/pkg"
	"github.com/ardnew/softfloppy/transport"
)

// Console is a raw-mode stdio transport.
type Console struct {
	in        *os.File
	out       *os.File
	oldState  *term.State
	queue     *fifo.Buffer
	closeCh   chan struct{}
	closeOnce sync.Once
}

// Open places stdin in raw mode and starts the receive pump.
// The queue capacity follows the fifo package defaults when capacity
// is less than 1.
func Open(capacity int) (*Console, error) {
	c := &Console{
		in:      os.Stdin,
		out:     os.Stdout,
		queue:   fifo.New(capacity),
		closeCh: make(chan struct{}),
	}

	fd := int(c.in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		c.oldState = state
	}

	go c.pump()

	pkg.LogInfo(pkg.ComponentTransport, "console transport open",
		"raw", c.oldState != nil)
	return c, nil
}

// pump reads keystrokes into the receive queue until Close.
func (c *Console) pump() {
	buf := make([]byte, 64)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			c.queue.Push(buf[:n])
		}
		if err != nil {
			select {
			case <-c.closeCh:
			default:
				pkg.LogError(pkg.ComponentTransport, "console read failed", "error", err)
			}
			return
		}
	}
}

// Read drains up to len(buf) typed bytes and reports how many were
// pending in total.
func (c *Console) Read(buf []byte) (n, avail int) {
	avail = c.queue.Len()
	n = c.queue.Pop(buf)
	return n, avail
}

// Write prints data to standard output.
func (c *Console) Write(data []byte) {
	if _, err := c.out.Write(data); err != nil {
		pkg.LogError(pkg.ComponentTransport, "console write failed", "error", err)
	}
}

// Close restores the terminal state.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		if c.oldState != nil {
			err = term.Restore(int(c.in.Fd()), c.oldState)
		}
	})
	return err
}

// Compile-time interface check
var _ transport.Transport = (*Console)(nil)
