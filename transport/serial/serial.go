// Package serial implements a transport backed by a serial port.
//
// A reader goroutine pumps received bytes into a byte queue while space
// remains, mirroring the fill loop of the device firmware this bridge
// emulates; the bridge drains the queue on sector reads. Writes go to
// the port directly.
package serial

import (
	"sync"
	"time"

	"github.com/goburrow/serial"

	"github.com/ardnew/softfloppy/fifo"
	"github.com/ardnew/softfloppy/pkg"
	"github.com/ardnew/softfloppy/transport"
)

// Config describes the serial port and receive queue.
type Config struct {
	Address  string        // Port device path, e.g. /dev/ttyUSB0
	BaudRate int           // Baud rate, e.g. 115200
	DataBits int           // Data bits: 5, 6, 7 or 8
	StopBits int           // Stop bits: 1 or 2
	Parity   string        // Parity: "N", "E" or "O"
	Timeout  time.Duration // Read timeout for the pump goroutine
	Capacity int           // Receive queue capacity; <1 selects fifo.DefaultCapacity
}

// Transport is a serial-port transport.
type Transport struct {
	port      serial.Port
	queue     *fifo.Buffer
	closeCh   chan struct{}
	closeOnce sync.Once
	done      sync.WaitGroup
}

// Open opens the configured serial port and starts the receive pump.
func Open(cfg Config) (*Transport, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 100 * time.Millisecond
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	t := &Transport{
		port:    port,
		queue:   fifo.New(cfg.Capacity),
		closeCh: make(chan struct{}),
	}

	t.done.Add(1)
	go t.pump()

	pkg.LogInfo(pkg.ComponentTransport, "serial transport open",
		"address", cfg.Address, "baud", cfg.BaudRate)
	return t, nil
}

// pump reads from the port into the receive queue until Close.
func (t *Transport) pump() {
	defer t.done.Done()

	buf := make([]byte, 256)
	for {
		select {
		case <-t.closeCh:
			return
		default:
		}

		n, err := t.port.Read(buf)
		if n > 0 {
			if free := t.queue.Free(); n > free {
				// Push would reject the whole batch; keep what fits.
				pkg.LogWarn(pkg.ComponentTransport, "receive queue full, truncating",
					"n", n, "free", free)
				n = free
			}
			if n > 0 {
				t.queue.Push(buf[:n])
			}
		}
		if err != nil {
			if err == serial.ErrTimeout {
				continue
			}
			select {
			case <-t.closeCh:
			default:
				pkg.LogError(pkg.ComponentTransport, "serial read failed", "error", err)
			}
			return
		}
	}
}

// Read drains up to len(buf) received bytes and reports how many were
// pending in total.
func (t *Transport) Read(buf []byte) (n, avail int) {
	avail = t.queue.Len()
	n = t.queue.Pop(buf)
	return n, avail
}

// Write sends data out the serial port. Write failures are logged and
// the undelivered bytes dropped.
func (t *Transport) Write(data []byte) {
	for len(data) > 0 {
		n, err := t.port.Write(data)
		if err != nil {
			pkg.LogError(pkg.ComponentTransport, "serial write failed",
				"error", err, "dropped", len(data)-n)
			return
		}
		data = data[n:]
	}
}

// Close stops the receive pump and closes the port.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closeCh)
		err = t.port.Close()
		t.done.Wait()
	})
	return err
}

// Compile-time interface check
var _ transport.Transport = (*Transport)(nil)
