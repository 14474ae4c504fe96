// Package transport defines the byte-stream interface behind the bridge.
//
// Once a channel is established, the bridge exchanges framed sector
// transfers with the host while the [Transport] carries the raw
// application bytes. Implementations decide where those bytes go:
//
//   - [github.com/ardnew/softfloppy/transport/loopback] echoes writes
//     back to reads through a byte queue (self-test mode)
//   - [github.com/ardnew/softfloppy/transport/serial] attaches a real
//     serial port
//   - [github.com/ardnew/softfloppy/transport/console] attaches the
//     process terminal in raw mode
//
// The desired implementation is injected at bridge construction; there
// is no compile-time backend selection.
//
// # Error Handling
//
// The bridge layer has no error surface toward the host, so Transport
// reads and writes do not return errors. Implementations log I/O
// failures and degrade to returning no data.
package transport
