// Package main provides softfloppyd, a harness that exercises the
// covert floppy-serial channel end to end.
//
// The daemon builds the configured transport and emulated drives, then
// plays the host side of the protocol against its own interception
// layer: the knock sequence, the magic-sector write, and the confirming
// read. Once the channel is active it sends a probe frame and polls for
// replies, printing whatever comes back.
//
// With the loopback transport this is a complete self-test: the probe
// must echo back intact and the process exits zero only when it does.
// With the serial or console transports the probe goes out the real
// stream and the poll loop keeps printing peer data until interrupted.
//
// Usage:
//
//	softfloppyd [options] <config.yaml>
//
// Options:
//
//	-v     Enable verbose (debug) logging, overriding the config
//	-json  Use JSON log format, overriding the config
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardnew/softfloppy/bridge"
	"github.com/ardnew/softfloppy/config"
	"github.com/ardnew/softfloppy/disk"
	"github.com/ardnew/softfloppy/pkg"
	"github.com/ardnew/softfloppy/transport"
	"github.com/ardnew/softfloppy/transport/console"
	"github.com/ardnew/softfloppy/transport/loopback"
	"github.com/ardnew/softfloppy/transport/serial"
)

// probeDrive and probeSector are the endpoint the emulated host selects
// during its handshake.
const (
	probeDrive  = 1
	probeSector = 333
)

func main() {
	verbose := flag.Bool("v", false, "enable verbose (debug) logging")
	jsonLog := flag.Bool("json", false, "use JSON log format")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: softfloppyd [options] <config.yaml>")
		os.Exit(1)
	}

	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "softfloppyd:", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "softfloppyd: invalid config:", err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	setupLogging(cfg, *verbose, *jsonLog)

	tr, err := buildTransport(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "softfloppyd: transport:", err)
		os.Exit(1)
	}
	defer tr.Close()

	ic := disk.NewInterceptor(bridge.New(tr))
	if err := attachDrives(ic, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "softfloppyd:", err)
		os.Exit(1)
	}
	defer ic.Sync()

	if err := handshake(ic); err != nil {
		fmt.Fprintln(os.Stderr, "softfloppyd: handshake:", err)
		os.Exit(1)
	}
	fmt.Println("channel established on drive", probeDrive, "sector", probeSector)

	if cfg.Transport.Kind == config.KindLoopback {
		if err := selfTest(ic); err != nil {
			fmt.Fprintln(os.Stderr, "softfloppyd: self-test:", err)
			os.Exit(1)
		}
		fmt.Println("self-test passed")
		return
	}

	probe(ic)
}

func setupLogging(cfg *config.Config, verbose, jsonLog bool) {
	switch cfg.Log.Level {
	case "debug":
		pkg.SetLogLevel(slog.LevelDebug)
	case "info":
		pkg.SetLogLevel(slog.LevelInfo)
	case "warn":
		pkg.SetLogLevel(slog.LevelWarn)
	case "error":
		pkg.SetLogLevel(slog.LevelError)
	}
	if verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	if cfg.Log.Format == "json" || jsonLog {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}
}

func buildTransport(cfg *config.Config) (transport.Transport, error) {
	switch cfg.Transport.Kind {
	case config.KindSerial:
		s := cfg.Transport.Serial
		return serial.Open(serial.Config{
			Address:  s.Device,
			BaudRate: s.BaudRate,
			DataBits: s.DataBits,
			StopBits: s.StopBits,
			Parity:   s.Parity,
			Timeout:  time.Duration(s.TimeoutMs) * time.Millisecond,
			Capacity: cfg.Transport.Capacity,
		})
	case config.KindConsole:
		return console.Open(cfg.Transport.Capacity)
	default:
		return loopback.New(cfg.Transport.Capacity), nil
	}
}

func attachDrives(ic *disk.Interceptor, cfg *config.Config) error {
	drives := cfg.Drives
	if len(drives) == 0 {
		// A drive to knock on is always needed; default to a blank
		// 400K floppy.
		drives = []config.DriveConfig{{Drive: probeDrive, Sectors: 800}}
	}

	for _, d := range drives {
		var store disk.Storage
		if d.Image != "" {
			img, err := disk.NewFileImage(d.Image, d.ReadOnly)
			if err != nil {
				return fmt.Errorf("drive %d: %w", d.Drive, err)
			}
			store = img
		} else {
			img := disk.NewMemoryImage(d.Sectors)
			img.SetReadOnly(d.ReadOnly)
			store = img
		}
		ic.Attach(d.Drive, store)
	}
	return nil
}

// handshake plays the host side of the channel negotiation.
func handshake(ic *disk.Interceptor) error {
	tag := make([]byte, disk.TagSize)
	blk := make([]byte, disk.SectorSize)

	for _, sector := range bridge.KnockSequence {
		if err := ic.ReadSector(probeDrive, sector, tag, blk); err != nil {
			return fmt.Errorf("knock read of sector %d: %w", sector, err)
		}
	}
	if _, ok := replyLength(tag); !ok {
		return fmt.Errorf("no presence announcement after knock: tags % x", tag)
	}

	magic := make([]byte, disk.SectorSize)
	for i := range magic {
		magic[i] = bridge.RequestMarker[i&3]
	}
	if err := ic.WriteSector(probeDrive, probeSector, make([]byte, disk.TagSize), magic); err != nil {
		return fmt.Errorf("magic write: %w", err)
	}

	if err := ic.ReadSector(probeDrive, probeSector, tag, blk); err != nil {
		return fmt.Errorf("confirming read: %w", err)
	}
	if got := binary.BigEndian.Uint32(blk[4:8]); got != probeSector {
		return fmt.Errorf("device confirmed sector %d, want %d", got, probeSector)
	}
	return nil
}

// channelWrite frames data into one magic-sector write.
func channelWrite(ic *disk.Interceptor, data []byte) error {
	if len(data) > bridge.MaxPayload {
		data = data[:bridge.MaxPayload]
	}

	tag := make([]byte, disk.TagSize)
	bridge.PutHeader(tag, uint16(len(data)))
	copy(tag[0:4], bridge.RequestMarker[:])

	blk := make([]byte, disk.SectorSize)
	copy(blk, data)
	return ic.WriteSector(probeDrive, probeSector, tag, blk)
}

// channelRead performs one magic-sector read, returning the payload
// received and the total the device reports pending.
func channelRead(ic *disk.Interceptor) (payload []byte, avail int, err error) {
	tag := make([]byte, disk.TagSize)
	blk := make([]byte, disk.SectorSize)
	if err := ic.ReadSector(probeDrive, probeSector, tag, blk); err != nil {
		return nil, 0, err
	}

	avail = int(binary.BigEndian.Uint16(blk[6:8]))
	n := avail
	if n > bridge.MaxPayload {
		n = bridge.MaxPayload
	}
	return blk[bridge.HeaderLen : bridge.HeaderLen+n], avail, nil
}

// selfTest pushes a probe through the loopback and expects it back.
func selfTest(ic *disk.Interceptor) error {
	const probeText = "softfloppy loopback probe"

	if err := channelWrite(ic, []byte(probeText)); err != nil {
		return err
	}
	payload, avail, err := channelRead(ic)
	if err != nil {
		return err
	}
	if string(payload) != probeText {
		return fmt.Errorf("probe came back as %q (%d pending), want %q",
			payload, avail, probeText)
	}
	return nil
}

// probe sends one probe frame and then keeps polling the channel,
// printing peer data until interrupted.
func probe(ic *disk.Interceptor) {
	if err := channelWrite(ic, []byte("softfloppy probe\r\n")); err != nil {
		fmt.Fprintln(os.Stderr, "softfloppyd: probe write:", err)
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-sig:
			fmt.Println("interrupted")
			return
		case <-tick.C:
			payload, avail, err := channelRead(ic)
			if err != nil {
				fmt.Fprintln(os.Stderr, "softfloppyd: probe read:", err)
				return
			}
			if len(payload) > 0 {
				fmt.Printf("recv %d bytes (%d pending): %s\n",
					len(payload), avail, pkg.HexPreview(payload))
			}
		}
	}
}

// replyLength decodes a device-to-host header from the tag area.
func replyLength(tag []byte) (uint16, bool) {
	if len(tag) < bridge.HeaderLen {
		return 0, false
	}
	for i, c := range bridge.ReplyMarker {
		if tag[i] != c {
			return 0, false
		}
	}
	return binary.BigEndian.Uint16(tag[6:8]), true
}
