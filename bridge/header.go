package bridge

import (
	"bytes"
	"encoding/binary"
)

// Frame header layout:
//
//	offset 0: direction marker (4 bytes)
//	offset 4: reserved (2 bytes, zero)
//	offset 6: payload length, big-endian (2 bytes)
//	offset 8: reserved (4 bytes, zero)
//
// The same 12-byte structure is written into the sector tag area during
// handshaking and into the leading bytes of a data block once a channel
// is active.

// PutHeader writes a reply header with the given payload length into
// the first HeaderLen bytes of buf. buf must be at least HeaderLen
// bytes long.
func PutHeader(buf []byte, length uint16) {
	_ = buf[HeaderLen-1]
	copy(buf[0:4], ReplyMarker[:])
	buf[4] = 0
	buf[5] = 0
	binary.BigEndian.PutUint16(buf[6:8], length)
	buf[8] = 0
	buf[9] = 0
	buf[10] = 0
	buf[11] = 0
}

// ParseHeader decodes a request header from the first HeaderLen bytes
// of buf. It returns the declared payload length and whether the header
// is valid: the first four bytes must equal the request marker. The
// reserved bytes are not validated, leaving room for future use.
func ParseHeader(buf []byte) (length uint16, ok bool) {
	if len(buf) < HeaderLen {
		return 0, false
	}
	if !bytes.Equal(buf[0:4], RequestMarker[:]) {
		return 0, false
	}
	return binary.BigEndian.Uint16(buf[6:8]), true
}
