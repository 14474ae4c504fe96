package bridge

import (
	"math"

	"github.com/ardnew/softfloppy/pkg"
)

// channelIO services one read or write of the channel endpoint,
// converting between the framed block format and the raw byte stream of
// the transport.
func (b *Bridge) channelIO(tag, blk []byte, mode Mode) bool {
	switch mode {
	case ModeRead:
		// Fill the payload area with whatever the transport has
		// pending. The header declares the total pending count, which
		// may exceed the payload that fit: the host learns more data is
		// waiting and issues another read.
		n, avail := b.transport.Read(blk[HeaderLen:BlockSize])
		if avail > math.MaxUint16 {
			avail = math.MaxUint16
		}
		PutHeader(blk, uint16(avail))
		pkg.LogDebug(pkg.ComponentBridge, "channel read",
			"n", n, "avail", avail, "data", pkg.HexPreview(blk[HeaderLen:HeaderLen+n]))
		return true

	case ModeWrite:
		// The frame header rides in the tag area when the host driver
		// can set tags, otherwise in the leading bytes of the block.
		length, ok := ParseHeader(tag)
		payload := blk[:BlockSize]
		max := BlockSize
		if !ok {
			if length, ok = ParseHeader(blk); !ok {
				pkg.LogWarn(pkg.ComponentBridge, "channel write without a recognizable header")
				return false
			}
			payload = blk[HeaderLen:BlockSize]
			max = MaxPayload
		}
		if int(length) > max {
			pkg.LogWarn(pkg.ComponentBridge, "invalid write length, clamping",
				"len", length, "max", max)
			length = uint16(max)
		}
		pkg.LogDebug(pkg.ComponentBridge, "channel write",
			"len", length, "data", pkg.HexPreview(payload[:length]))
		b.transport.Write(payload[:length])
		return true
	}
	return false
}
