package bridge

import (
	"encoding/binary"

	"github.com/ardnew/softfloppy/pkg"
	"github.com/ardnew/softfloppy/transport"
)

// Bridge is one covert-channel session layered over sector I/O.
//
// A Bridge holds the handshake phase, the knock progress counter, and
// the drive/sector pair claimed as the channel endpoint. It is not safe
// for concurrent use; the caller must serialize sector accesses (see
// [github.com/ardnew/softfloppy/disk.Interceptor]).
type Bridge struct {
	transport transport.Transport

	state  State
	knock  int
	drive  uint8
	sector uint32
}

// New creates an idle Bridge that frames channel payload through t.
func New(t transport.Transport) *Bridge {
	return &Bridge{transport: t}
}

// State returns the current handshake phase.
func (b *Bridge) State() State {
	return b.state
}

// Endpoint returns the claimed drive and magic sector. The values are
// meaningful only once State reports StateSectorPending or later.
func (b *Bridge) Endpoint() (drive uint8, sector uint32) {
	return b.drive, b.sector
}

// IsChannelIO classifies one sector access, called by the disk I/O path
// before any real storage access. drive and sector identify the access,
// tag is the per-sector tag area (at least TagLen bytes), blk the
// BlockSize-byte data block, and mode the direction.
//
// A true return means the access was consumed: tag and blk now hold the
// response for the host and no storage access should occur. On a false
// return the caller performs ordinary disk I/O, but must still return
// the tag area to the host: completing a knock sequence announces the
// device's presence by mutating the tags of an otherwise normal access.
func (b *Bridge) IsChannelIO(drive uint8, sector uint32, tag, blk []byte, mode Mode) bool {
	if len(tag) < TagLen || len(blk) < BlockSize {
		pkg.LogError(pkg.ComponentBridge, "undersized buffers in sector access",
			"tag", len(tag), "blk", len(blk))
		return false
	}

	// The sentinel address is channel traffic no matter the phase.
	if sector == SentinelSector {
		pkg.LogDebug(pkg.ComponentBridge, "sentinel sector access", "mode", mode)
		b.channelIO(tag, blk, mode)
		if b.state != StateActive {
			// The host is talking through the sentinel instead of
			// completing the sector handshake; abandon any progress.
			b.state = StateIdle
		}
		return true
	}

	// The knock sequence may arrive at any time, re-arming the
	// handshake even over an established channel.
	if b.detectKnock(sector) {
		b.state = StateClaimedDrive
		b.drive = drive
		b.sector = 0
		pkg.LogInfo(pkg.ComponentBridge, "drive claimed for channel", "drive", drive)

		// Announce presence through the tag area. The access itself
		// still falls through to ordinary disk I/O.
		PutHeader(tag, 0)
	}

	switch b.state {
	case StateIdle:
		// Waiting for a knock; nothing to do.

	case StateClaimedDrive:
		// After knocking, the host either switches to the sentinel or
		// writes a block of repeated request markers to some file; the
		// written sector becomes the channel endpoint.
		if mode == ModeWrite && drive == b.drive {
			// The pattern check is advisory: a mismatch is logged but
			// the write is still accepted as the magic sector, matching
			// the behavior host drivers have been built against.
			b.checkMagicBlock(blk)
			b.sector = sector
			b.state = StateSectorPending
			pkg.LogInfo(pkg.ComponentBridge, "magic sector recorded",
				"drive", b.drive, "sector", b.sector)
			return true
		}

	case StateSectorPending:
		// The host reads the sector back; answering with the reply
		// marker and the sector address seals the agreement.
		if mode == ModeRead && drive == b.drive && sector == b.sector {
			PutHeader(tag, 8)
			copy(blk[0:4], ReplyMarker[:])
			binary.BigEndian.PutUint32(blk[4:8], b.sector)
			b.state = StateActive
			pkg.LogInfo(pkg.ComponentBridge, "handshake complete",
				"drive", b.drive, "sector", b.sector)
			return true
		}
		pkg.LogDebug(pkg.ComponentBridge, "not the confirming read",
			"mode", mode, "drive", drive, "sector", sector)

	case StateActive:
		if drive == b.drive && sector == b.sector {
			return b.channelIO(tag, blk, mode)
		}
		if sector == b.sector {
			pkg.LogWarn(pkg.ComponentBridge, "magic sector access on wrong drive",
				"drive", drive, "claimed", b.drive)
		}
	}

	return false
}

// checkMagicBlock reports whether blk consists of BlockSize bytes of
// the repeated request marker. The first mismatch is logged.
func (b *Bridge) checkMagicBlock(blk []byte) bool {
	for i := 0; i < BlockSize; i++ {
		if blk[i] != RequestMarker[i&3] {
			pkg.LogDebug(pkg.ComponentBridge, "magic pattern mismatch",
				"offset", i,
				"got", blk[i],
				"want", RequestMarker[i&3])
			return false
		}
	}
	return true
}
