package bridge

import "fmt"

// Wire layout (all sizes in bytes).
const (
	// BlockSize is the size of one disk sector data block.
	BlockSize = 512

	// HeaderLen is the size of the frame header.
	HeaderLen = 12

	// TagLen is the minimum size of the per-sector tag area.
	TagLen = 12

	// MaxPayload is the largest payload that fits a block whose first
	// HeaderLen bytes hold the frame header.
	MaxPayload = BlockSize - HeaderLen
)

// SentinelSector is the reserved out-of-band sector address. The host
// presents it as a signed negative block number; it lies outside the
// addressable range of any real volume, so any access to it is channel
// traffic unconditionally.
const SentinelSector uint32 = 0x007FFFFF

// Frame direction markers.
var (
	// RequestMarker opens every host-to-device frame header.
	RequestMarker = [4]byte{'N', 'D', 'E', 'V'}

	// ReplyMarker opens every device-to-host frame header.
	ReplyMarker = [4]byte{'F', 'U', 'J', 'I'}
)

// KnockSequence is the ordered list of sector addresses that, accessed
// consecutively on one drive, opens the handshake.
var KnockSequence = [5]uint32{0, 70, 85, 74, 73}

// Mode is the direction of a sector access.
type Mode uint8

// Sector access directions.
const (
	ModeRead  Mode = iota // Host reads from the device
	ModeWrite             // Host writes to the device
)

// String returns a human-readable direction name.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("unknown mode (%d)", m)
	}
}

// State is the handshake phase of a bridge session.
type State uint8

// Handshake phases, in order of progression.
const (
	StateIdle          State = iota // Waiting for a knock sequence
	StateClaimedDrive               // Knock seen, waiting for the magic write
	StateSectorPending              // Magic write accepted, waiting for the confirming read
	StateActive                     // Handshake complete, channel established
)

// String returns a human-readable phase name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClaimedDrive:
		return "claimed drive"
	case StateSectorPending:
		return "sector pending"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("unknown state (%d)", s)
	}
}
