// Package bridge implements a covert byte-stream channel carried inside
// floppy-style sector I/O.
//
// A host talks to an auxiliary peripheral by performing ordinary-looking
// 512-byte sector reads and writes; the bridge inspects every access
// before it reaches storage, recognizes a handshake carried entirely in
// sector addresses and sector contents, and thereafter redirects traffic
// on one agreed drive/sector pair to a byte-stream [transport.Transport]
// instead of the disk.
//
// # Handshake
//
// The session advances through four phases:
//
//	Idle → ClaimedDrive → SectorPending → Active
//
//  1. The host accesses the knock sequence of sector addresses
//     (0, 70, 85, 74, 73) consecutively on one drive. Completion claims
//     that drive and answers a zero-length reply header in the sector
//     tags, announcing the device's presence. Any out-of-order address
//     restarts the count.
//
//  2. The host writes a sector filled with 128 repetitions of the
//     request marker "NDEV" to a file of its choosing. The written
//     sector address becomes the magic sector. The pattern check is
//     advisory only; see Leniency below.
//
//  3. The host immediately reads that sector back. The bridge answers
//     an 8-byte-length header in the tags and the reply marker "FUJI"
//     followed by the big-endian sector address in bytes 0-7 of the
//     block. Both sides have now agreed on the endpoint.
//
//  4. Every subsequent access to that drive/sector pair is channel
//     traffic, framed through the 12-byte header and serviced by the
//     transport. A fresh knock sequence re-arms the handshake at any
//     time, including over an established channel.
//
// Alternatively the host may skip the sector handshake entirely and
// address the sentinel sector 0x007FFFFF, which is treated as channel
// traffic in every phase.
//
// # Frame Header
//
//	[marker(4)] [reserved(2)] [length, big-endian(2)] [reserved(4)]
//
// Host-to-device frames carry the request marker "NDEV", device-to-host
// frames the reply marker "FUJI". On writes the header rides in the
// sector tag area when the host driver can set tags, otherwise in the
// leading 12 bytes of the block. With the header in the block, payload
// capacity is 500 bytes per sector transfer.
//
// # Leniency
//
// In the ClaimedDrive phase, any write on the claimed drive is accepted
// as the magic sector even when the block does not hold the repeated
// request marker; the pattern check only logs mismatches. Host drivers
// have been built against this behavior, so it is preserved and pinned
// by a regression test rather than tightened.
//
// # Error Handling
//
// Nothing in this layer returns an error. Protocol mismatches are
// logged and degrade to ordinary disk I/O; a malformed write to the
// magic sector is refused (reported unhandled); oversized declared
// lengths are clamped. The host protocol has no error-acknowledgment
// mechanism to surface anything stronger.
//
// # Concurrency
//
// A [Bridge] assumes the caller serializes sector accesses. Hosts with
// concurrent disk I/O paths should wrap classification in a mutex, as
// [github.com/ardnew/softfloppy/disk.Interceptor] does.
package bridge
