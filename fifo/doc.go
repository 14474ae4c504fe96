// Package fifo implements a fixed-capacity byte queue.
//
// The queue decouples the bridge's block-sized sector transfers from the
// stream-sized transfers of the underlying transport. It preserves FIFO
// order and detects overflow: a push that would exceed capacity drops the
// entire batch rather than inserting a partial one, so a frame is either
// queued whole or not at all.
//
// The buffer is safe for concurrent use; transports pump received bytes
// into it from a reader goroutine while the bridge drains it from the
// sector I/O path.
package fifo
