package bridge

import "github.com/ardnew/softfloppy/pkg"

// detectKnock advances the knock counter when sector matches the next
// expected element of KnockSequence, resetting on any mismatch. It
// returns true when the final element completes the sequence, at which
// point the counter has wrapped to zero.
func (b *Bridge) detectKnock(sector uint32) bool {
	if sector != KnockSequence[b.knock] {
		b.knock = 0
		return false
	}

	pkg.LogDebug(pkg.ComponentBridge, "got knock", "index", b.knock, "sector", sector)
	b.knock++
	if b.knock == len(KnockSequence) {
		b.knock = 0
		pkg.LogDebug(pkg.ComponentBridge, "knock sequence complete")
		return true
	}
	return false
}
