package bridge

import "testing"

func TestDetectKnock_FullSequence(t *testing.T) {
	b := New(&mockTransport{})

	for i, sector := range KnockSequence {
		got := b.detectKnock(sector)
		want := i == len(KnockSequence)-1
		if got != want {
			t.Errorf("detectKnock(%d) = %v, want %v", sector, got, want)
		}
	}
	if b.knock != 0 {
		t.Errorf("knock counter = %d after completion, want 0", b.knock)
	}
}

func TestDetectKnock_MismatchResets(t *testing.T) {
	b := New(&mockTransport{})

	// Two correct knocks, then a stray address.
	b.detectKnock(KnockSequence[0])
	b.detectKnock(KnockSequence[1])
	if b.detectKnock(9999) {
		t.Fatal("stray address completed the sequence")
	}
	if b.knock != 0 {
		t.Fatalf("knock counter = %d after mismatch, want 0", b.knock)
	}

	// A restart from the true first value must still complete.
	for i, sector := range KnockSequence {
		got := b.detectKnock(sector)
		if want := i == len(KnockSequence)-1; got != want {
			t.Errorf("detectKnock(%d) after restart = %v, want %v", sector, got, want)
		}
	}
}

// A mid-sequence occurrence of the first knock value resets progress
// without itself counting as a fresh first knock.
func TestDetectKnock_FirstValueMidSequenceResets(t *testing.T) {
	b := New(&mockTransport{})

	b.detectKnock(KnockSequence[0])
	b.detectKnock(KnockSequence[1])
	b.detectKnock(KnockSequence[0]) // expected 85, got 0: reset
	if b.knock != 0 {
		t.Fatalf("knock counter = %d, want 0", b.knock)
	}

	// The full sequence is required from scratch.
	for _, sector := range KnockSequence[:len(KnockSequence)-1] {
		if b.detectKnock(sector) {
			t.Fatal("sequence completed early")
		}
	}
	if !b.detectKnock(KnockSequence[len(KnockSequence)-1]) {
		t.Error("sequence did not complete after full replay")
	}
}

func TestDetectKnock_RepeatedFirstValue(t *testing.T) {
	b := New(&mockTransport{})

	// Sector 0 repeated: each mismatch resets, each reset re-matches
	// index 0 on the next call only if the value equals the first
	// element, which it does, so the counter oscillates between 0 and 1
	// without ever completing.
	for i := 0; i < 10; i++ {
		if b.detectKnock(KnockSequence[0]) {
			t.Fatal("repeated first value completed the sequence")
		}
	}
}
