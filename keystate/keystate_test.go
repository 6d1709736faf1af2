package keystate

import (
	"testing"

	"github.com/keyboardcore/firmware/keyindex"
)

// TestPackingRoundTrip checks P8: KeyState round-trips through Set/Get,
// and the packed bitmap is exactly keystate.Size bytes wide.
func TestPackingRoundTrip(t *testing.T) {
	if Size != 9 {
		t.Fatalf("Size = %d, want 9", Size)
	}

	var s KeyState
	s.Set(keyindex.A, true)
	s.Set(keyindex.LShift, true)

	if !s.Get(keyindex.A) || !s.Get(keyindex.LShift) {
		t.Fatalf("expected A and LShift set")
	}

	for key := keyindex.KeyIndex(0); int(key) < keyindex.Count; key++ {
		want := key == keyindex.A || key == keyindex.LShift
		if got := s.Get(key); got != want {
			t.Errorf("Get(%d) = %v, want %v", key, got, want)
		}
	}

	s.Set(keyindex.A, false)
	if s.Get(keyindex.A) {
		t.Fatalf("expected A cleared")
	}
}

// TestTopBitsUnused checks I1: setting every KeyIndex below Count leaves
// the top two bits of the last byte zero.
func TestTopBitsUnused(t *testing.T) {
	var s KeyState

	for key := keyindex.KeyIndex(0); int(key) < keyindex.Count; key++ {
		s.Set(key, true)
	}

	top := s[Size-1]
	if top&0b11000000 != 0 {
		t.Fatalf("top two bits of last byte = %08b, want zero", top)
	}
}

func TestBytesIsLiveView(t *testing.T) {
	var s KeyState
	s.Set(keyindex.Q, true)

	b := s.Bytes()
	if len(b) != Size {
		t.Fatalf("Bytes() len = %d, want %d", len(b), Size)
	}

	want := byte(1) << (uint8(keyindex.Q) % 8)
	if b[keyindex.Q/8] != want {
		t.Fatalf("Bytes()[%d] = %08b, want %08b", keyindex.Q/8, b[keyindex.Q/8], want)
	}

	s.Set(keyindex.Q, false)
	if b[keyindex.Q/8] != 0 {
		t.Fatalf("Bytes() did not reflect a later Set: byte %d = %08b, want 0", keyindex.Q/8, b[keyindex.Q/8])
	}
}
