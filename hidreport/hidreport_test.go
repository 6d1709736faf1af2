package hidreport

import (
	"testing"

	"github.com/keyboardcore/firmware/keycode"
)

// TestModifierBitMapping checks P5: setting modifier LCtrl+i sets exactly
// bit i of Modifiers.
func TestModifierBitMapping(t *testing.T) {
	mods := []keycode.KeyCode{
		keycode.LCtrl, keycode.LShift, keycode.LAlt, keycode.LMeta,
		keycode.RCtrl, keycode.RShift, keycode.RAlt, keycode.RMeta,
	}

	for i, c := range mods {
		var r HidReport
		r.SetModifier(c)

		want := uint8(1) << uint(i)
		if r.Modifiers != want {
			t.Errorf("SetModifier(%v): Modifiers = %08b, want %08b", c, r.Modifiers, want)
		}
	}
}

func TestBytesLayout(t *testing.T) {
	var r HidReport
	r.SetModifier(keycode.LShift)
	r.Keys[0] = keycode.A

	b := r.Bytes()

	if len(b) != Size {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), Size)
	}

	want := []byte{0x02, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("Bytes() = %v, want %v", b, want)
		}
	}
}
