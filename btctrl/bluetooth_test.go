package btctrl

import (
	"testing"
)

func TestModeFromByte(t *testing.T) {
	cases := []struct {
		in   byte
		want Mode
	}{
		{0, ModeBle},
		{1, ModeLegacy},
		{2, ModeUnknown},
		{255, ModeUnknown},
	}

	for _, c := range cases {
		if got := modeFromByte(c.in); got != c.want {
			t.Errorf("modeFromByte(%d) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHostStateReflectsFields(t *testing.T) {
	b := &Bluetooth{SavedHosts: 0b0101, ConnectedHost: 2, Mode: ModeLegacy}

	saved, connected, mode := b.HostState()
	if saved != 0b0101 || connected != 2 || mode != uint8(ModeLegacy) {
		t.Fatalf("HostState() = (%08b, %d, %d), want (00000101, 2, %d)", saved, connected, mode, uint8(ModeLegacy))
	}
}
