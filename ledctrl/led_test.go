package ledctrl

import (
	"testing"

	"github.com/keyboardcore/firmware/keyindex"
	"github.com/keyboardcore/firmware/keystate"
	"github.com/keyboardcore/firmware/protocol"
)

// fakePin is a GPIO stand-in recording the last level driven.
type fakePin struct {
	out  bool
	high bool
}

func (p *fakePin) Out()  { p.out = true }
func (p *fakePin) High() { p.high = true }
func (p *fakePin) Low()  { p.high = false }

// newFixture builds a Led via struct literal, bypassing New (which calls
// dma.Reserve and needs real hardware) since these tests only exercise the
// pin/state bookkeeping.
func newFixture() (*Led, *fakePin) {
	pin := &fakePin{}
	return &Led{pin: pin}, pin
}

func TestOnOffToggle(t *testing.T) {
	l, pin := newFixture()

	if err := l.On(); err != nil {
		t.Fatalf("On: %v", err)
	}
	if !pin.high || !l.state {
		t.Fatalf("On did not drive pin high / set state")
	}

	if err := l.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if pin.high || l.state {
		t.Fatalf("Toggle from on should turn off")
	}

	if err := l.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !pin.high || !l.state {
		t.Fatalf("Toggle from off should turn on")
	}
}

// TestBluetoothModeOverlay checks the full 19-key overlay: the always-on
// indicator, host-select/save/delete key groups, the five single-purpose
// action keys, and the mode-color key.
func TestBluetoothModeOverlay(t *testing.T) {
	savedHosts := uint8(0b0011) // slots 1 and 2 saved
	connectedHost := uint8(2)  // slot 2 connected
	mode := uint8(1)           // Legacy

	records := bluetoothModeRecords(savedHosts, connectedHost, mode)

	if len(records) != 19*5 {
		t.Fatalf("len(records) = %d, want %d", len(records), 19*5)
	}

	rec := func(i int) []byte { return records[i*5 : i*5+5] }

	// record 0: Escape, always-on red+green indicator.
	if r := rec(0); r[0] != byte(keyindex.Escape) || r[1] != 0xff || r[2] != 0xff || r[4] != protocol.PerKeyLedOn {
		t.Errorf("escape record = %v, want always-on red+green", r)
	}

	// records 1-4: N1-N4 host-select; slot 2 (N2, connectedHost) carries the
	// connected-indicator blue channel, slot 1 (N1) does not.
	if r := rec(2); r[0] != byte(keyindex.N2) || r[3] != 0xff {
		t.Errorf("N2 record = %v, want connected indicator set", r)
	}
	if r := rec(1); r[0] != byte(keyindex.N1) || r[3] != 0 {
		t.Errorf("N1 record = %v, want connected indicator clear", r)
	}

	// records 5-8: Q/W/E/R save indicators, slots 1 and 2 lit.
	if r := rec(5); r[0] != byte(keyindex.Q) || r[2] != 0xff {
		t.Errorf("Q record = %v, want saved", r)
	}
	if r := rec(7); r[0] != byte(keyindex.E) || r[2] != 0 {
		t.Errorf("E record = %v, want unsaved", r)
	}

	// record 18: N0 mode-color key, Legacy = red+green.
	if r := rec(18); r[0] != byte(keyindex.N0) || r[1] != 0xff || r[2] != 0xff || r[3] != 0 {
		t.Errorf("N0 record = %v, want legacy red+green", r)
	}
}

func TestAppendKeyRecordLayout(t *testing.T) {
	buf := appendKeyRecord(nil, keyindex.Q, 1, 2, 3, protocol.PerKeyLedFlash)
	want := []byte{byte(keyindex.Q), 1, 2, 3, protocol.PerKeyLedFlash}

	if len(buf) != len(want) {
		t.Fatalf("len = %d, want %d", len(buf), len(want))
	}

	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("record = %v, want %v", buf, want)
		}
	}
}

// TestSendKeysPayloadShape checks that the packed bitmap SendKeys forwards
// (KeyState.Bytes) is exactly keystate.Size bytes wide.
func TestSendKeysPayloadShape(t *testing.T) {
	var ks keystate.KeyState
	ks.Set(keyindex.A, true)

	payload := ks.Bytes()
	if len(payload) != keystate.Size {
		t.Fatalf("len(payload) = %d, want %d", len(payload), keystate.Size)
	}
}
