// Package keyboard implements the action engine: turning a sampled
// KeyState into HID report mutations and side-effecting dispatch to the
// LED and Bluetooth drivers, layer by layer.
package keyboard

import (
	"log"

	"github.com/keyboardcore/firmware/action"
	"github.com/keyboardcore/firmware/dmauart"
	"github.com/keyboardcore/firmware/hidreport"
	"github.com/keyboardcore/firmware/keyindex"
	"github.com/keyboardcore/firmware/keystate"
	"github.com/keyboardcore/firmware/layout"
)

// LedDriver is the slice of ledctrl.Led the action engine dispatches to
// directly, kept as an interface so keyboard does not import ledctrl.
type LedDriver interface {
	On() error
	Off() error
	Toggle() error
	NextTheme() error
	NextBrightness() error
	NextAnimationSpeed() error
	SetTheme(theme uint8) error
	ThemeMode() error
	SendKeys(ks *keystate.KeyState) error
	BluetoothMode(savedHosts, connectedHost, mode uint8) error
}

// BluetoothDriver is the slice of btctrl.Bluetooth the action engine
// dispatches to directly.
type BluetoothDriver interface {
	On() error
	Off() error
	SaveHost(slot uint8) error
	ConnectHost(slot uint8) error
	DeleteHost(slot uint8) error
	Broadcast() error
	EnableLegacyMode(on bool) error
	ToggleLegacyMode() error
	HostListQuery() error
	SendReport(r *hidreport.HidReport) error
	HostState() (saved uint8, connected uint8, mode uint8)
}

// USBDevice is the collaborator the engine pushes completed HID reports
// into, when send_usb_report is set.
type USBDevice interface {
	UpdateReport(r *hidreport.HidReport)
}

// Layers is the runtime layer-activation bitfield: bit l set means layer l
// is active. current drives get_action lookups; next accumulates edits
// made during a tick's dispatch and is committed to current at the end.
type Layers struct {
	current uint8
	next    uint8
}

func (l *Layers) bit(layer uint8) bool    { return l.current&(1<<layer) != 0 }
func (l *Layers) nextBit(layer uint8) bool { return l.next&(1<<layer) != 0 }

func (l *Layers) setNext(layer uint8, on bool) {
	if on {
		l.next |= 1 << layer
	} else {
		l.next &^= 1 << layer
	}
}

func (l *Layers) finish() { l.current = l.next }

// Keyboard holds the per-tick action-resolution state.
type Keyboard struct {
	layers        Layers
	previousState keystate.KeyState

	sendUSBReport bool
}

// New returns a Keyboard with send_usb_report defaulted to true.
func New() *Keyboard {
	return &Keyboard{sendUSBReport: true}
}

// DisableLayer clears layer in both current and next, used by Ble.Pair to
// kick the keyboard out of the BT overlay so typed PIN digits pass
// through.
func (k *Keyboard) DisableLayer(layer uint8) {
	k.layers.current &^= 1 << layer
	k.layers.next &^= 1 << layer
}

// IsLayerActive reports whether layer is active in the committed layer
// state, used by Ble.AckHostListQuery to decide whether a host-list update
// should repaint the LED overlay (only while the BT layer is showing it).
func (k *Keyboard) IsLayerActive(layer uint8) bool {
	return k.layers.bit(layer)
}

// getAction resolves key by scanning layers from the topmost active one
// down to BASE, returning the first non-Transparent action found.
func getAction(layers *Layers, key keyindex.KeyIndex) action.Action {
	for i := len(layout.LAYERS) - 1; i >= 0; i-- {
		if uint8(i) != layout.LayerBase && !layers.bit(uint8(i)) {
			continue
		}

		a := layout.LAYERS[i][key]
		if a.Kind != action.Transparent {
			return a
		}
	}

	return action.ActionTransparent
}

// Process runs one tick's worth of matrix state through the action engine.
func (k *Keyboard) Process(state keystate.KeyState, reset dmauart.Resetter, bt BluetoothDriver, led LedDriver, usb USBDevice) {
	if state == k.previousState {
		return
	}

	var report hidreport.HidReport
	i := 0

	wasBT := k.layers.bit(layout.LayerBT)

	for key := keyindex.KeyIndex(0); int(key) < keyindex.Count; key++ {
		pressed := state.Get(key)
		changed := pressed != k.previousState.Get(key)

		if !pressed && !changed {
			continue
		}

		a := getAction(&k.layers, key)

		if pressed && a.Kind == action.Reset {
			reset.Reset()
		}

		k.dispatchHid(&report, &i, a, pressed)

		if changed && pressed {
			k.dispatchLed(led, a)
			k.dispatchBt(bt, a)
		}

		k.dispatchLayer(a, pressed, changed)

		if changed && pressed && a.Kind == action.UsbToggle {
			k.sendUSBReport = !k.sendUSBReport
		}
	}

	isBT := k.layers.nextBit(layout.LayerBT)

	switch {
	case !wasBT && isBT:
		saved, connected, mode := bt.HostState()
		if err := led.BluetoothMode(saved, connected, mode); err != nil {
			log.Printf("keyboard: update_led: %v", err)
		}
	case wasBT && !isBT:
		if err := led.ThemeMode(); err != nil {
			log.Printf("keyboard: theme_mode: %v", err)
		}
	}

	k.layers.finish()

	if err := bt.SendReport(&report); err != nil {
		log.Printf("keyboard: send_report: %v", err)
	}

	if err := led.SendKeys(&state); err != nil {
		log.Printf("keyboard: send_keys: %v", err)
	}

	if k.sendUSBReport {
		usb.UpdateReport(&report)
	}

	k.previousState = state
}

func (k *Keyboard) dispatchHid(report *hidreport.HidReport, i *int, a action.Action, pressed bool) {
	if !pressed || a.Kind != action.Key {
		return
	}

	code := a.Code()

	switch {
	case code.IsModifier():
		report.SetModifier(code)
	case code.IsNormalKey() && *i < hidreport.MaxKeys:
		report.Keys[*i] = code
		*i++
	}
}

func (k *Keyboard) dispatchLed(led LedDriver, a action.Action) {
	var err error

	switch a.Kind {
	case action.LedOn:
		err = led.On()
	case action.LedOff:
		err = led.Off()
	case action.LedToggle:
		err = led.Toggle()
	case action.LedNextTheme:
		err = led.NextTheme()
	case action.LedNextBrightness:
		err = led.NextBrightness()
	case action.LedNextAnimationSpeed:
		err = led.NextAnimationSpeed()
	case action.LedTheme:
		err = led.SetTheme(a.Arg)
	default:
		return
	}

	if err != nil {
		log.Printf("keyboard: led dispatch kind=%d: %v", a.Kind, err)
	}
}

func (k *Keyboard) dispatchBt(bt BluetoothDriver, a action.Action) {
	var err error

	switch a.Kind {
	case action.BtOn:
		err = bt.On()
	case action.BtOff:
		err = bt.Off()
	case action.BtSaveHost:
		err = bt.SaveHost(a.Arg)
	case action.BtConnectHost:
		err = bt.ConnectHost(a.Arg)
	case action.BtDeleteHost:
		err = bt.DeleteHost(a.Arg)
	case action.BtBroadcast:
		err = bt.Broadcast()
	case action.BtLegacyMode:
		err = bt.EnableLegacyMode(a.Bool())
	case action.BtToggleLegacyMode:
		err = bt.ToggleLegacyMode()
	case action.BtHostListQuery:
		err = bt.HostListQuery()
	default:
		return
	}

	if err != nil {
		log.Printf("keyboard: bt dispatch kind=%d: %v", a.Kind, err)
	}
}

func (k *Keyboard) dispatchLayer(a action.Action, pressed, changed bool) {
	if !changed {
		return
	}

	switch a.Kind {
	case action.LayerMomentary:
		k.layers.setNext(a.Layer(), pressed)
	case action.LayerToggle:
		if pressed {
			k.layers.setNext(a.Layer(), !k.layers.nextBit(a.Layer()))
		}
	case action.LayerOn:
		if pressed {
			k.layers.setNext(a.Layer(), true)
		}
	case action.LayerOff:
		if pressed {
			k.layers.setNext(a.Layer(), false)
		}
	}
}
