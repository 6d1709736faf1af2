// Package ledctrl implements the driver for the companion LED controller
// MCU: high-level theme/brightness commands, per-key overlay composition,
// and the hard LED-power enable pin.
package ledctrl

import (
	"log"

	"github.com/usbarmory/tamago/dma"

	"github.com/keyboardcore/firmware/keyindex"
	"github.com/keyboardcore/firmware/keystate"
	"github.com/keyboardcore/firmware/protocol"
	"github.com/keyboardcore/firmware/serial"
)

// maxFrame is the largest frame this link ever receives: a 2-byte header
// plus up to 255 bytes of body.
const maxFrame = serial.HeaderSize + 255

// Pin is the LED-enable GPIO capability needed by On/Off/Toggle.
type Pin interface {
	Out()
	High()
	Low()
}

// axis identifies which ConfigCmd one-hot indicator a cycling command sends.
type axis int

const (
	axisTheme axis = iota
	axisBrightness
	axisAnimationSpeed
)

// Led drives the LED controller over its Serial link. Tick, the LED rx ISR,
// the LED tx ISR and the Bluetooth rx ISR all touch the same instance;
// callers are responsible
// for keeping those at a common priority ceiling (no locking is done here).
type Led struct {
	serial *serial.Serial
	rx     *serial.Transfer

	rxAddr uint32
	rxBuf  []byte

	pin   Pin
	state bool // true: pipeline drawing themes; false: blanked
}

// New constructs a Led over s, driving the enable pin through pin.
func New(s *serial.Serial, pin Pin) *Led {
	pin.Out()

	addr, buf := dma.Reserve(maxFrame, 0)

	return &Led{serial: s, pin: pin, rxAddr: addr, rxBuf: buf}
}

// TxInterrupt services the LED tx DMA channel's transfer-complete ISR.
func (l *Led) TxInterrupt() {
	l.serial.TxInterrupt()
}

// On enables the LED pipeline's power pin.
func (l *Led) On() error {
	l.pin.High()
	l.state = true
	return nil
}

// Off disables the LED pipeline's power pin.
func (l *Led) Off() error {
	l.pin.Low()
	l.state = false
	return nil
}

// Toggle flips the power pin.
func (l *Led) Toggle() error {
	if l.state {
		return l.Off()
	}
	return l.On()
}

func (l *Led) sendAxis(a axis) error {
	data := make([]byte, 3)
	data[a] = 1
	return l.serial.Send(protocol.Led, protocol.LedConfigCmd, data)
}

// NextTheme advances the active theme.
func (l *Led) NextTheme() error { return l.sendAxis(axisTheme) }

// NextBrightness advances the brightness level.
func (l *Led) NextBrightness() error { return l.sendAxis(axisBrightness) }

// NextAnimationSpeed advances the animation speed.
func (l *Led) NextAnimationSpeed() error { return l.sendAxis(axisAnimationSpeed) }

// SetTheme selects theme by id.
func (l *Led) SetTheme(theme uint8) error {
	return l.serial.Send(protocol.Led, protocol.LedThemeMode, []byte{theme})
}

// ThemeMode restores the controller's normal theme-driven display, clearing
// any per-key overlay in effect.
func (l *Led) ThemeMode() error {
	if err := l.serial.Send(protocol.Led, protocol.LedThemeMode, nil); err != nil {
		return err
	}

	l.state = true

	return nil
}

// SendKeys forwards the packed matrix bitmap as the live key-press overlay.
func (l *Led) SendKeys(ks *keystate.KeyState) error {
	return l.serial.Send(protocol.Led, protocol.LedKey, ks.Bytes())
}

// SendMusic forwards a Music command, used by the music-reactive LED mode.
func (l *Led) SendMusic(data []byte) error {
	return l.serial.Send(protocol.Led, protocol.LedMusic, data)
}

// GetThemeID requests the controller's currently active theme id.
func (l *Led) GetThemeID() error {
	return l.serial.Send(protocol.Led, protocol.LedGetThemeId, nil)
}

// appendKeyRecord appends a SetIndividualKeys record for key in color (r,g,b)
// at the given mode.
func appendKeyRecord(buf []byte, key keyindex.KeyIndex, r, g, b byte, mode byte) []byte {
	return append(buf, byte(key), r, g, b, mode)
}

// sendOverlay wraps records in the SetIndividualKeys magic/count header and
// sends them.
func (l *Led) sendOverlay(records []byte, count int) error {
	data := make([]byte, 0, 2+len(records))
	data = append(data, protocol.PerKeyLedMagic, byte(count))
	data = append(data, records...)

	return l.serial.Send(protocol.Led, protocol.LedSetIndividualKeys, data)
}

// connectedBroadcast is the BT module's reserved connected_host value
// meaning "connected via broadcast, no specific saved slot" (as opposed to
// 0, meaning not connected at all).
const connectedBroadcast = 12

// bluetoothModeRecords composes the full 19-key overlay reflecting the
// current Bluetooth state: savedHosts is a bitmask of slots with a saved
// host, connectedHost is the currently connected slot (0 if none,
// connectedBroadcast if connected without a specific slot), and mode is the
// wire encoding of the pairing mode (0 Ble, 1 Legacy, anything else
// Unknown), matching btctrl.Mode's ordering. Split out from BluetoothMode so
// the record layout can be checked without a live Serial.
func bluetoothModeRecords(savedHosts, connectedHost, mode uint8) []byte {
	var modeR, modeG, modeB byte
	switch mode {
	case 0: // Ble
		modeG = 0xff
	case 1: // Legacy
		modeR, modeG = 0xff, 0xff
	default: // Unknown
		modeR = 0xff
	}

	cu := byte(0)
	if connectedHost == connectedBroadcast {
		cu = 0xff
	}

	saved := func(slot int) byte {
		if savedHosts&(1<<uint(slot)) != 0 {
			return 0xff
		}
		return 0
	}

	connected := func(slot int) byte {
		if connectedHost == uint8(slot+1) {
			return 0xff
		}
		return 0
	}

	var records []byte
	records = appendKeyRecord(records, keyindex.Escape, 0xff, 0xff, 0, protocol.PerKeyLedOn)

	hostKeys := [4]keyindex.KeyIndex{keyindex.N1, keyindex.N2, keyindex.N3, keyindex.N4}
	for slot, key := range hostKeys {
		records = appendKeyRecord(records, key, cu, 0xff, connected(slot), protocol.PerKeyLedOn)
	}

	saveKeys := [4]keyindex.KeyIndex{keyindex.Q, keyindex.W, keyindex.E, keyindex.R}
	for slot, key := range saveKeys {
		records = appendKeyRecord(records, key, 0, saved(slot), 0xff, protocol.PerKeyLedOn)
	}

	deleteKeys := [4]keyindex.KeyIndex{keyindex.A, keyindex.S, keyindex.D, keyindex.F}
	for slot, key := range deleteKeys {
		records = appendKeyRecord(records, key, saved(slot), 0, 0, protocol.PerKeyLedOn)
	}

	records = appendKeyRecord(records, keyindex.LCtrl, 0xff, 0xff, 0xff, protocol.PerKeyLedOn)
	records = appendKeyRecord(records, keyindex.Equal, 0, 0xff, 0, protocol.PerKeyLedOn)
	records = appendKeyRecord(records, keyindex.BSpace, 0, 0, 0xff, protocol.PerKeyLedOn)
	records = appendKeyRecord(records, keyindex.B, 0, 0xff, 0, protocol.PerKeyLedFlash)
	records = appendKeyRecord(records, keyindex.Minus, 0xff, 0, 0, protocol.PerKeyLedOn)
	records = appendKeyRecord(records, keyindex.N0, modeR, modeG, modeB, protocol.PerKeyLedOn)

	return records
}

// BluetoothMode sends the 19-key overlay from bluetoothModeRecords.
func (l *Led) BluetoothMode(savedHosts, connectedHost, mode uint8) error {
	return l.sendOverlay(bluetoothModeRecords(savedHosts, connectedHost, mode), 19)
}

// BluetoothPinMode lights the number row 1..0 green and Enter blue, for PIN
// entry during Ble.Pair.
func (l *Led) BluetoothPinMode() error {
	digits := [10]keyindex.KeyIndex{
		keyindex.N1, keyindex.N2, keyindex.N3, keyindex.N4, keyindex.N5,
		keyindex.N6, keyindex.N7, keyindex.N8, keyindex.N9, keyindex.N0,
	}

	var records []byte

	for _, key := range digits {
		records = appendKeyRecord(records, key, 0, 255, 0, protocol.PerKeyLedOn)
	}

	records = appendKeyRecord(records, keyindex.Enter, 0, 0, 255, protocol.PerKeyLedOn)

	return l.sendOverlay(records, len(digits)+1)
}

// Poll advances the rx transfer and dispatches a completed message. Call
// once per LED-rx ISR / tick.
func (l *Led) Poll() {
	if l.rx == nil {
		l.arm()
		return
	}

	if err := l.rx.Poll(); err != nil {
		return
	}

	msg := serial.Decode(l.rx.Finish())
	l.handleMessage(msg)
	l.arm()
}

func (l *Led) arm() {
	l.rx = l.serial.Receive(l.rxAddr, l.rxBuf)
}

func (l *Led) handleMessage(msg protocol.Message) {
	switch {
	case msg.MsgType == protocol.Ack && msg.Operation == protocol.LedAckThemeMode:
	case msg.MsgType == protocol.Ack && msg.Operation == protocol.LedAckConfigCmd:
	case msg.MsgType == protocol.Ack && msg.Operation == protocol.LedAckSetIndividualKeys:
		// benign acks, nothing to do
	default:
		log.Printf("ledctrl: unhandled message type=%d op=%d", msg.MsgType, msg.Operation)
	}
}
