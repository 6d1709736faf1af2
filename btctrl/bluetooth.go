// Package btctrl implements the driver for the companion Bluetooth module
// MCU: host management commands, the wakeup-handshake application-layer
// release point, and the hot-path HID report send.
package btctrl

import (
	"log"

	"github.com/usbarmory/tamago/dma"

	"github.com/keyboardcore/firmware/dmauart"
	"github.com/keyboardcore/firmware/hidreport"
	"github.com/keyboardcore/firmware/layout"
	"github.com/keyboardcore/firmware/ledctrl"
	"github.com/keyboardcore/firmware/protocol"
	"github.com/keyboardcore/firmware/serial"
)

const maxFrame = serial.HeaderSize + 255

// Mode tracks how the Bluetooth module is currently pairing.
type Mode int

const (
	ModeBle Mode = iota
	ModeLegacy
	ModeUnknown
)

// modeFromByte maps the wire encoding used by Ble.AckHostListQuery.
func modeFromByte(b byte) Mode {
	switch b {
	case 0:
		return ModeBle
	case 1:
		return ModeLegacy
	default:
		return ModeUnknown
	}
}

// BtWakeAcker is the subset of dmauart.BluetoothUSART the wakeup handshake
// needs from the poll loop.
type BtWakeAcker interface {
	AckWakeup()
}

// KeyboardLayerController is the narrow slice of the keyboard's layer API
// the message handlers need: disabling the BT overlay so typed PIN digits
// reach the host instead of being interpreted as BT commands (Ble.Pair),
// and checking whether the BT overlay is currently showing before a host
// -list update repaints it (Ble.AckHostListQuery).
type KeyboardLayerController interface {
	DisableLayer(layer uint8)
	IsLayerActive(layer uint8) bool
}

// Bluetooth drives the Bluetooth module over its Serial link.
type Bluetooth struct {
	serial *serial.Serial
	usart  *dmauart.BluetoothUSART
	rx     *serial.Transfer

	rxAddr uint32
	rxBuf  []byte

	Mode          Mode
	SavedHosts    uint8
	ConnectedHost uint8
}

// New constructs a Bluetooth over s, which must wrap usart (the concrete
// peripheral, needed to service the AckWakeup handshake directly).
func New(s *serial.Serial, usart *dmauart.BluetoothUSART) *Bluetooth {
	addr, buf := dma.Reserve(maxFrame, 0)

	return &Bluetooth{serial: s, usart: usart, rxAddr: addr, rxBuf: buf}
}

// TxInterrupt services the Bluetooth tx DMA channel's transfer-complete
// ISR.
func (b *Bluetooth) TxInterrupt() {
	b.serial.TxInterrupt()
}

func (b *Bluetooth) On() error  { return b.serial.Send(protocol.Ble, protocol.BleOn, nil) }
func (b *Bluetooth) Off() error { return b.serial.Send(protocol.Ble, protocol.BleOff, nil) }

func (b *Bluetooth) SaveHost(slot uint8) error {
	return b.serial.Send(protocol.Ble, protocol.BleSaveHost, []byte{slot})
}

func (b *Bluetooth) ConnectHost(slot uint8) error {
	return b.serial.Send(protocol.Ble, protocol.BleConnectHost, []byte{slot})
}

func (b *Bluetooth) DeleteHost(slot uint8) error {
	return b.serial.Send(protocol.Ble, protocol.BleDeleteHost, []byte{slot})
}

func (b *Bluetooth) Broadcast() error {
	return b.serial.Send(protocol.Ble, protocol.BleBroadcast, nil)
}

func (b *Bluetooth) EnableLegacyMode(on bool) error {
	var v byte
	if on {
		v = 1
	}

	return b.serial.Send(protocol.Ble, protocol.BleLegacyMode, []byte{v})
}

// ToggleLegacyMode flips legacy mode based on the last known Mode.
func (b *Bluetooth) ToggleLegacyMode() error {
	return b.EnableLegacyMode(b.Mode != ModeLegacy)
}

func (b *Bluetooth) HostListQuery() error {
	return b.serial.Send(protocol.Ble, protocol.BleHostListQuery, nil)
}

// SendReport is the hot path: forward a HID report to the connected host.
func (b *Bluetooth) SendReport(r *hidreport.HidReport) error {
	return b.serial.Send(protocol.Keyboard, protocol.KeyboardKeyReport, r.Bytes())
}

// UpdateLed pushes the current host state to the LED controller's
// Bluetooth overlay.
func (b *Bluetooth) UpdateLed(led *ledctrl.Led) error {
	return led.BluetoothMode(b.SavedHosts, b.ConnectedHost, uint8(b.Mode))
}

// HostState returns the currently known saved-hosts bitmask, connected
// host slot, and pairing mode (wire-encoded: 0 Ble, 1 Legacy, else
// Unknown), as last reported by Ble.AckHostListQuery.
func (b *Bluetooth) HostState() (saved uint8, connected uint8, mode uint8) {
	return b.SavedHosts, b.ConnectedHost, uint8(b.Mode)
}

func (b *Bluetooth) arm() {
	b.rx = b.serial.Receive(b.rxAddr, b.rxBuf)
}

// Poll advances the rx transfer and, on a completed frame, dispatches it.
// kbd and led are passed through for the handlers that must reach into
// other drivers (Ble.Pair, Led.ThemeMode forwarding).
func (b *Bluetooth) Poll(led *ledctrl.Led, kbd KeyboardLayerController) {
	if b.rx == nil {
		b.arm()
		return
	}

	if err := b.rx.Poll(); err != nil {
		return
	}

	msg := serial.Decode(b.rx.Finish())
	b.handleMessage(msg, led, kbd)
	b.arm()
}

func (b *Bluetooth) handleMessage(msg protocol.Message, led *ledctrl.Led, kbd KeyboardLayerController) {
	switch {
	case msg.MsgType == protocol.Ble && msg.Operation == protocol.BleAckWakeup:
		b.usart.AckWakeup()

	case msg.MsgType == protocol.System && msg.Operation == protocol.SystemGetId:
		b.replyGetId()

	case msg.MsgType == protocol.System && msg.Operation == protocol.SystemIsSyncCode:
		if err := b.serial.Send(protocol.Ack, protocol.SystemAckIsSyncCode, []byte{1}); err != nil {
			log.Printf("btctrl: reply IsSyncCode: %v", err)
		}

	case msg.MsgType == protocol.System && msg.Operation == protocol.SystemSetSyncCode:
		if err := b.serial.Send(protocol.Ack, protocol.SystemAckIsSyncCode, nil); err != nil {
			log.Printf("btctrl: reply SetSyncCode: %v", err)
		}

	case msg.MsgType == protocol.Ble && msg.Operation == protocol.BlePair:
		kbd.DisableLayer(layout.LayerBT)
		if err := led.BluetoothPinMode(); err != nil {
			log.Printf("btctrl: bluetooth_pin_mode: %v", err)
		}

	case msg.MsgType == protocol.Ble && msg.Operation == protocol.BleAckHostListQuery && len(msg.Data) == 3:
		b.SavedHosts = msg.Data[0]
		b.ConnectedHost = msg.Data[1]
		b.Mode = modeFromByte(msg.Data[2])

		if kbd.IsLayerActive(layout.LayerBT) {
			if err := b.UpdateLed(led); err != nil {
				log.Printf("btctrl: update_led: %v", err)
			}
		}

	case msg.MsgType == protocol.Led && msg.Operation == protocol.LedThemeMode && len(msg.Data) >= 1:
		if err := led.SetTheme(msg.Data[0]); err != nil {
			log.Printf("btctrl: forward set_theme: %v", err)
		}

	default:
		log.Printf("btctrl: unhandled message type=%d op=%d", msg.MsgType, msg.Operation)
	}
}

// replyGetId answers System.GetId with the two fixed device-identity
// packets (spec §6): [datalen, nblock, iblock, data...], data starting
// with the device type/model bytes followed by the device id.
func (b *Bluetooth) replyGetId() {
	block0 := []byte{10, 2, 0, protocol.DeviceTypeKeyboard, protocol.DeviceModelAnnePro, 3, 4, 5, 6}
	block1 := []byte{8, 2, 1, 7, 8, 9, 10, 11, 12}

	if err := b.serial.Send(protocol.Ack, protocol.SystemAckGetId, block0); err != nil {
		log.Printf("btctrl: reply GetId block 0: %v", err)
		return
	}

	if err := b.serial.Send(protocol.Ack, protocol.SystemAckGetId, block1); err != nil {
		log.Printf("btctrl: reply GetId block 1: %v", err)
	}
}
