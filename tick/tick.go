// Package tick wires the interrupt sources (four DMA channels, one
// periodic timer) to the drivers they belong to. Each exported method on
// Scheduler is meant to be called directly from an interrupt vector stub;
// none of them block or allocate on a hot path.
package tick

import (
	"github.com/keyboardcore/firmware/btctrl"
	"github.com/keyboardcore/firmware/dmauart"
	"github.com/keyboardcore/firmware/hidreport"
	"github.com/keyboardcore/firmware/keyboard"
	"github.com/keyboardcore/firmware/keystate"
	"github.com/keyboardcore/firmware/ledctrl"
)

// USBDevice is the one method the core calls on the USB HID stack
// collaborator. Report descriptors, endpoint timing and enumeration are
// out of scope here.
type USBDevice interface {
	UpdateReport(r *hidreport.HidReport)
}

// MatrixSampler is the one method the core calls on the row/column scan
// collaborator.
type MatrixSampler interface {
	Sample() keystate.KeyState
}

// Scheduler holds the handles touched by each interrupt source and the
// periodic scan tick. Resource-sharing notes (mirroring spec.md §5, since
// Go has no RTFM-style compile-time resource checker):
//
//   - Keyboard is touched by Scan and by BleRx (Ble.Pair clears the BT
//     layer); both must run at the same priority ceiling.
//   - Led is touched by Scan, LedRx, LedTx and BleRx (Bluetooth message
//     handlers repaint or forward to the LED controller); same ceiling.
//   - Bluetooth is touched by Scan, BleRx and BleTx; same ceiling.
//   - USB is touched by Scan and by the (external) USB ISR; same ceiling.
type Scheduler struct {
	Keyboard *keyboard.Keyboard
	Led      *ledctrl.Led
	Bt       *btctrl.Bluetooth
	USB      USBDevice
	Matrix   MatrixSampler
	Reset    dmauart.Resetter
}

// Scan is the periodic (~10ms) scan-tick handler.
func (s *Scheduler) Scan() {
	state := s.Matrix.Sample()
	s.Keyboard.Process(state, s.Reset, s.Bt, s.Led, s.USB)
}

// LedRx is the LED rx DMA channel's transfer-complete ISR.
func (s *Scheduler) LedRx() {
	s.Led.Poll()
}

// LedTx is the LED tx DMA channel's transfer-complete ISR.
func (s *Scheduler) LedTx() {
	s.Led.TxInterrupt()
}

// BleRx is the Bluetooth rx DMA channel's transfer-complete ISR.
func (s *Scheduler) BleRx() {
	s.Bt.Poll(s.Led, s.Keyboard)
}

// BleTx is the Bluetooth tx DMA channel's transfer-complete ISR.
func (s *Scheduler) BleTx() {
	s.Bt.TxInterrupt()
}
