// Package hidreport implements the 8-byte USB boot-keyboard report used by
// this device: one modifier bitmap, one reserved byte, six keycode slots.
package hidreport

import (
	"github.com/usbarmory/tamago/bits"

	"github.com/keyboardcore/firmware/keycode"
)

// Size is the wire length of a HidReport.
const Size = 8

// MaxKeys is the number of simultaneous non-modifier keys a report can
// carry. A seventh simultaneously pressed key is silently dropped (no
// roll-over code is reported), per I-report-overflow.
const MaxKeys = 6

// HidReport is the 8-byte boot-keyboard report.
type HidReport struct {
	Modifiers uint8
	_         uint8 // reserved, always zero
	Keys      [MaxKeys]keycode.KeyCode
}

// SetModifier sets the bit corresponding to modifier c.
// c must satisfy c.IsModifier().
func (r *HidReport) SetModifier(c keycode.KeyCode) {
	m := uint32(r.Modifiers)
	bits.Set(&m, int(c-keycode.LCtrl))
	r.Modifiers = uint8(m)
}

// Bytes returns the report's 8-byte wire representation.
func (r *HidReport) Bytes() []byte {
	buf := make([]byte, Size)
	buf[0] = r.Modifiers

	for i, k := range r.Keys {
		buf[2+i] = uint8(k)
	}

	return buf
}
