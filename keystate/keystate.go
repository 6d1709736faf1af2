// Package keystate implements the packed bitmap of matrix key state that
// doubles as the wire payload for the "send keys" message to the LED
// controller.
package keystate

import (
	"github.com/usbarmory/tamago/bits"

	"github.com/keyboardcore/firmware/keyindex"
)

// Size is the number of bytes needed to pack keyindex.Count bits, with the
// top two bits of the last byte unused and required to be zero (I1).
const Size = (keyindex.Count + 7) / 8

// KeyState is a packed, row-major, LSB-first bitmap of the scan matrix.
// Bit k is 1 iff keyindex.KeyIndex(k) is currently pressed.
type KeyState [Size]byte

// Get reports whether key is pressed in s.
func (s *KeyState) Get(key keyindex.KeyIndex) bool {
	addr := uint32(s[key/8])
	return bits.Get(&addr, int(key%8))
}

// Set marks key as pressed or released in s.
func (s *KeyState) Set(key keyindex.KeyIndex, pressed bool) {
	addr := uint32(s[key/8])

	if pressed {
		bits.Set(&addr, int(key%8))
	} else {
		bits.Clear(&addr, int(key%8))
	}

	s[key/8] = byte(addr)
}

// Bytes returns the packed bitmap as a byte slice, suitable as the payload
// of a Led.Key message.
func (s *KeyState) Bytes() []byte {
	return s[:]
}
