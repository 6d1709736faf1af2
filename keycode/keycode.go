// Package keycode defines the USB HID usage IDs sent in HID reports.
package keycode

// KeyCode is a USB HID keyboard usage ID, 0x00-0x65 for normal keys and
// 0xE0-0xE7 for modifiers.
type KeyCode uint8

// No is the "no key" / empty report slot value.
const No KeyCode = 0x00

// Modifier keycodes, p53 HID Usage Tables (Keyboard/Keypad Page).
const (
	LCtrl KeyCode = 0xE0 + iota
	LShift
	LAlt
	LMeta
	RCtrl
	RShift
	RAlt
	RMeta
)

// Normal keycodes: every usage ID in the 0x04-0x65 range, A through
// Application.
const (
	A KeyCode = 0x04 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
	Enter
	Escape
	BSpace
	Tab
	Space
	Minus
	Equal
	LBracket
	RBracket
	BSlash
	NonUSHash
	SColon
	Quote
	Grave
	Comma
	Dot
	Slash
	Capslock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	PScreen
	Scrolllock
	Pause
	Insert
	Home
	PgUp
	Delete
	End
	PgDown
	Right
	Left
	Down
	Up
	Numlock
	KpSlash
	KpAsterisk
	KpMinus
	KpPlus
	KpEnter
	Kp1
	Kp2
	Kp3
	Kp4
	Kp5
	Kp6
	Kp7
	Kp8
	Kp9
	Kp0
	KpDot
	NonUSBackslash
	Application
)

// IsModifier reports whether c is one of LCtrl..RMeta.
func (c KeyCode) IsModifier() bool {
	return c >= LCtrl && c <= RMeta
}

// IsNormalKey reports whether c is one of A..Application.
func (c KeyCode) IsNormalKey() bool {
	return c >= A && c <= Application
}
