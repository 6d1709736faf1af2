// Package keyindex enumerates the physical cells of the 5x14 scan matrix,
// numbered in row-major order starting at 0 (Escape).
package keyindex

// KeyIndex identifies a physical matrix cell. Values are also used to
// address per-key LEDs on the companion LED controller.
type KeyIndex uint8

// Row 0.
const (
	Escape KeyIndex = iota
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
	Minus
	Equal
	BSpace
)

// Row 1.
const (
	Tab KeyIndex = 14 + iota
	Q
	W
	E
	R
	T
	Y
	U
	I
	O
	P
	LBracket
	RBracket
	BSlash
)

// Row 2.
const (
	Capslock KeyIndex = 28 + iota
	A
	S
	D
	F
	G
	H
	J
	K
	L
	SColon
	Quote
	unused1
	Enter
)

// Row 3.
const (
	LShift KeyIndex = 42 + iota
	Z
	X
	C
	V
	B
	N
	M
	Comma
	Dot
	Slash
	unused2
	unused3
	RShift
)

// Row 4.
const (
	LCtrl KeyIndex = 56 + iota
	LMeta
	LAlt
	unused4
	unused5
	Space
	unused6
	unused7
	unused8
	unused9
	RAlt
	FN
	Anne
	RCtrl
)

// Rows and Columns describe the physical matrix shape; ROWS*COLUMNS must
// equal the number of KeyIndex values (70).
const (
	Rows    = 5
	Columns = 14
	Count   = Rows * Columns
)
