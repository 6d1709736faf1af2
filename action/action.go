// Package action defines the tagged-union action type every layout cell
// resolves to.
package action

import "github.com/keyboardcore/firmware/keycode"

// Kind identifies which variant of Action is populated. Action is kept as a
// flat {Kind, Arg} pair instead of a Go interface so that layout tables are
// plain array literals with no heap-allocated, boxed variants.
type Kind uint8

const (
	Nop Kind = iota
	Transparent
	Reset
	Key
	LayerMomentary
	LayerToggle
	LayerOn
	LayerOff
	LedOn
	LedOff
	LedToggle
	LedNextTheme
	LedNextBrightness
	LedNextAnimationSpeed
	LedTheme
	BtOn
	BtOff
	BtSaveHost
	BtConnectHost
	BtDeleteHost
	BtBroadcast
	BtLegacyMode
	BtToggleLegacyMode
	BtHostListQuery
	// UsbToggle flips Keyboard.send_usb_report; not present in spec.md's
	// Action enumeration but required for that field to be reachable
	// (see original_source/src/keyboard.rs).
	UsbToggle
)

// Action is the value every layout cell holds. Arg carries the variant's
// single byte of payload: a keycode.KeyCode for Key, a layer number for the
// Layer* variants, a theme id for LedTheme, a host slot for the Bt*Host
// variants, or 0/1 for BtLegacyMode.
type Action struct {
	Kind Kind
	Arg  uint8
}

// A convenience constructor set, mirroring the Rust enum's tuple variants.

func NewKey(c keycode.KeyCode) Action       { return Action{Kind: Key, Arg: uint8(c)} }
func NewLayerMomentary(layer uint8) Action  { return Action{Kind: LayerMomentary, Arg: layer} }
func NewLayerToggle(layer uint8) Action     { return Action{Kind: LayerToggle, Arg: layer} }
func NewLayerOn(layer uint8) Action         { return Action{Kind: LayerOn, Arg: layer} }
func NewLayerOff(layer uint8) Action        { return Action{Kind: LayerOff, Arg: layer} }
func NewLedTheme(theme uint8) Action        { return Action{Kind: LedTheme, Arg: theme} }
func NewBtSaveHost(host uint8) Action       { return Action{Kind: BtSaveHost, Arg: host} }
func NewBtConnectHost(host uint8) Action    { return Action{Kind: BtConnectHost, Arg: host} }
func NewBtDeleteHost(host uint8) Action     { return Action{Kind: BtDeleteHost, Arg: host} }

func NewBtLegacyMode(on bool) Action {
	var v uint8
	if on {
		v = 1
	}
	return Action{Kind: BtLegacyMode, Arg: v}
}

// Simple (argumentless) actions, usable directly as composite literals.
var (
	ActionNop                   = Action{Kind: Nop}
	ActionTransparent           = Action{Kind: Transparent}
	ActionReset                 = Action{Kind: Reset}
	ActionLedOn                 = Action{Kind: LedOn}
	ActionLedOff                = Action{Kind: LedOff}
	ActionLedToggle             = Action{Kind: LedToggle}
	ActionLedNextTheme          = Action{Kind: LedNextTheme}
	ActionLedNextBrightness     = Action{Kind: LedNextBrightness}
	ActionLedNextAnimationSpeed = Action{Kind: LedNextAnimationSpeed}
	ActionBtOn                  = Action{Kind: BtOn}
	ActionBtOff                 = Action{Kind: BtOff}
	ActionBtBroadcast           = Action{Kind: BtBroadcast}
	ActionBtToggleLegacyMode    = Action{Kind: BtToggleLegacyMode}
	ActionBtHostListQuery       = Action{Kind: BtHostListQuery}
	ActionUsbToggle             = Action{Kind: UsbToggle}
)

// Code returns the Key variant's keycode. Only meaningful when a.Kind == Key.
func (a Action) Code() keycode.KeyCode {
	return keycode.KeyCode(a.Arg)
}

// Layer returns the layer number for a Layer* variant.
func (a Action) Layer() uint8 {
	return a.Arg
}

// Bool returns the boolean payload of BtLegacyMode.
func (a Action) Bool() bool {
	return a.Arg != 0
}
