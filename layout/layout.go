// Package layout holds the compile-time layer stack: an ordered sequence of
// Layout (one Action per keyindex.KeyIndex), indexed by layer number.
//
//	,-----------------------------------------------------------------------------.
//	|Esc   |  1|   2|   3|   4|   5|   6|   7|   8|   9|   0|   -|   = |   Backsp  |
//	|-----------------------------------------------------------------------------|
//	|Tab    |  Q  |  W  |  E  |  R  |  T  |  Y  |  U  |  I|   O|  P|  [|  ]|  \    |
//	|-----------------------------------------------------------------------------|
//	|Caps         |    A|    S|    D|    F|   G|  H|  J|  K|  L|  ;|  '|   #|Enter|
//	|-----------------------------------------------------------------------------|
//	|Shift      |    Z|     X|    C|     V|  B|  N|  M|  ,|  .|  /|     Shift     |
//	|-----------------------------------------------------------------------------|
//	|Ctrl |Meta | Alt |               Space                |Alt | Fn  | Anne |Ctrl|
//	`-----------------------------------------------------------------------------'
package layout

import (
	"github.com/keyboardcore/firmware/action"
	"github.com/keyboardcore/firmware/keycode"
	"github.com/keyboardcore/firmware/keyindex"
)

// Layer indices into LAYERS.
const (
	LayerBase uint8 = iota
	LayerFn
	LayerLed
	LayerBt
)

// LayerBT is the layer index used by Keyboard to track Bluetooth-overlay
// entry/exit (spec.md names it LAYER_BT).
const LayerBT = LayerBt

// Layout is one full layer: one Action per physical matrix cell.
type Layout [keyindex.Count]action.Action

var tr = action.ActionTransparent

func key(c keycode.KeyCode) action.Action { return action.NewKey(c) }

// base is the always-active layer (layer 0). It must contain no
// Transparent entries so get_action's fallthrough always resolves (I3).
var base = Layout{
	keyindex.Escape: key(keycode.Escape), keyindex.N1: key(keycode.N1), keyindex.N2: key(keycode.N2),
	keyindex.N3: key(keycode.N3), keyindex.N4: key(keycode.N4), keyindex.N5: key(keycode.N5),
	keyindex.N6: key(keycode.N6), keyindex.N7: key(keycode.N7), keyindex.N8: key(keycode.N8),
	keyindex.N9: key(keycode.N9), keyindex.N0: key(keycode.N0), keyindex.Minus: key(keycode.Minus),
	keyindex.Equal: key(keycode.Equal), keyindex.BSpace: key(keycode.BSpace),

	keyindex.Tab: key(keycode.Tab), keyindex.Q: key(keycode.Q), keyindex.W: key(keycode.W),
	keyindex.E: key(keycode.E), keyindex.R: key(keycode.R), keyindex.T: key(keycode.T),
	keyindex.Y: key(keycode.Y), keyindex.U: key(keycode.U), keyindex.I: key(keycode.I),
	keyindex.O: key(keycode.O), keyindex.P: key(keycode.P), keyindex.LBracket: key(keycode.LBracket),
	keyindex.RBracket: key(keycode.RBracket), keyindex.BSlash: key(keycode.BSlash),

	keyindex.Capslock: key(keycode.Capslock), keyindex.A: key(keycode.A), keyindex.S: key(keycode.S),
	keyindex.D: key(keycode.D), keyindex.F: key(keycode.F), keyindex.G: key(keycode.G),
	keyindex.H: key(keycode.H), keyindex.J: key(keycode.J), keyindex.K: key(keycode.K),
	keyindex.L: key(keycode.L), keyindex.SColon: key(keycode.SColon), keyindex.Quote: key(keycode.Quote),
	keyindex.Enter: key(keycode.Enter),

	keyindex.LShift: key(keycode.LShift), keyindex.Z: key(keycode.Z), keyindex.X: key(keycode.X),
	keyindex.C: key(keycode.C), keyindex.V: key(keycode.V), keyindex.B: key(keycode.B),
	keyindex.N: key(keycode.N), keyindex.M: key(keycode.M), keyindex.Comma: key(keycode.Comma),
	keyindex.Dot: key(keycode.Dot), keyindex.Slash: key(keycode.Slash),
	keyindex.RShift: key(keycode.RShift),

	keyindex.LCtrl: key(keycode.LCtrl), keyindex.LMeta: key(keycode.LMeta), keyindex.LAlt: key(keycode.LAlt),
	keyindex.Space: key(keycode.Space),
	keyindex.RAlt:  key(keycode.RAlt), keyindex.FN: action.NewLayerMomentary(LayerFn),
	keyindex.Anne: action.NewLayerMomentary(LayerLed), keyindex.RCtrl: key(keycode.RCtrl),
}

// fn is the function layer, reached by holding FN: F1-F12 on the number
// row, Reset on Escape.
// B is mapped to enable the Bluetooth overlay layer for the duration of the
// scenario documented in spec.md §8 scenario 4.
var fn = Layout{
	keyindex.Escape: action.ActionReset,
	keyindex.N1:     key(keycode.F1), keyindex.N2: key(keycode.F2), keyindex.N3: key(keycode.F3),
	keyindex.N4: key(keycode.F4), keyindex.N5: key(keycode.F5), keyindex.N6: key(keycode.F6),
	keyindex.N7: key(keycode.F7), keyindex.N8: key(keycode.F8), keyindex.N9: key(keycode.F9),
	keyindex.N0:    key(keycode.F10),
	keyindex.Minus: key(keycode.F11), keyindex.Equal: key(keycode.F12),
	keyindex.B: action.NewLayerOn(LayerBt),
}

// led is the LED-control layer (FN2/Anne).
var led = Layout{
	keyindex.Q: action.ActionLedNextTheme,
	keyindex.W: action.ActionLedNextBrightness,
	keyindex.E: action.ActionLedNextAnimationSpeed,
	keyindex.A: action.ActionLedOn,
	keyindex.S: action.ActionLedOff,
	keyindex.D: action.ActionLedToggle,
}

// bt is the Bluetooth-control overlay layer.
var bt = Layout{
	keyindex.N1: action.NewBtConnectHost(1), keyindex.N2: action.NewBtConnectHost(2),
	keyindex.N3: action.NewBtConnectHost(3), keyindex.N4: action.NewBtConnectHost(4),
	keyindex.Q: action.NewBtSaveHost(1), keyindex.W: action.NewBtSaveHost(2),
	keyindex.E: action.NewBtSaveHost(3), keyindex.R: action.NewBtSaveHost(4),
	keyindex.A: action.NewBtDeleteHost(1), keyindex.S: action.NewBtDeleteHost(2),
	keyindex.D: action.NewBtDeleteHost(3), keyindex.F: action.NewBtDeleteHost(4),
	keyindex.LCtrl:  action.ActionBtHostListQuery,
	keyindex.BSpace: action.ActionBtOff,
	keyindex.Equal:  action.ActionBtOn,
	keyindex.Minus:  action.ActionBtToggleLegacyMode,
	keyindex.B:      action.ActionBtBroadcast,
}

// fillTransparent sets every cell of l whose index is not in assigned to
// Transparent; only the cells listed in assigned keep the actions given in
// l's literal above.
func fillTransparent(l *Layout, assigned map[keyindex.KeyIndex]bool) {
	for i := range l {
		if !assigned[keyindex.KeyIndex(i)] {
			l[i] = tr
		}
	}
}

func init() {
	assignedFn := map[keyindex.KeyIndex]bool{
		keyindex.Escape: true,
		keyindex.N1:     true, keyindex.N2: true, keyindex.N3: true, keyindex.N4: true,
		keyindex.N5: true, keyindex.N6: true, keyindex.N7: true, keyindex.N8: true,
		keyindex.N9: true, keyindex.N0: true, keyindex.Minus: true, keyindex.Equal: true,
		keyindex.B: true,
	}
	fillTransparent(&fn, assignedFn)

	assignedLed := map[keyindex.KeyIndex]bool{
		keyindex.Q: true, keyindex.W: true, keyindex.E: true,
		keyindex.A: true, keyindex.S: true, keyindex.D: true,
	}
	fillTransparent(&led, assignedLed)

	assignedBt := map[keyindex.KeyIndex]bool{
		keyindex.N1: true, keyindex.N2: true, keyindex.N3: true, keyindex.N4: true,
		keyindex.Q: true, keyindex.W: true, keyindex.E: true, keyindex.R: true,
		keyindex.A: true, keyindex.S: true, keyindex.D: true, keyindex.F: true,
		keyindex.LCtrl: true, keyindex.BSpace: true, keyindex.Equal: true,
		keyindex.Minus: true, keyindex.B: true,
	}
	fillTransparent(&bt, assignedBt)
}

// LAYERS is the ordered layer stack: BASE, FN, FN2/LED, BT.
var LAYERS = [4]*Layout{&base, &fn, &led, &bt}
