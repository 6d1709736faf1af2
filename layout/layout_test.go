package layout

import (
	"testing"

	"github.com/keyboardcore/firmware/action"
	"github.com/keyboardcore/firmware/keyindex"
)

// TestBaseHasNoTransparent checks the invariant that BASE must always
// resolve a concrete action (I3 in spec terms): fallthrough has nowhere
// further to go once it reaches BASE.
func TestBaseHasNoTransparent(t *testing.T) {
	for key := keyindex.KeyIndex(0); int(key) < keyindex.Count; key++ {
		if base[key].Kind == action.Transparent {
			t.Errorf("base[%d] is Transparent", key)
		}
	}
}

func TestLayersOrdering(t *testing.T) {
	if LAYERS[LayerBase] != &base || LAYERS[LayerFn] != &fn || LAYERS[LayerLed] != &led || LAYERS[LayerBt] != &bt {
		t.Fatalf("LAYERS does not match its named layer variables")
	}
}

func TestFnResetOnEscape(t *testing.T) {
	if fn[keyindex.Escape] != action.ActionReset {
		t.Errorf("fn[Escape] = %+v, want ActionReset", fn[keyindex.Escape])
	}
}

func TestUnassignedCellsAreTransparent(t *testing.T) {
	if fn[keyindex.A].Kind != action.Transparent {
		t.Errorf("fn[A] should default to Transparent, got %+v", fn[keyindex.A])
	}

	if led[keyindex.B].Kind != action.Transparent {
		t.Errorf("led[B] should default to Transparent, got %+v", led[keyindex.B])
	}
}
