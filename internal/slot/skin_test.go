package slot

import "testing"

// --- Skin resolution ---

func TestResolve_FirstCandidateWins(t *testing.T) {
	m := NewManifest(map[string]string{
		"btn_spin_on": "skins/btn_spin_on.png",
		"btn_spin":    "skins/btn_spin.png",
	})

	got := m.Resolve(ButtonSkinRequest{Control: ControlSpin, State: StatePressed})
	if got.Stem != "btn_spin_on" {
		t.Fatalf("pressed spin should prefer btn_spin_on, got %q", got.Stem)
	}
}

func TestResolve_FallbackToBaseStem(t *testing.T) {
	// Only the base art is uploaded: every state of the spin button
	// must degrade to it rather than to the default skin.
	m := NewManifest(map[string]string{"btn_spin": "skins/btn_spin.png"})

	for _, state := range []InteractionState{StateNormal, StatePressed, StateDisabled, StateSelected} {
		got := m.Resolve(ButtonSkinRequest{Control: ControlSpin, State: state})
		if got.Default || got.Stem != "btn_spin" {
			t.Fatalf("state %s should fall back to btn_spin, got %+v", state, got)
		}
	}
}

func TestResolve_EmptyManifestYieldsDefault(t *testing.T) {
	m := NewManifest(nil)
	for c := LogicalControl(0); c < controlCount; c++ {
		for s := InteractionState(0); s < stateCount; s++ {
			got := m.Resolve(ButtonSkinRequest{Control: c, State: s})
			if !got.Default {
				t.Fatalf("control %s state %s resolved %q from an empty manifest", c, s, got.Stem)
			}
		}
	}
}

func TestResolve_BetMaxBorrowsAutoCountArt(t *testing.T) {
	// The packaged asset families reuse the auto-count button art for
	// MAX BET when no dedicated btn_bet_max upload exists.
	m := NewManifest(map[string]string{"btn_auto_amt": "skins/btn_auto_amt.png"})

	got := m.Resolve(ButtonSkinRequest{Control: ControlBetMax, State: StateNormal})
	if got.Stem != "btn_auto_amt" {
		t.Fatalf("bet max without dedicated art should borrow btn_auto_amt, got %+v", got)
	}

	// A dedicated upload takes priority again.
	m.Replace("btn_bet_max", "skins/btn_bet_max.png")
	got = m.Resolve(ButtonSkinRequest{Control: ControlBetMax, State: StateNormal})
	if got.Stem != "btn_bet_max" {
		t.Fatalf("dedicated btn_bet_max should win once uploaded, got %q", got.Stem)
	}
}

func TestResolve_AutoStopReusesStopArt(t *testing.T) {
	m := NewManifest(map[string]string{"btn_stop_on": "skins/btn_stop_on.png"})
	got := m.Resolve(ButtonSkinRequest{Control: ControlAutoStop, State: StateNormal})
	if got.Stem != "btn_stop_on" {
		t.Fatalf("auto stop should reuse btn_stop_on, got %+v", got)
	}
}

func TestResolve_DeterministicAcrossCalls(t *testing.T) {
	m := NewManifest(map[string]string{
		"btn_bet":     "a.png",
		"btn_bet_on":  "b.png",
		"btn_bet_off": "c.png",
	})
	req := ButtonSkinRequest{Control: ControlBetOpen, State: StateDisabled}
	first := m.Resolve(req)
	for i := 0; i < 10; i++ {
		if got := m.Resolve(req); got != first {
			t.Fatalf("resolution is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestManifest_CaseInsensitiveStems(t *testing.T) {
	m := NewManifest(map[string]string{"BTN_SPIN": "skins/BTN_SPIN.PNG"})
	if !m.Has("btn_spin") {
		t.Fatal("stems should match case-insensitively")
	}
	got := m.Resolve(ButtonSkinRequest{Control: ControlSpin, State: StateNormal})
	if got.Default {
		t.Fatal("upper-cased upload should still resolve")
	}
}

func TestResolve_OutOfRangeControl(t *testing.T) {
	m := NewManifest(map[string]string{"btn_spin": "a.png"})
	got := m.Resolve(ButtonSkinRequest{Control: controlCount + 3})
	if !got.Default {
		t.Fatalf("out-of-range control should resolve to the default skin, got %+v", got)
	}
}
