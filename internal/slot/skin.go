package slot

import "strings"

// LogicalControl names every clickable or skinnable surface on the
// control panel. Skins are resolved per (control, interaction state),
// never by raw asset filename.
type LogicalControl int

const (
	ControlSpin LogicalControl = iota
	ControlStop
	ControlBetOpen  // dashboard BET button, opens the bet popup
	ControlMaxBet   // dashboard MAX shortcut next to BET
	ControlAutoOpen // dashboard AUTO button, opens the auto popup
	ControlAutoStop // dashboard STOP AUTO button
	ControlBetClose
	ControlBetDec
	ControlBetInc
	ControlBetMax // MAX BET inside the bet popup
	ControlAutoClose
	ControlAutoCount // count denomination buttons inside the auto popup
	ControlAutoStart
	ControlQuickSpin
	ControlTurboSpin
	ControlBetPanel  // bet popup background
	ControlAutoPanel // auto popup background
	controlCount
)

var controlNames = [controlCount]string{
	"spin", "stop", "bet_open", "max_bet", "auto_open", "auto_stop",
	"bet_close", "bet_dec", "bet_inc", "bet_max", "auto_close",
	"auto_count", "auto_start", "quick_spin", "turbo_spin",
	"bet_panel", "auto_panel",
}

func (c LogicalControl) String() string {
	if c < 0 || c >= controlCount {
		return "unknown"
	}
	return controlNames[c]
}

// InteractionState is the visual state a control is rendered in.
type InteractionState int

const (
	StateNormal InteractionState = iota
	StatePressed
	StateDisabled
	StateSelected
	stateCount
)

var stateNames = [stateCount]string{"normal", "pressed", "disabled", "selected"}

func (s InteractionState) String() string {
	if s < 0 || s >= stateCount {
		return "unknown"
	}
	return stateNames[s]
}

// ButtonSkinRequest asks the resolver for the art of one control in one
// interaction state. Constructed per render, immutable.
type ButtonSkinRequest struct {
	Control LogicalControl
	State   InteractionState
}

// Skin is a resolved drawable. When Default is true no uploaded art
// matched and the renderer falls back to the built-in colored button.
type Skin struct {
	Stem    string // matched manifest stem, empty for the default skin
	Path    string // resource path from the manifest
	Default bool
}

// DefaultSkin is the built-in colored-button sentinel. Resolution never
// fails: missing art degrades to this, it is not an error.
var DefaultSkin = Skin{Default: true}

// stateChains holds the ordered candidate stems per interaction state.
type stateChains struct {
	normal   []string
	pressed  []string
	disabled []string
	selected []string
}

func (sc stateChains) chain(s InteractionState) []string {
	switch s {
	case StatePressed:
		return sc.pressed
	case StateDisabled:
		return sc.disabled
	case StateSelected:
		return sc.selected
	default:
		return sc.normal
	}
}

// skinTable is the static fallback table: for each control and state,
// the candidate stems tried in order against the manifest. The chains
// mirror the asset families the packaging templates ship, including the
// reused-asset shortcuts (bet max falling back to btn_auto_amt, auto
// stop reusing btn_stop skins); those are kept as-is.
var skinTable = [controlCount]stateChains{
	ControlSpin: {
		normal:   []string{"btn_spin"},
		pressed:  []string{"btn_spin_on", "btn_spin"},
		disabled: []string{"btn_spin_off", "btn_spin"},
		selected: []string{"btn_spin_on", "btn_spin"},
	},
	ControlStop: {
		normal:   []string{"btn_stop", "btn_stop_on"},
		pressed:  []string{"btn_stop_on", "btn_stop"},
		disabled: []string{"btn_stop_off", "btn_stop"},
		selected: []string{"btn_stop_on", "btn_stop"},
	},
	ControlBetOpen: {
		normal:   []string{"btn_bet"},
		pressed:  []string{"btn_bet_on", "btn_bet"},
		disabled: []string{"btn_bet_off", "btn_bet"},
		selected: []string{"btn_bet_on", "btn_bet"},
	},
	ControlMaxBet: {
		normal:   []string{"btn_bet_max", "btn_auto_amt"},
		pressed:  []string{"btn_bet_max", "btn_auto_amt_on", "btn_auto_amt"},
		disabled: []string{"btn_bet_max", "btn_auto_amt"},
		selected: []string{"btn_bet_max", "btn_auto_amt_on", "btn_auto_amt"},
	},
	ControlAutoOpen: {
		normal:   []string{"btn_auto"},
		pressed:  []string{"btn_auto_on", "btn_auto"},
		disabled: []string{"btn_auto_off", "btn_auto"},
		selected: []string{"btn_auto_on", "btn_auto"},
	},
	ControlAutoStop: {
		normal:   []string{"btn_auto_active", "btn_stop_on"},
		pressed:  []string{"btn_auto_active", "btn_stop_on"},
		disabled: []string{"btn_auto_active", "btn_stop_off"},
		selected: []string{"btn_auto_active", "btn_stop_on"},
	},
	ControlBetClose: {
		normal:   []string{"btn_menu_close"},
		pressed:  []string{"btn_close_on_menu", "btn_menu_close_on", "btn_menu_close"},
		disabled: []string{"btn_menu_close_off", "btn_menu_close"},
		selected: []string{"btn_close_on_menu", "btn_menu_close_on", "btn_menu_close"},
	},
	ControlBetDec: {
		normal:   []string{"btn_bet_minus"},
		pressed:  []string{"btn_bet_minus_on", "btn_bet_minus"},
		disabled: []string{"btn_bet_minus_off", "btn_bet_minus"},
		selected: []string{"btn_bet_minus_on", "btn_bet_minus"},
	},
	ControlBetInc: {
		normal:   []string{"btn_bet_plus"},
		pressed:  []string{"btn_bet_plus_on", "btn_bet_plus"},
		disabled: []string{"btn_bet_plus_off", "btn_bet_plus"},
		selected: []string{"btn_bet_plus_on", "btn_bet_plus"},
	},
	ControlBetMax: {
		normal:   []string{"btn_bet_max", "btn_auto_amt"},
		pressed:  []string{"btn_bet_max", "btn_auto_amt_on", "btn_auto_amt"},
		disabled: []string{"btn_bet_max", "btn_auto_amt"},
		selected: []string{"btn_bet_max", "btn_auto_amt_on", "btn_auto_amt"},
	},
	ControlAutoClose: {
		normal:   []string{"btn_menu_close"},
		pressed:  []string{"btn_menu_close_on", "btn_menu_close"},
		disabled: []string{"btn_menu_close_off", "btn_menu_close"},
		selected: []string{"btn_menu_close_on", "btn_menu_close"},
	},
	ControlAutoCount: {
		normal:   []string{"btn_auto_amt"},
		pressed:  []string{"btn_auto_amt_on", "btn_auto_amt"},
		disabled: []string{"btn_auto_amt", "btn_auto_amt_off"},
		selected: []string{"btn_auto_amt_on", "btn_auto_amt"},
	},
	ControlAutoStart: {
		normal:   []string{"btn_auto_spin"},
		pressed:  []string{"btn_auto_spin_on", "btn_auto_spin"},
		disabled: []string{"btn_auto_spin_off", "btn_auto_spin"},
		selected: []string{"btn_auto_spin_on", "btn_auto_spin"},
	},
	ControlQuickSpin: {
		normal:   []string{"btn_quick_off", "btn_speed_quick"},
		pressed:  []string{"btn_quick_on", "btn_speed_quick_on", "btn_speed_quick"},
		disabled: []string{"btn_quick_off", "btn_speed_quick"},
		selected: []string{"btn_quick_on", "btn_speed_quick_on", "btn_speed_quick"},
	},
	ControlTurboSpin: {
		normal:   []string{"btn_turbo_off", "btn_speed_turbo"},
		pressed:  []string{"btn_turbo", "btn_speed_turbo_on", "btn_speed_turbo"},
		disabled: []string{"btn_turbo_off", "btn_speed_turbo"},
		selected: []string{"btn_turbo", "btn_speed_turbo_on", "btn_speed_turbo"},
	},
	ControlBetPanel: {
		normal:   []string{"bet_popup_panel", "popup_panel_bg", "bet_panel", "panel_bet"},
		pressed:  []string{"bet_popup_panel", "popup_panel_bg", "bet_panel", "panel_bet"},
		disabled: []string{"bet_popup_panel", "popup_panel_bg", "bet_panel", "panel_bet"},
		selected: []string{"bet_popup_panel", "popup_panel_bg", "bet_panel", "panel_bet"},
	},
	ControlAutoPanel: {
		normal:   []string{"auto_popup_panel", "popup_panel_bg", "bet_popup_panel", "auto_panel"},
		pressed:  []string{"auto_popup_panel", "popup_panel_bg", "bet_popup_panel", "auto_panel"},
		disabled: []string{"auto_popup_panel", "popup_panel_bg", "bet_popup_panel", "auto_panel"},
		selected: []string{"auto_popup_panel", "popup_panel_bg", "bet_popup_panel", "auto_panel"},
	},
}

// AssetManifest maps uploaded-art stems (base filename without state
// suffix or extension, lowercased) to resource paths. Built once per
// session from the upload set; Replace handles re-upload events.
type AssetManifest struct {
	stems map[string]string
}

// NewManifest builds a manifest from a stem→path mapping. Keys are
// lowercased; a nil or empty mapping is valid and resolves everything
// to the default skin.
func NewManifest(stems map[string]string) *AssetManifest {
	m := &AssetManifest{stems: make(map[string]string, len(stems))}
	for k, v := range stems {
		m.stems[strings.ToLower(k)] = v
	}
	return m
}

// Replace installs or overwrites one stem's resource path.
func (m *AssetManifest) Replace(stem, path string) {
	m.stems[strings.ToLower(stem)] = path
}

// Len returns the number of uploaded stems.
func (m *AssetManifest) Len() int {
	return len(m.stems)
}

// Has reports whether the stem is present.
func (m *AssetManifest) Has(stem string) bool {
	_, ok := m.stems[strings.ToLower(stem)]
	return ok
}

// Resolve maps a (control, state) request to a drawable skin: the first
// candidate stem present in the manifest wins, and when none match the
// built-in default colored button is returned. Pure with respect to the
// current manifest contents.
func (m *AssetManifest) Resolve(req ButtonSkinRequest) Skin {
	if req.Control < 0 || req.Control >= controlCount {
		return DefaultSkin
	}
	for _, stem := range skinTable[req.Control].chain(req.State) {
		if path, ok := m.stems[stem]; ok {
			return Skin{Stem: stem, Path: path}
		}
	}
	return DefaultSkin
}
