package slot

import (
	"fmt"

	"github.com/google/uuid"
)

// ControlPanelPresenter is the façade between discrete UI events and
// the bet/spin/autoplay components. It owns the popup open/close state
// and answers skin and visibility queries for every control; it holds
// no game state of its own beyond the popups and the status message.
type ControlPanelPresenter struct {
	sched    *Scheduler
	log      *ControlLog
	manifest *AssetManifest

	bet    *BetController
	engine *SpinEngine
	auto   *AutoplayController

	betPanelOpen  bool
	autoPanelOpen bool
	message       string
}

// NewControlPanel wires the full runtime from a validated config. The
// manifest may be empty; every control then renders the default skin.
func NewControlPanel(cfg Config, manifest *AssetManifest, sched *Scheduler, log *ControlLog) (*ControlPanelPresenter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if manifest == nil {
		manifest = NewManifest(nil)
	}
	engine, err := NewSpinEngine(cfg, sched, log)
	if err != nil {
		return nil, err
	}
	p := &ControlPanelPresenter{
		sched:    sched,
		log:      log,
		manifest: manifest,
		bet:      NewBetController(NewBetState(cfg.BetMin, cfg.BetMax, cfg.BetMin, cfg.BetLevels), sched, log),
		engine:   engine,
		auto:     NewAutoplayController(cfg, engine, sched, log),
		message:  "Ready",
	}
	engine.OnCycleEnd(func(uuid.UUID) { p.refreshMessage() })
	return p, nil
}

// Bet exposes the bet controller.
func (p *ControlPanelPresenter) Bet() *BetController { return p.bet }

// Engine exposes the spin engine.
func (p *ControlPanelPresenter) Engine() *SpinEngine { return p.engine }

// Autoplay exposes the autoplay controller.
func (p *ControlPanelPresenter) Autoplay() *AutoplayController { return p.auto }

// Manifest exposes the skin manifest.
func (p *ControlPanelPresenter) Manifest() *AssetManifest { return p.manifest }

// Message returns the status line shown under the reels.
func (p *ControlPanelPresenter) Message() string { return p.message }

// busy mirrors the original dashboard's guard: adjustment and popup
// handlers are inert while a spin cycle is in any non-idle phase.
func (p *ControlPanelPresenter) busy() bool {
	return p.engine.Phase() != PhaseIdle
}

// --- Input handlers, one per clickable control ---

// OnSpin closes both popups and requests a cycle.
func (p *ControlPanelPresenter) OnSpin() {
	p.closeBetPanel()
	p.closeAutoPanel()
	if p.engine.Spin() {
		p.message = ""
	}
}

// OnStop forwards a forced-stop request; inert outside reel motion.
func (p *ControlPanelPresenter) OnStop() {
	if p.engine.Stop() {
		p.message = "Stopping..."
	}
}

// OnBetOpen opens the bet popup, closing the auto popup first; the two
// are never shown together.
func (p *ControlPanelPresenter) OnBetOpen() {
	if p.busy() {
		return
	}
	p.closeAutoPanel()
	p.betPanelOpen = true
	p.log.Add(p.sched.Now(), "panel", "bet_open", "", 0)
}

// OnBetClose hides the bet popup. The bet value stays as adjusted.
func (p *ControlPanelPresenter) OnBetClose() {
	p.closeBetPanel()
}

func (p *ControlPanelPresenter) OnBetIncrease() {
	if p.busy() {
		return
	}
	p.bet.Increase()
}

func (p *ControlPanelPresenter) OnBetDecrease() {
	if p.busy() {
		return
	}
	p.bet.Decrease()
}

func (p *ControlPanelPresenter) OnBetMax() {
	if p.busy() {
		return
	}
	p.bet.SetMax()
}

// OnAutoOpen opens the autoplay popup, closing the bet popup first.
func (p *ControlPanelPresenter) OnAutoOpen() {
	if p.busy() {
		return
	}
	p.closeBetPanel()
	p.autoPanelOpen = true
	p.log.Add(p.sched.Now(), "panel", "auto_open", "", 0)
}

// OnAutoClose hides the autoplay popup. A running session keeps
// running; closing a popup never cancels anything.
func (p *ControlPanelPresenter) OnAutoClose() {
	p.closeAutoPanel()
}

// OnAutoCountSelect binds the count denomination buttons.
func (p *ControlPanelPresenter) OnAutoCountSelect(n int) {
	p.auto.SelectCount(n)
}

func (p *ControlPanelPresenter) OnQuickSpin() {
	p.auto.SetSpeedMode(SpeedQuick)
}

func (p *ControlPanelPresenter) OnTurboSpin() {
	p.auto.SetSpeedMode(SpeedTurbo)
}

// OnAutoStart launches a session with the selected count (the first
// configured denomination when nothing was picked) and the current
// speed mode, then closes the popup.
func (p *ControlPanelPresenter) OnAutoStart() {
	if p.busy() {
		return
	}
	count := p.auto.Selected()
	if count <= 0 && len(p.auto.Counts()) > 0 {
		count = p.auto.Counts()[0]
	}
	p.closeAutoPanel()
	if p.auto.Start(count, p.engine.SpeedMode()) {
		p.message = ""
	}
}

// OnAutoStop flags the session; the in-flight cycle finishes first.
func (p *ControlPanelPresenter) OnAutoStop() {
	p.auto.Stop()
	p.message = "Auto stopped"
}

func (p *ControlPanelPresenter) closeBetPanel() {
	if !p.betPanelOpen {
		return
	}
	p.betPanelOpen = false
	p.log.Add(p.sched.Now(), "panel", "bet_close", "", 0)
}

func (p *ControlPanelPresenter) closeAutoPanel() {
	if !p.autoPanelOpen {
		return
	}
	p.autoPanelOpen = false
	p.log.Add(p.sched.Now(), "panel", "auto_close", "", 0)
}

func (p *ControlPanelPresenter) refreshMessage() {
	if p.auto.Active() {
		p.message = fmt.Sprintf("Auto: %d left", p.auto.Remaining())
		return
	}
	p.message = "Ready"
}

// --- Skin/visibility queries, pulled by the renderer every frame ---

// BetPanelOpen reports the bet popup visibility.
func (p *ControlPanelPresenter) BetPanelOpen() bool { return p.betPanelOpen }

// AutoPanelOpen reports the autoplay popup visibility.
func (p *ControlPanelPresenter) AutoPanelOpen() bool { return p.autoPanelOpen }

// ControlVisible answers whether a control is drawn at all. The
// Spin↔Stop pair swaps purely on phase; popup children follow their
// panel; the dashboard STOP AUTO shows only while a session exists.
func (p *ControlPanelPresenter) ControlVisible(c LogicalControl) bool {
	switch c {
	case ControlSpin:
		return !ShowsStopControl(p.engine.Phase())
	case ControlStop:
		return ShowsStopControl(p.engine.Phase())
	case ControlAutoStop:
		return p.auto.Active()
	case ControlBetPanel, ControlBetClose, ControlBetDec, ControlBetInc, ControlBetMax:
		return p.betPanelOpen
	case ControlAutoPanel, ControlAutoClose, ControlAutoCount, ControlAutoStart, ControlQuickSpin, ControlTurboSpin:
		return p.autoPanelOpen
	default:
		return true
	}
}

// StateFor derives a control's interaction state from the current
// runtime state: disabled from the busy/visibility rules, selected from
// the speed mode. Same runtime state in, same answer out.
func (p *ControlPanelPresenter) StateFor(c LogicalControl) InteractionState {
	overlay := p.betPanelOpen || p.autoPanelOpen
	vis := p.bet.Visibility()
	switch c {
	case ControlSpin:
		if p.busy() || overlay {
			return StateDisabled
		}
	case ControlBetOpen:
		if p.busy() || p.autoPanelOpen {
			return StateDisabled
		}
	case ControlAutoOpen:
		if p.busy() || p.betPanelOpen {
			return StateDisabled
		}
	case ControlBetDec:
		if !vis.DecEnabled {
			return StateDisabled
		}
	case ControlBetInc:
		if !vis.IncEnabled {
			return StateDisabled
		}
	case ControlMaxBet:
		if p.busy() || overlay || !vis.MaxEnabled {
			return StateDisabled
		}
	case ControlBetMax:
		if !vis.MaxEnabled {
			return StateDisabled
		}
	case ControlAutoStart:
		if p.auto.Selected() <= 0 {
			return StateDisabled
		}
	case ControlAutoStop:
		if !p.auto.Active() {
			return StateDisabled
		}
	case ControlQuickSpin:
		if p.engine.SpeedMode() == SpeedQuick {
			return StateSelected
		}
	case ControlTurboSpin:
		if p.engine.SpeedMode() == SpeedTurbo {
			return StateSelected
		}
	}
	return StateNormal
}

// SkinFor resolves a control's current skin through the manifest.
func (p *ControlPanelPresenter) SkinFor(c LogicalControl) Skin {
	return p.manifest.Resolve(ButtonSkinRequest{Control: c, State: p.StateFor(c)})
}

// CountSkin resolves one count denomination button; the selected
// denomination renders in the selected state.
func (p *ControlPanelPresenter) CountSkin(n int) Skin {
	state := StateNormal
	if n == p.auto.Selected() {
		state = StateSelected
	}
	return p.manifest.Resolve(ButtonSkinRequest{Control: ControlAutoCount, State: state})
}
