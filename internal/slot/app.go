package slot

import (
	"fmt"
	"image"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// Window dimensions. The panel layout is fixed-size; Layout always
// reports these regardless of the outside window.
const (
	ScreenWidth  = 960
	ScreenHeight = 540
)

// secondsPerTick is the virtual-clock step per Ebiten update.
const secondsPerTick = 1.0 / 60.0

// uiButton is one clickable region for the current frame. The set is
// rebuilt every update from the presenter's visibility answers.
type uiButton struct {
	control LogicalControl
	rect    image.Rectangle
	label   string
	count   int // denomination for count buttons, 0 otherwise
	onClick func()
}

// App is the interactive demo shell: it feeds wall-clock ticks into
// the virtual scheduler, translates clicks and keys into presenter
// events, and draws every control through the skin resolver.
type App struct {
	panel *ControlPanelPresenter
	sched *Scheduler
	log   *ControlLog

	buttons []uiButton
	pressed LogicalControl // control under a held click, or controlCount
	hovered LogicalControl

	images   map[string]*ebiten.Image // resolved skin path -> decoded image
	badPaths map[string]bool          // paths that failed to decode, not retried

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	statusNote string // transient note line (report copied, decode errors)
}

// NewApp builds the demo around an existing panel.
func NewApp(panel *ControlPanelPresenter, sched *Scheduler, log *ControlLog) *App {
	return &App{
		panel:    panel,
		sched:    sched,
		log:      log,
		pressed:  controlCount,
		hovered:  controlCount,
		images:   make(map[string]*ebiten.Image),
		badPaths: make(map[string]bool),
		prevKeys: make(map[ebiten.Key]bool),
	}
}

func (a *App) Update() error {
	a.sched.Advance(secondsPerTick)
	a.rebuildButtons()
	a.handleMouse()
	a.handleKeys()
	return nil
}

func (a *App) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// rebuildButtons lays out the frame's clickable controls. Dashboard
// row along the bottom; popup children in a centred panel.
func (a *App) rebuildButtons() {
	p := a.panel
	a.buttons = a.buttons[:0]

	add := func(c LogicalControl, r image.Rectangle, label string, fn func()) {
		if !p.ControlVisible(c) {
			return
		}
		a.buttons = append(a.buttons, uiButton{control: c, rect: r, label: label, onClick: fn})
	}

	// Dashboard row.
	const rowY = ScreenHeight - 90
	add(ControlBetOpen, image.Rect(60, rowY, 200, rowY+64), "BET", p.OnBetOpen)
	add(ControlMaxBet, image.Rect(220, rowY, 360, rowY+64), "MAX BET", p.OnBetMax)
	add(ControlSpin, image.Rect(410, rowY-10, 550, rowY+74), "SPIN", p.OnSpin)
	add(ControlStop, image.Rect(410, rowY-10, 550, rowY+74), "STOP", p.OnStop)
	add(ControlAutoOpen, image.Rect(600, rowY, 740, rowY+64), "AUTO", p.OnAutoOpen)
	add(ControlAutoStop, image.Rect(760, rowY, 900, rowY+64), "STOP AUTO", p.OnAutoStop)

	if p.BetPanelOpen() {
		panel := image.Rect(280, 140, 680, 360)
		add(ControlBetPanel, panel, "", nil)
		add(ControlBetClose, image.Rect(panel.Max.X-44, panel.Min.Y+8, panel.Max.X-12, panel.Min.Y+40), "X", p.OnBetClose)
		add(ControlBetDec, image.Rect(panel.Min.X+40, 230, panel.Min.X+104, 294), "-", p.OnBetDecrease)
		add(ControlBetInc, image.Rect(panel.Max.X-104, 230, panel.Max.X-40, 294), "+", p.OnBetIncrease)
		add(ControlBetMax, image.Rect(panel.Min.X+150, 300, panel.Max.X-150, 348), "MAX", p.OnBetMax)
	}

	if p.AutoPanelOpen() {
		panel := image.Rect(240, 110, 720, 420)
		add(ControlAutoPanel, panel, "", nil)
		add(ControlAutoClose, image.Rect(panel.Max.X-44, panel.Min.Y+8, panel.Max.X-12, panel.Min.Y+40), "X", p.OnAutoClose)

		counts := p.Autoplay().Counts()
		bw := 64
		x0 := panel.Min.X + 40
		for i, n := range counts {
			n := n
			r := image.Rect(x0+i*(bw+10), 180, x0+i*(bw+10)+bw, 180+48)
			if p.ControlVisible(ControlAutoCount) {
				a.buttons = append(a.buttons, uiButton{
					control: ControlAutoCount,
					rect:    r,
					label:   fmt.Sprintf("%d", n),
					count:   n,
					onClick: func() { p.OnAutoCountSelect(n) },
				})
			}
		}

		add(ControlQuickSpin, image.Rect(panel.Min.X+40, 250, panel.Min.X+200, 298), "QUICK", p.OnQuickSpin)
		add(ControlTurboSpin, image.Rect(panel.Max.X-200, 250, panel.Max.X-40, 298), "TURBO", p.OnTurboSpin)
		add(ControlAutoStart, image.Rect(panel.Min.X+140, 330, panel.Max.X-140, 394), "START", p.OnAutoStart)
	}
}

func (a *App) handleMouse() {
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx, my)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	a.hovered = controlCount
	hit := -1
	// Later buttons draw on top, so hit-test back to front.
	for i := len(a.buttons) - 1; i >= 0; i-- {
		if a.buttons[i].onClick != nil && pt.In(a.buttons[i].rect) {
			hit = i
			a.hovered = a.buttons[i].control
			break
		}
	}

	if down && !a.prevMouseLeft {
		if hit >= 0 {
			a.pressed = a.buttons[hit].control
			a.buttons[hit].onClick()
		}
	}
	if !down {
		a.pressed = controlCount
	}
	a.prevMouseLeft = down
}

func (a *App) handleKeys() {
	keys := map[ebiten.Key]bool{
		ebiten.KeySpace: ebiten.IsKeyPressed(ebiten.KeySpace),
		ebiten.KeyB:     ebiten.IsKeyPressed(ebiten.KeyB),
		ebiten.KeyA:     ebiten.IsKeyPressed(ebiten.KeyA),
		ebiten.KeyR:     ebiten.IsKeyPressed(ebiten.KeyR),
	}

	// Space: spin, or stop while reels are moving.
	if keys[ebiten.KeySpace] && !a.prevKeys[ebiten.KeySpace] {
		if ShowsStopControl(a.panel.Engine().Phase()) {
			a.panel.OnStop()
		} else {
			a.panel.OnSpin()
		}
	}
	if keys[ebiten.KeyB] && !a.prevKeys[ebiten.KeyB] {
		if a.panel.BetPanelOpen() {
			a.panel.OnBetClose()
		} else {
			a.panel.OnBetOpen()
		}
	}
	if keys[ebiten.KeyA] && !a.prevKeys[ebiten.KeyA] {
		if a.panel.AutoPanelOpen() {
			a.panel.OnAutoClose()
		} else {
			a.panel.OnAutoOpen()
		}
	}
	// R: copy the control report for pasting into a bug ticket.
	if keys[ebiten.KeyR] && !a.prevKeys[ebiten.KeyR] {
		report := ControlReport(a.log, 200)
		if err := clipboard.WriteAll(report); err != nil {
			a.statusNote = "report copy failed: " + err.Error()
		} else {
			a.statusNote = "report copied to clipboard"
		}
	}

	a.prevKeys = keys
}
