package slot

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// stateColors is the default-skin palette, one fill per interaction state.
var stateColors = [stateCount]color.RGBA{
	StateNormal:   {R: 52, G: 104, B: 168, A: 255},
	StatePressed:  {R: 34, G: 70, B: 116, A: 255},
	StateDisabled: {R: 70, G: 74, B: 80, A: 255},
	StateSelected: {R: 196, G: 148, B: 32, A: 255},
}

var panelFill = color.RGBA{R: 24, G: 28, B: 38, A: 235}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 20, A: 255})

	a.drawReels(screen)

	for _, b := range a.buttons {
		a.drawButton(screen, b)
	}

	// Status strip.
	bet := a.panel.Bet()
	line := fmt.Sprintf("bet=%d  mode=%s  phase=%s", bet.Current(), a.panel.Engine().SpeedMode(), a.panel.Engine().Phase())
	if a.panel.Autoplay().Active() {
		line += fmt.Sprintf("  auto=%d", a.panel.Autoplay().Remaining())
	}
	ebitenutil.DebugPrintAt(screen, line, 16, 12)
	if msg := a.panel.Message(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 16, 28)
	}
	if a.statusNote != "" {
		ebitenutil.DebugPrintAt(screen, a.statusNote, 16, 44)
	}
	ebitenutil.DebugPrintAt(screen, "[space] spin/stop  [b] bet  [a] auto  [r] copy report", 16, ScreenHeight-16)
}

// drawReels renders placeholder reel windows: a band per reel that
// reads SPINNING until that reel has settled.
func (a *App) drawReels(screen *ebiten.Image) {
	eng := a.panel.Engine()
	n := eng.Reels()
	const top, h = 70, 320
	bw := (ScreenWidth - 120) / n
	for i := 0; i < n; i++ {
		x := 60 + i*bw
		fill := color.RGBA{R: 30, G: 34, B: 46, A: 255}
		if !eng.ReelStopped(i) {
			fill = color.RGBA{R: 46, G: 40, B: 70, A: 255}
		}
		vector.DrawFilledRect(screen, float32(x+4), top, float32(bw-8), h, fill, false)
		label := fmt.Sprintf("reel %d", i)
		if !eng.ReelStopped(i) {
			label = "spinning"
		}
		ebitenutil.DebugPrintAt(screen, label, x+12, top+h/2)
	}
}

func (a *App) drawButton(screen *ebiten.Image, b uiButton) {
	state := a.panel.StateFor(b.control)
	if b.control == ControlAutoCount {
		if b.count == a.panel.Autoplay().Selected() {
			state = StateSelected
		}
	}
	if state == StateNormal && b.control == a.pressed && b.control == a.hovered {
		state = StatePressed
	}

	var skin Skin
	if b.control == ControlAutoCount {
		skin = a.panel.CountSkin(b.count)
	} else {
		skin = a.panel.Manifest().Resolve(ButtonSkinRequest{Control: b.control, State: state})
	}

	if img := a.skinImage(skin); img != nil {
		op := &ebiten.DrawImageOptions{}
		bounds := img.Bounds()
		sx := float64(b.rect.Dx()) / float64(bounds.Dx())
		sy := float64(b.rect.Dy()) / float64(bounds.Dy())
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(float64(b.rect.Min.X), float64(b.rect.Min.Y))
		screen.DrawImage(img, op)
	} else {
		fill := stateColors[state]
		if b.control == ControlBetPanel || b.control == ControlAutoPanel {
			fill = panelFill
		}
		vector.DrawFilledRect(screen,
			float32(b.rect.Min.X), float32(b.rect.Min.Y),
			float32(b.rect.Dx()), float32(b.rect.Dy()), fill, false)
	}

	if b.label != "" {
		ebitenutil.DebugPrintAt(screen, b.label, b.rect.Min.X+8, b.rect.Min.Y+b.rect.Dy()/2-4)
	}

	// Bet panel body text.
	if b.control == ControlBetPanel {
		bet := a.panel.Bet()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BET: %d  (min %d / max %d)", bet.Current(), bet.Min(), bet.Max()),
			b.rect.Min.X+40, b.rect.Min.Y+40)
	}
	if b.control == ControlAutoPanel {
		ebitenutil.DebugPrintAt(screen, "AUTOPLAY", b.rect.Min.X+40, b.rect.Min.Y+24)
	}
}

// skinImage returns the decoded image for an uploaded skin, or nil for
// the default skin and for paths that failed to decode.
func (a *App) skinImage(skin Skin) *ebiten.Image {
	if skin.Default || skin.Path == "" {
		return nil
	}
	if img, ok := a.images[skin.Path]; ok {
		return img
	}
	if a.badPaths[skin.Path] {
		return nil
	}
	src, err := DecodeImage(skin.Path)
	if err != nil {
		a.badPaths[skin.Path] = true
		a.statusNote = "skin decode failed: " + skin.Stem
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	a.images[skin.Path] = img
	return img
}
