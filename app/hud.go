package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"liquiddig/game"
)

var (
	panelColor  = color.RGBA{0, 0, 0, 170}
	shadeColor  = color.RGBA{0, 0, 0, 90}
	sizzleColor = color.RGBA{200, 60, 220, 255}
	flowColor   = color.RGBA{220, 240, 255, 255}
)

// HUD draws the score line, cues and the pause and win panels
type HUD struct {
	width, height int
}

// NewHUD creates a HUD for a field of the given size
func NewHUD(width, height int) *HUD {
	return &HUD{width: width, height: height}
}

// Draw renders the HUD on top of the field
func (h *HUD) Draw(screen *ebiten.Image, g *game.Game) {
	s := g.Session()
	title := g.Level().Title(g.LevelIndex())

	text.Draw(screen, fmt.Sprintf("%s (%d/%d)", title, g.LevelIndex()+1, g.LevelCount()), basicfont.Face7x13, 10, 20, color.White)
	text.Draw(screen, fmt.Sprintf("Water: %d / %d", s.Collected, g.GoalAmount()), basicfont.Face7x13, 10, 40, color.White)

	fb := g.Feedback()
	y := 60
	if fb.Sizzling {
		text.Draw(screen, "Sizzle! Water is being contaminated", basicfont.Face7x13, 10, y, sizzleColor)
		y += 20
	}
	if fb.Rushing.Water || fb.Rushing.Toxic {
		label := "Rushing water"
		switch {
		case fb.Rushing.Water && fb.Rushing.Toxic:
			label = "Rushing water and toxic liquid"
		case fb.Rushing.Toxic:
			label = "Rushing toxic liquid"
		}
		text.Draw(screen, label, basicfont.Face7x13, 10, y, flowColor)
	}

	switch g.State() {
	case game.StatePaused:
		// A silent pause belongs to some other panel, so no overlay
		if g.PauseMode() == game.PauseOverlay {
			h.panel(screen, "Paused", "Press P or Space to resume")
		}
	case game.StateLevelWon:
		h.panel(screen, "Level complete!", fmt.Sprintf("Collected %d of %d. Press Enter for the next level", s.Collected, g.GoalAmount()))
	case game.StateFinalWon:
		h.panel(screen, "You finished every level!", "Press Enter to play again")
	}
}

// DrawStats prints debug counters in the top right corner
func (h *HUD) DrawStats(screen *ebiten.Image, g *game.Game) {
	s := g.Session()
	x := h.width - 200
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), x, 5)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d", g.World().ParticleCount()), x, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Regions: %d Rebuilds: %d", len(g.Mesher().Regions()), g.Mesher().Rebuilds()), x, 35)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Drained: %d Absorbed: %d", s.Drained, s.Absorbed), x, 50)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d State: %s", s.Frames, g.State()), x, 65)
}

// panel draws a centred box with a heading and one line of help
func (h *HUD) panel(screen *ebiten.Image, heading, help string) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.width), float32(h.height), shadeColor, false)

	w, ht := 460, 90
	x := (h.width - w) / 2
	y := (h.height - ht) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(ht), panelColor, false)

	text.Draw(screen, heading, basicfont.Face7x13, x+20, y+35, color.White)
	text.Draw(screen, help, basicfont.Face7x13, x+20, y+65, color.White)
}
