package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"liquiddig/game"
)

// Input reads the mouse, touch screen and keyboard once per frame
type Input struct {
	touches []ebiten.TouchID
}

// NewInput creates a new input reader
func NewInput() *Input {
	return &Input{
		touches: make([]ebiten.TouchID, 0, 4),
	}
}

// Poll collects this frame's game actions
func (in *Input) Poll() game.Actions {
	var a game.Actions

	// Digging follows the held pointer every frame; the mesher coalesces
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.Dig, a.DigX, a.DigY = true, float64(x), float64(y)
	} else {
		in.touches = ebiten.AppendTouchIDs(in.touches[:0])
		if len(in.touches) > 0 {
			x, y := ebiten.TouchPosition(in.touches[0])
			a.Dig, a.DigX, a.DigY = true, float64(x), float64(y)
		}
	}

	a.TogglePause = inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	a.ToggleSilentPause = inpututil.IsKeyJustPressed(ebiten.KeyO)
	a.Confirm = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	a.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)

	return a
}

// PollDebug toggles debug flags from the function keys
func (in *Input) PollDebug(d *DebugState) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		d.ShowRegions = !d.ShowRegions
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		d.ShowStats = !d.ShowStats
	}
	d.ToggleProfile = inpututil.IsKeyJustPressed(ebiten.KeyF2)
}
