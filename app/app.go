// Package app hosts the game in an ebiten window.
package app

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"liquiddig/game"
)

// App implements ebiten.Game around a game.Game
type App struct {
	game     *game.Game
	config   game.Config
	renderer *Renderer
	hud      *HUD
	input    *Input
	debug    DebugState
	profiler *game.Profiler
	logger   *log.Logger
}

// New creates an App for g. profileDir is where F2 captures go.
func New(g *game.Game, profileDir string, logger *log.Logger) *App {
	cfg := g.Config()
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &App{
		game:     g,
		config:   cfg,
		renderer: NewRenderer(NewCamera(cfg), cfg),
		hud:      NewHUD(cfg.FieldWidth, cfg.FieldHeight),
		input:    NewInput(),
		profiler: game.NewProfiler(profileDir),
		logger:   logger,
	}
}

// Update reads input, applies it and advances the simulation one step
func (a *App) Update() error {
	a.input.PollDebug(&a.debug)
	if a.debug.ToggleProfile {
		a.toggleProfile()
	}

	if err := a.game.Apply(a.input.Poll()); err != nil {
		a.logger.Printf("input: %v", err)
	}

	a.game.Update()
	return nil
}

func (a *App) toggleProfile() {
	if !a.profiler.IsProfiling() {
		if err := a.profiler.Start("session"); err != nil {
			a.logger.Printf("Failed to start profile: %v", err)
			return
		}
		a.logger.Println("Profiling started")
		return
	}

	path, err := a.profiler.Stop()
	if err != nil {
		a.logger.Printf("Failed to stop profile: %v", err)
		return
	}
	a.logger.Printf("Profile saved to %s", path)
	a.profiler.WriteSummary(a.logger.Writer())
}

// Draw renders the field and the HUD. It keeps drawing while paused or won.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Render(screen, a.game, &a.debug)
	a.hud.Draw(screen, a.game)
	if a.debug.ShowStats {
		a.hud.DrawStats(screen, a.game)
	}
}

// Layout keeps the logical screen at the field size
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.FieldWidth, a.config.FieldHeight
}

// Close stops a running profile capture
func (a *App) Close() {
	if a.profiler.IsProfiling() {
		if _, err := a.profiler.Stop(); err != nil {
			a.logger.Printf("Failed to stop profile: %v", err)
		}
	}
}
