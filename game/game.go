package game

import (
	"errors"
	"fmt"
	"log"

	"liquiddig/level"
	"liquiddig/terrain"
)

// State is the game's position in the level flow
type State int

const (
	StateLoading State = iota
	StatePlaying
	StatePaused
	StateLevelWon
	StateFinalWon
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLevelWon:
		return "level won"
	case StateFinalWon:
		return "final won"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// PauseMode records who paused the game
type PauseMode int

const (
	PauseNone PauseMode = iota

	// PauseOverlay is a player pause: cues stop and the overlay is shown
	PauseOverlay

	// PauseSilent freezes the simulation behind some other UI without
	// touching cues or the overlay
	PauseSilent
)

// Listener is notified of level flow changes. Every method is optional in
// the sense that a nil Listener is never called.
type Listener interface {
	LevelLoaded(index int, l level.Level)
	LevelWon(index int, final bool)
	Paused(mode PauseMode)
	Resumed(mode PauseMode)
}

// Options holds optional collaborators
type Options struct {
	// Logger receives level load and win messages; nil disables logging
	Logger *log.Logger

	Listener Listener
}

var (
	// ErrLevelOutOfRange is returned when loading a level that does not exist
	ErrLevelOutOfRange = errors.New("level index out of range")

	// ErrNoTransition is returned by Advance and Restart outside a won state
	ErrNoTransition = errors.New("no level transition available")
)

// Game represents the main game state
type Game struct {
	config Config
	world  PhysicsWorld
	levels []level.Level

	grid      *terrain.Grid
	terrain   *terrainBodies
	mesher    *terrain.Mesher
	particles *ParticleManager
	stations  []*Station

	state     State
	pauseMode PauseMode
	session   Session
	goal      int
	feedback  Feedback

	logger   *log.Logger
	listener Listener
}

// NewGame creates a game over world and loads the first level
func NewGame(config Config, world PhysicsWorld, levels []level.Level, opts Options) (*Game, error) {
	if world == nil {
		return nil, errors.New("new game: nil physics world")
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("new game: %w", level.ErrNoLevels)
	}

	grid := terrain.NewGrid(config.GridWidth(), config.GridHeight())
	bodies := newTerrainBodies(world)

	g := &Game{
		config:    config,
		world:     world,
		levels:    levels,
		grid:      grid,
		terrain:   bodies,
		mesher:    terrain.NewMesher(grid, config.Geometry(), bodies),
		particles: NewParticleManager(world, config),
		state:     StateLoading,
		logger:    opts.Logger,
		listener:  opts.Listener,
	}

	if err := g.LoadLevel(0); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadLevel tears down the current level and builds level index from scratch
func (g *Game) LoadLevel(index int) error {
	if index < 0 || index >= len(g.levels) {
		return fmt.Errorf("load level %d of %d: %w", index, len(g.levels), ErrLevelOutOfRange)
	}
	g.state = StateLoading
	g.pauseMode = PauseNone

	// The world drops every body, so the terrain list is stale after this
	g.world.ClearBodies()
	g.world.DestroyAllParticles()
	g.terrain.forget()

	g.session = Session{LevelIndex: index}
	g.feedback = Feedback{}

	def := g.levels[index]
	g.grid = terrain.NewGrid(g.config.GridWidth(), g.config.GridHeight())
	g.grid.Initialize(def.Terrain)
	g.mesher.Reset(g.grid)

	built := NewLevelBuilder(g.world, g.grid, g.config).Build(def)
	g.stations = built.Stations
	g.session.InitialParticles = built.InitialWater
	g.goal = goalAmount(built.InitialWater, def.WaterAmount)
	g.particles.Reset(g.grid, g.stations)

	g.mesher.Rebuild()
	g.state = StatePlaying

	g.logf("loaded %s: %d water particles, goal %d, %d terrain regions",
		def.Title(index), g.session.InitialParticles, g.goal, len(g.mesher.Regions()))
	if g.listener != nil {
		g.listener.LevelLoaded(index, def)
	}
	return nil
}

// Update runs one frame: pending terrain rebuild, physics step, particle
// classification and the win check. Only the Playing state simulates.
func (g *Game) Update() FrameReport {
	if g.state != StatePlaying {
		return FrameReport{}
	}

	g.mesher.Update()
	g.world.Step(g.config.TimeStep, g.config.VelocityIterations, g.config.PositionIterations)

	report := g.particles.Update()
	g.session.record(report)
	g.feedback.update(report, g.config.SizzleHold)

	g.checkWin()
	return report
}

// checkWin latches the win the first frame the goal is reached
func (g *Game) checkWin() {
	if g.session.LevelWon || !g.session.reached(g.goal) {
		return
	}
	g.session.LevelWon = true

	final := g.session.LevelIndex == len(g.levels)-1
	if final {
		g.state = StateFinalWon
	} else {
		g.state = StateLevelWon
	}
	g.feedback = Feedback{}

	g.logf("%s won after %d frames: %d/%d collected",
		g.Level().Title(g.session.LevelIndex), g.session.Frames, g.session.Collected, g.goal)
	if g.listener != nil {
		g.listener.LevelWon(g.session.LevelIndex, final)
	}
}

// Dig clears terrain around a cell. Only works while playing; the collision
// bodies are rebuilt on the next Update.
func (g *Game) Dig(col, row int) bool {
	if g.state != StatePlaying {
		return false
	}
	return g.mesher.Dig(col, row, g.config.DigRadius) > 0
}

// DigAt digs at a position in field pixels
func (g *Game) DigAt(px, py float64) bool {
	col, row := g.config.Geometry().PixelToCell(px, py)
	return g.Dig(col, row)
}

// Pause freezes the simulation. Only a playing game can be paused.
func (g *Game) Pause(mode PauseMode) bool {
	if g.state != StatePlaying || mode == PauseNone {
		return false
	}
	g.state = StatePaused
	g.pauseMode = mode
	if g.listener != nil {
		g.listener.Paused(mode)
	}
	return true
}

// Resume continues a paused game and returns the mode it was paused with,
// or PauseNone when it was not paused.
func (g *Game) Resume() PauseMode {
	if g.state != StatePaused {
		return PauseNone
	}
	mode := g.pauseMode
	g.state = StatePlaying
	g.pauseMode = PauseNone
	if g.listener != nil {
		g.listener.Resumed(mode)
	}
	return mode
}

// TogglePause pauses with the overlay or resumes, and reports whether the
// game is paused afterwards
func (g *Game) TogglePause() bool {
	switch g.state {
	case StatePlaying:
		g.Pause(PauseOverlay)
	case StatePaused:
		g.Resume()
	}
	return g.state == StatePaused
}

// Advance loads the next level after a level win
func (g *Game) Advance() error {
	if g.state != StateLevelWon {
		return fmt.Errorf("advance from %s: %w", g.state, ErrNoTransition)
	}
	return g.LoadLevel(g.session.LevelIndex + 1)
}

// Restart goes back to the first level after the final win
func (g *Game) Restart() error {
	if g.state != StateFinalWon {
		return fmt.Errorf("restart from %s: %w", g.state, ErrNoTransition)
	}
	return g.LoadLevel(0)
}

// ReloadLevel replays the current level from its initial layout
func (g *Game) ReloadLevel() error {
	return g.LoadLevel(g.session.LevelIndex)
}

func (g *Game) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}

// State returns the current state
func (g *Game) State() State {
	return g.state
}

// PauseMode returns how the game was paused, PauseNone when it is not
func (g *Game) PauseMode() PauseMode {
	return g.pauseMode
}

// Paused reports whether the simulation is paused
func (g *Game) Paused() bool {
	return g.state == StatePaused
}

// Session returns a copy of the level counters
func (g *Game) Session() Session {
	return g.session
}

// GoalAmount returns the water needed to win the current level
func (g *Game) GoalAmount() int {
	return g.goal
}

// Feedback returns the current cues. A player pause silences them.
func (g *Game) Feedback() Feedback {
	if g.state == StatePaused && g.pauseMode == PauseOverlay {
		return Feedback{}
	}
	return g.feedback
}

// Level returns the description of the current level
func (g *Game) Level() level.Level {
	return g.levels[g.session.LevelIndex]
}

// LevelIndex returns the index of the current level
func (g *Game) LevelIndex() int {
	return g.session.LevelIndex
}

// LevelCount returns the number of levels
func (g *Game) LevelCount() int {
	return len(g.levels)
}

func (g *Game) Grid() *terrain.Grid {
	return g.grid
}

func (g *Game) Mesher() *terrain.Mesher {
	return g.mesher
}

func (g *Game) World() PhysicsWorld {
	return g.world
}

func (g *Game) Stations() []*Station {
	return g.stations
}

func (g *Game) Config() Config {
	return g.config
}
