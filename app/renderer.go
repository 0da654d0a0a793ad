package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"liquiddig/game"
	"liquiddig/physics"
	"liquiddig/terrain"
)

// Camera maps world units onto the play surface
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64 // Pixels per world unit
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a camera that shows the whole field
func NewCamera(cfg game.Config) *Camera {
	return &Camera{
		X:      cfg.WorldWidth / 2,
		Y:      cfg.WorldHeight / 2,
		Zoom:   cfg.Geometry().PixelsPerUnit(),
		Width:  float64(cfg.FieldWidth),
		Height: float64(cfg.FieldHeight),
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := (wy-c.Y)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (sy-c.Height/2)/c.Zoom + c.Y
	return wx, wy
}

var (
	backgroundColor = color.RGBA{135, 206, 235, 255}
	dirtColor       = color.RGBA{139, 90, 43, 255}
	wallColor       = color.RGBA{90, 90, 90, 255}
	pipeColor       = color.RGBA{70, 70, 80, 255}
	blockColor      = color.RGBA{120, 120, 130, 255}
	stationColor    = color.RGBA{40, 160, 90, 255}
	stationFill     = color.RGBA{200, 240, 210, 255}
	regionColor     = color.RGBA{255, 0, 0, 255}
)

// Renderer draws the terrain, bodies and particles of a game
type Renderer struct {
	camera *Camera
	config game.Config
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera, config game.Config) *Renderer {
	return &Renderer{
		camera: camera,
		config: config,
	}
}

// Render draws one frame of g
func (r *Renderer) Render(screen *ebiten.Image, g *game.Game, debug *DebugState) {
	screen.Fill(backgroundColor)

	r.renderTerrain(screen, g.Grid())
	r.renderBodies(screen, g.World().Bodies())
	r.renderStations(screen, g.Stations())
	r.renderParticles(screen, g.World())

	if debug.ShowRegions {
		r.renderRegions(screen, g.Mesher().Regions())
	}
}

// renderTerrain draws solid cells straight from the grid
func (r *Renderer) renderTerrain(screen *ebiten.Image, grid *terrain.Grid) {
	size := float32(r.config.Resolution)
	for row, cells := range grid.Cells() {
		for col, cell := range cells {
			if cell != terrain.Solid {
				continue
			}
			vector.DrawFilledRect(screen, float32(col)*size, float32(row)*size, size, size, dirtColor, false)
		}
	}
}

// renderBodies draws every fixture of the static bodies by kind. Terrain
// bodies are skipped since the grid already shows them.
func (r *Renderer) renderBodies(screen *ebiten.Image, bodies []*physics.Body) {
	for _, b := range bodies {
		var clr color.Color
		switch b.Kind() {
		case game.KindWall:
			clr = wallColor
		case game.KindPipe:
			clr = pipeColor
		case game.KindBlock:
			clr = blockColor
		case game.KindStationBody:
			clr = stationColor
		default:
			continue
		}

		for _, f := range b.Fixtures() {
			if f.IsSensor() {
				continue
			}
			lo, hi := f.AABB()
			x0, y0 := r.camera.WorldToScreen(lo.X, lo.Y)
			x1, y1 := r.camera.WorldToScreen(hi.X, hi.Y)
			vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), clr, false)
		}
	}
}

// renderStations overlays each station's fill level
func (r *Renderer) renderStations(screen *ebiten.Image, stations []*game.Station) {
	for _, st := range stations {
		x0, y0 := r.camera.WorldToScreen(st.X-st.Width/2, st.Y-st.Height/2)
		x1, y1 := r.camera.WorldToScreen(st.X+st.Width/2, st.Y+st.Height/2)
		w := (x1 - x0) * st.Progress()
		if w <= 0 {
			continue
		}
		vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(w), float32(y1-y0), stationFill, false)
	}
}

// renderParticles draws each live particle as a circle in its own color
func (r *Renderer) renderParticles(screen *ebiten.Image, world game.PhysicsWorld) {
	positions := world.ParticlePositions()
	colors := world.ParticleColors()
	radius := float32(r.config.ParticleRadius * r.camera.Zoom)
	if radius < 1 {
		radius = 1
	}

	for i, p := range positions {
		if world.ParticleDestroyed(i) || i >= len(colors) {
			continue
		}
		sx, sy := r.camera.WorldToScreen(p.X, p.Y)
		if sx < -10 || sx > r.camera.Width+10 || sy < -10 || sy > r.camera.Height+10 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, colors[i], true)
	}
}

// renderRegions outlines the merged collision rectangles
func (r *Renderer) renderRegions(screen *ebiten.Image, regions []terrain.Region) {
	for _, reg := range regions {
		x0, y0 := r.camera.WorldToScreen(reg.X-reg.Width/2, reg.Y-reg.Height/2)
		x1, y1 := r.camera.WorldToScreen(reg.X+reg.Width/2, reg.Y+reg.Height/2)
		vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, regionColor, false)
	}
}
