package terrain

// BodySink receives the collision regions produced by a rebuild
type BodySink interface {
	// ClearTerrain removes every terrain body created by earlier rebuilds
	ClearTerrain()

	// CreateTerrainBox registers one static region
	CreateTerrainBox(r Region)
}

// Mesher keeps the physics engine's terrain bodies in sync with a Grid.
//
// Digging only marks a rebuild as requested; Update performs at most one
// rebuild per frame. A rebuild requested while another is running is kept
// and runs once on the next idle Update.
type Mesher struct {
	grid     *Grid
	geometry Geometry
	sink     BodySink

	regions []Region

	rebuildInProgress bool
	rebuildRequested  bool

	rebuilds int
}

// NewMesher creates a mesher for grid that emits regions into sink
func NewMesher(grid *Grid, geo Geometry, sink BodySink) *Mesher {
	return &Mesher{
		grid:     grid,
		geometry: geo,
		sink:     sink,
	}
}

// Reset swaps in a fresh grid for a new level and drops pending requests
func (m *Mesher) Reset(grid *Grid) {
	m.grid = grid
	m.regions = nil
	m.rebuildRequested = false
}

// Grid returns the grid being meshed
func (m *Mesher) Grid() *Grid {
	return m.grid
}

// Geometry returns the cell geometry used for region conversion
func (m *Mesher) Geometry() Geometry {
	return m.geometry
}

// Dig carves the grid and requests a rebuild if anything changed
func (m *Mesher) Dig(col, row, radius int) int {
	changed := m.grid.Dig(col, row, radius)
	if changed > 0 {
		m.rebuildRequested = true
	}
	return changed
}

// RequestRebuild marks the terrain bodies as stale
func (m *Mesher) RequestRebuild() {
	m.rebuildRequested = true
}

// Pending reports whether a rebuild is waiting to run
func (m *Mesher) Pending() bool {
	return m.rebuildRequested
}

// Busy reports whether a rebuild is running right now
func (m *Mesher) Busy() bool {
	return m.rebuildInProgress
}

// Update runs a requested rebuild if none is in flight. Returns true when a
// rebuild ran.
func (m *Mesher) Update() bool {
	if !m.rebuildRequested || m.rebuildInProgress {
		return false
	}
	m.Rebuild()
	return true
}

// Rebuild destroys all terrain bodies and emits a fresh mesh. Called while a
// rebuild is already running, it only records the request.
func (m *Mesher) Rebuild() {
	if m.rebuildInProgress {
		m.rebuildRequested = true
		return
	}

	m.rebuildInProgress = true
	m.rebuildRequested = false
	defer func() {
		m.rebuildInProgress = false
	}()

	m.sink.ClearTerrain()
	regions := Mesh(m.grid, m.geometry)
	for _, r := range regions {
		m.sink.CreateTerrainBox(r)
	}
	m.regions = regions
	m.rebuilds++
}

// Regions returns the regions emitted by the last rebuild
func (m *Mesher) Regions() []Region {
	return m.regions
}

// Rebuilds returns how many rebuilds have completed
func (m *Mesher) Rebuilds() int {
	return m.rebuilds
}
