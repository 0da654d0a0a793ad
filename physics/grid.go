package physics

// cell holds the particle indices bucketed into one broadphase cell
type cell struct {
	// Preallocated slice of particle indices
	indices []int
}

func (c *cell) clear() {
	c.indices = c.indices[:0]
}

// spatialGrid buckets particles for neighbour queries. Positions outside the
// bounds are clamped into the edge cells, so queries stay correct and only
// get slower for particles far outside the field.
type spatialGrid struct {
	cells    []cell
	cols     int
	rows     int
	cellSize float64
}

func newSpatialGrid(width, height, cellSize float64) *spatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([]cell, cols*rows)
	for i := range cells {
		cells[i].indices = make([]int, 0, 8)
	}

	return &spatialGrid{
		cells:    cells,
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
	}
}

// toCell converts world coordinates to clamped cell coordinates
func (g *spatialGrid) toCell(p Vec2) (int, int) {
	cx := int(p.X / g.cellSize)
	cy := int(p.Y / g.cellSize)
	if p.X < 0 {
		cx = 0
	}
	if p.Y < 0 {
		cy = 0
	}

	cx = max(0, min(cx, g.cols-1))
	cy = max(0, min(cy, g.rows-1))
	return cx, cy
}

func (g *spatialGrid) reset() {
	for i := range g.cells {
		g.cells[i].clear()
	}
}

func (g *spatialGrid) insert(index int, p Vec2) {
	cx, cy := g.toCell(p)
	c := &g.cells[cy*g.cols+cx]
	c.indices = append(c.indices, index)
}

// neighbours calls fn for every index bucketed in the 3x3 block around p
func (g *spatialGrid) neighbours(p Vec2, fn func(j int)) {
	centerX, centerY := g.toCell(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cx := centerX + dx
			cy := centerY + dy
			if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
				continue
			}
			for _, j := range g.cells[cy*g.cols+cx].indices {
				fn(j)
			}
		}
	}
}
