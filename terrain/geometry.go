package terrain

import "math"

// Geometry maps between world units, screen pixels and grid cells
type Geometry struct {
	// GridWidth and GridHeight are the grid dimensions in cells
	GridWidth  int
	GridHeight int

	// WorldWidth and WorldHeight are the playfield size in physics units
	WorldWidth  float64
	WorldHeight float64

	// Resolution is the size of one cell in screen pixels
	Resolution float64
}

// CellSize returns the width and height of one cell in world units
func (g Geometry) CellSize() (float64, float64) {
	if g.GridWidth <= 0 || g.GridHeight <= 0 {
		return 0, 0
	}
	return g.WorldWidth / float64(g.GridWidth), g.WorldHeight / float64(g.GridHeight)
}

// WorldToCell converts a world position into cell coordinates. The result may
// lie outside the grid; use Grid.InBounds to check.
func (g Geometry) WorldToCell(x, y float64) (int, int) {
	cw, ch := g.CellSize()
	if cw == 0 || ch == 0 {
		return -1, -1
	}
	return int(math.Floor(x / cw)), int(math.Floor(y / ch))
}

// PixelToCell converts a screen pixel position into cell coordinates
func (g Geometry) PixelToCell(px, py float64) (int, int) {
	if g.Resolution <= 0 {
		return -1, -1
	}
	return int(math.Floor(px / g.Resolution)), int(math.Floor(py / g.Resolution))
}

// PixelsPerUnit returns how many screen pixels one world unit covers horizontally
func (g Geometry) PixelsPerUnit() float64 {
	if g.WorldWidth == 0 {
		return 0
	}
	return float64(g.GridWidth) * g.Resolution / g.WorldWidth
}

// Region converts a block of cells into a centre-positioned world rectangle
func (g Geometry) Region(col, row, cols, rows int) Region {
	cw, ch := g.CellSize()
	return Region{
		X:      (float64(col) + float64(cols)/2) * cw,
		Y:      (float64(row) + float64(rows)/2) * ch,
		Width:  float64(cols) * cw,
		Height: float64(rows) * ch,
		Col:    col,
		Row:    row,
		Cols:   cols,
		Rows:   rows,
	}
}
