// Package terrain holds the diggable occupancy grid and turns it into merged
// rectangular collision regions.
package terrain

// Cell is the occupancy state of one terrain cell
type Cell uint8

const (
	Empty Cell = iota
	Solid
)

// Grid is a fixed-size occupancy grid addressed by (col, row).
// Dimensions never change after creation; cells only go Solid -> Empty once
// a layout has been applied.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

// NewGrid creates an all-empty grid
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	// Preallocate rows
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}

	return &Grid{
		cells:  cells,
		width:  width,
		height: height,
	}
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Initialize assigns every cell from a character layout using nearest-neighbour
// scaling. 'x' marks solid ground, anything else is empty. Rows are scaled by
// the layout height and columns by the width of the first layout row.
func (g *Grid) Initialize(layout []string) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				g.cells[y][x] = Empty
			}
		}
		return
	}

	rowStep := float64(g.height) / float64(len(layout))
	colStep := float64(g.width) / float64(len(layout[0]))

	for y := 0; y < g.height; y++ {
		layoutY := int(float64(y) / rowStep)
		for x := 0; x < g.width; x++ {
			layoutX := int(float64(x) / colStep)

			cell := Empty
			if layoutY < len(layout) && layoutX < len(layout[layoutY]) && layout[layoutY][layoutX] == 'x' {
				cell = Solid
			}
			g.cells[y][x] = cell
		}
	}
}

// InBounds reports whether (col, row) addresses a cell
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// Solid reports whether the cell is solid; out of bounds reads as empty
func (g *Grid) Solid(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.cells[row][col] == Solid
}

// At returns the cell state, Empty when out of bounds
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return Empty
	}
	return g.cells[row][col]
}

// Cells returns the rows of the grid for drawing. Callers must not modify it.
func (g *Grid) Cells() [][]Cell {
	return g.cells
}

// SolidCount returns the number of solid cells
func (g *Grid) SolidCount() int {
	n := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == Solid {
				n++
			}
		}
	}
	return n
}

// Dig empties every solid cell within radius of the centre (inclusive,
// circular footprint). Cells outside the grid are skipped. Returns how many
// cells changed.
func (g *Grid) Dig(centerCol, centerRow, radius int) int {
	if radius < 0 {
		return 0
	}

	changed := 0
	radiusSq := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radiusSq {
				continue
			}
			col := centerCol + dx
			row := centerRow + dy
			if !g.InBounds(col, row) {
				continue
			}
			if g.cells[row][col] == Solid {
				g.cells[row][col] = Empty
				changed++
			}
		}
	}
	return changed
}

// SolidNear reports whether any solid cell lies in the (2r+1)x(2r+1) square
// around (col, row). Cells outside the grid are ignored.
func (g *Grid) SolidNear(col, row, r int) bool {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if g.Solid(col+dx, row+dy) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		copy(c.cells[y], g.cells[y])
	}
	return c
}
