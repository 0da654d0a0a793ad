package terrain

// Region is one merged block of solid cells. X and Y are the centre of the
// block in world units; Col/Row/Cols/Rows is its cell footprint.
type Region struct {
	X, Y          float64
	Width, Height float64

	Col, Row   int
	Cols, Rows int
}

// Contains reports whether the cell lies inside the region's footprint
func (r Region) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.Cols && row >= r.Row && row < r.Row+r.Rows
}

// Mesh covers every solid cell with non-overlapping rectangles.
//
// Cells are scanned row-major. Each unvisited solid cell starts a block that
// first grows right as far as the row allows, then grows down while the whole
// width of the next row is solid and unvisited. The result is deterministic
// but not a minimum cover.
func Mesh(grid *Grid, geo Geometry) []Region {
	width, height := grid.Width(), grid.Height()
	cells := grid.Cells()

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	open := func(x, y int) bool {
		return cells[y][x] == Solid && !visited[y][x]
	}

	regions := make([]Region, 0, 64)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !open(x, y) {
				continue
			}

			w := 0
			for x+w < width && open(x+w, y) {
				w++
			}

			h := 1
		grow:
			for y+h < height {
				for i := 0; i < w; i++ {
					if !open(x+i, y+h) {
						break grow
					}
				}
				h++
			}

			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					visited[y+dy][x+dx] = true
				}
			}

			regions = append(regions, geo.Region(x, y, w, h))
		}
	}
	return regions
}
