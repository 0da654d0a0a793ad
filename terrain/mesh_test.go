package terrain

import (
	"math/rand"
	"reflect"
	"testing"
)

func unitGeometry(g *Grid) Geometry {
	return Geometry{
		GridWidth:   g.Width(),
		GridHeight:  g.Height(),
		WorldWidth:  float64(g.Width()),
		WorldHeight: float64(g.Height()),
		Resolution:  1,
	}
}

func randomGrid(rng *rand.Rand, w, h int, density float64) *Grid {
	rows := make([]string, h)
	for y := range rows {
		b := make([]byte, w)
		for x := range b {
			if rng.Float64() < density {
				b[x] = 'x'
			} else {
				b[x] = '.'
			}
		}
		rows[y] = string(b)
	}
	g := NewGrid(w, h)
	g.Initialize(rows)
	return g
}

// coverage counts how many regions cover each cell
func coverage(g *Grid, regions []Region) [][]int {
	counts := make([][]int, g.Height())
	for y := range counts {
		counts[y] = make([]int, g.Width())
	}
	for _, r := range regions {
		for y := r.Row; y < r.Row+r.Rows; y++ {
			for x := r.Col; x < r.Col+r.Cols; x++ {
				counts[y][x]++
			}
		}
	}
	return counts
}

func TestMeshCoversExactlySolidCells(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		w := 1 + rng.Intn(30)
		h := 1 + rng.Intn(20)
		g := randomGrid(rng, w, h, rng.Float64())

		regions := Mesh(g, unitGeometry(g))
		counts := coverage(g, regions)

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				want := 0
				if g.Solid(x, y) {
					want = 1
				}
				if counts[y][x] != want {
					t.Fatalf("trial %d: cell (%d,%d) covered %d times, want %d", trial, x, y, counts[y][x], want)
				}
			}
		}
	}
}

func TestMeshIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGrid(rng, 40, 25, 0.6)
	geo := unitGeometry(g)

	a := Mesh(g, geo)
	b := Mesh(g, geo)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("meshing the same grid twice produced different regions")
	}
}

func TestMeshGreedyShape(t *testing.T) {
	g := NewGrid(4, 3)
	g.Initialize([]string{
		"xxx.",
		"xxxx",
		"x...",
	})

	got := Mesh(g, unitGeometry(g))
	want := []struct{ col, row, cols, rows int }{
		{0, 0, 3, 2}, // widest run first, then down while the full width holds
		{3, 1, 1, 1},
		{0, 2, 1, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d regions, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		r := got[i]
		if r.Col != w.col || r.Row != w.row || r.Cols != w.cols || r.Rows != w.rows {
			t.Errorf("region %d = (%d,%d %dx%d), want (%d,%d %dx%d)",
				i, r.Col, r.Row, r.Cols, r.Rows, w.col, w.row, w.cols, w.rows)
		}
	}

	first := got[0]
	if first.X != 1.5 || first.Y != 1 || first.Width != 3 || first.Height != 2 {
		t.Errorf("first region world rect = %+v, want centre (1.5,1) size 3x2", first)
	}
}

func TestMeshEmptyAndFull(t *testing.T) {
	empty := NewGrid(10, 10)
	if regions := Mesh(empty, unitGeometry(empty)); len(regions) != 0 {
		t.Errorf("empty grid produced %d regions", len(regions))
	}

	full := NewGrid(10, 10)
	full.Initialize(solidLayout(10, 10))
	regions := Mesh(full, unitGeometry(full))
	if len(regions) != 1 || regions[0].Cols != 10 || regions[0].Rows != 10 {
		t.Errorf("full grid should mesh to a single block, got %+v", regions)
	}
}

// recordingSink counts rebuild traffic and can re-enter the mesher
type recordingSink struct {
	clears  int
	created []Region
	onBox   func()
}

func (s *recordingSink) ClearTerrain() {
	s.clears++
	s.created = s.created[:0]
}

func (s *recordingSink) CreateTerrainBox(r Region) {
	s.created = append(s.created, r)
	if s.onBox != nil {
		s.onBox()
	}
}

func TestMesherCoalescesDigs(t *testing.T) {
	g := NewGrid(20, 10)
	g.Initialize(solidLayout(20, 10))
	sink := &recordingSink{}
	m := NewMesher(g, unitGeometry(g), sink)

	m.Rebuild()
	if m.Rebuilds() != 1 || sink.clears != 1 {
		t.Fatalf("initial rebuild: rebuilds=%d clears=%d", m.Rebuilds(), sink.clears)
	}

	m.Dig(2, 5, 1)
	m.Dig(10, 5, 1)
	m.Dig(17, 5, 1)
	if m.Rebuilds() != 1 {
		t.Fatal("digging must not rebuild inline")
	}
	if !m.Pending() {
		t.Fatal("expected a pending rebuild after digging")
	}

	if !m.Update() {
		t.Fatal("expected Update to run the pending rebuild")
	}
	if m.Update() {
		t.Error("second Update in a row should have nothing to do")
	}
	if m.Rebuilds() != 2 {
		t.Errorf("three digs should produce exactly one rebuild, got %d total", m.Rebuilds()-1)
	}

	// The single rebuild reflects all three digs
	counts := coverage(g, sink.created)
	for _, c := range [][2]int{{2, 5}, {10, 5}, {17, 5}} {
		if counts[c[1]][c[0]] != 0 {
			t.Errorf("dug cell %v still covered by a region", c)
		}
	}
	if got, want := len(sink.created), len(m.Regions()); got != want {
		t.Errorf("sink holds %d regions, mesher reports %d", got, want)
	}
}

func TestMesherIgnoresNoOpDig(t *testing.T) {
	g := NewGrid(5, 5)
	m := NewMesher(g, unitGeometry(g), &recordingSink{})

	if n := m.Dig(2, 2, 2); n != 0 {
		t.Fatalf("digging empty ground changed %d cells", n)
	}
	if m.Pending() {
		t.Error("a dig that changed nothing must not request a rebuild")
	}
}

func TestMesherReentrantRebuildRunsOnce(t *testing.T) {
	g := NewGrid(6, 6)
	g.Initialize(solidLayout(6, 6))
	sink := &recordingSink{}
	m := NewMesher(g, unitGeometry(g), sink)

	reentered := 0
	sink.onBox = func() {
		if reentered == 0 {
			reentered++
			if !m.Busy() {
				t.Error("expected mesher to report busy during rebuild")
			}
			m.Rebuild()
		}
	}

	m.Rebuild()
	if m.Rebuilds() != 1 {
		t.Fatalf("nested rebuild ran inline: rebuilds=%d", m.Rebuilds())
	}
	if !m.Pending() {
		t.Fatal("nested rebuild request was dropped")
	}

	sink.onBox = nil
	if !m.Update() {
		t.Fatal("pending rebuild did not run on the next Update")
	}
	if m.Update() {
		t.Error("pending rebuild ran more than once")
	}
	if m.Rebuilds() != 2 {
		t.Errorf("rebuilds = %d, want 2", m.Rebuilds())
	}
}

func TestMesherResetDropsPending(t *testing.T) {
	g := NewGrid(4, 4)
	g.Initialize(solidLayout(4, 4))
	m := NewMesher(g, unitGeometry(g), &recordingSink{})
	m.Dig(1, 1, 1)

	fresh := NewGrid(4, 4)
	m.Reset(fresh)
	if m.Pending() {
		t.Error("Reset should drop rebuild requests from the previous level")
	}
	if m.Grid() != fresh {
		t.Error("Reset did not swap the grid")
	}
}
