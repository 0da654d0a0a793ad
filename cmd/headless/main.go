// Command headless runs levels without a window and logs what the
// classifier reports, for tuning levels and profiling the frame loop.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"liquiddig/game"
	"liquiddig/level"
	"liquiddig/physics"
)

func main() {
	levelsPath := flag.String("levels", "", "Level set JSON file (defaults to the built-in levels)")
	startLevel := flag.Int("level", 0, "Index of the level to run")
	frames := flag.Int("frames", 600, "Number of frames to simulate")
	reportEvery := flag.Int("report-every", 60, "Log a summary every N frames (0 disables)")
	profileDir := flag.String("cpuprofile", "", "Write a CPU profile and trace into this directory")
	digs := flag.String("dig", "", "Cells to dig before the first frame, as col,row;col,row")
	flag.Parse()

	log.Printf("Starting headless run with GOMAXPROCS=%d", runtime.GOMAXPROCS(0))

	levels, err := loadLevels(*levelsPath)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	config := game.DefaultConfig()
	world := physics.NewWorld(config.WorldDef())
	g, err := game.NewGame(config, world, levels, game.Options{Logger: log.Default()})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	if *startLevel != 0 {
		if err := g.LoadLevel(*startLevel); err != nil {
			log.Fatalf("Failed to load level: %v", err)
		}
	}

	cells, err := parseCells(*digs)
	if err != nil {
		log.Fatalf("Bad -dig value: %v", err)
	}
	for _, c := range cells {
		g.Dig(c[0], c[1])
	}

	var profiler *game.Profiler
	if *profileDir != "" {
		profiler = game.NewProfiler(*profileDir)
		if err := profiler.Start("headless"); err != nil {
			log.Fatalf("Failed to start profile: %v", err)
		}
	}

	run(g, *frames, *reportEvery)

	if profiler != nil {
		path, err := profiler.Stop()
		if err != nil {
			log.Printf("Failed to stop profile: %v", err)
		} else {
			log.Printf("CPU profile saved to %s", path)
		}
		profiler.WriteSummary(os.Stderr)
	}

	s := g.Session()
	log.Printf("Done: state %s, collected %d/%d, drained %d, absorbed %d, released %d",
		g.State(), s.Collected, g.GoalAmount(), s.Drained, s.Absorbed, s.Released)
}

// run steps the game until the frame budget is used or the level is won
func run(g *game.Game, frames, reportEvery int) {
	for i := 1; i <= frames; i++ {
		report := g.Update()

		if report.Contaminated {
			log.Printf("frame %d: contamination", i)
		}
		if reportEvery > 0 && i%reportEvery == 0 {
			s := g.Session()
			log.Printf("frame %d: collected %d/%d particles %d rushing water=%v toxic=%v",
				i, s.Collected, g.GoalAmount(), g.World().ParticleCount(), report.Rushing.Water, report.Rushing.Toxic)
		}

		if g.State() == game.StateLevelWon || g.State() == game.StateFinalWon {
			log.Printf("frame %d: %s", i, g.State())
			return
		}
	}
}

func loadLevels(path string) ([]level.Level, error) {
	if path == "" {
		return level.Default()
	}
	return level.LoadFile(path)
}

// parseCells reads "col,row;col,row" pairs
func parseCells(s string) ([][2]int, error) {
	if s == "" {
		return nil, nil
	}
	var cells [][2]int
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var c [2]int
		if _, err := fmt.Sscanf(part, "%d,%d", &c[0], &c[1]); err != nil {
			return nil, fmt.Errorf("cell %q: %w", part, err)
		}
		cells = append(cells, c)
	}
	if len(cells) == 0 {
		return nil, errors.New("no cells")
	}
	return cells, nil
}
