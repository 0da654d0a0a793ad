package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"liquiddig/app"
	"liquiddig/game"
	"liquiddig/level"
	"liquiddig/physics"
)

func main() {
	levelsPath := flag.String("levels", "", "Level set JSON file (defaults to the built-in levels)")
	profileDir := flag.String("profiles", "profiles", "Directory for F2 profile captures")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	levels, err := loadLevels(*levelsPath)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	config := game.DefaultConfig()
	world := physics.NewWorld(config.WorldDef())
	g, err := game.NewGame(config, world, levels, game.Options{Logger: logger})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	a := app.New(g, *profileDir, logger)
	defer a.Close()

	ebiten.SetWindowSize(config.FieldWidth, config.FieldHeight)
	ebiten.SetWindowTitle("Liquid Dig")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}

func loadLevels(path string) ([]level.Level, error) {
	if path == "" {
		return level.Default()
	}
	return level.LoadFile(path)
}
