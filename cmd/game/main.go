package main

import (
	"flag"
	"log"
	"time"

	"github.com/Garsondee/Sphere-Search/internal/game"
	"github.com/Garsondee/Sphere-Search/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "map generation seed")
	side := flag.Int("side", 800, "map viewport size in pixels")
	sphere := flag.Bool("3d", false, "start in the sphere view")
	speed := flag.Int("speed", 1, "search steps per frame")
	verbose := flag.Bool("verbose", false, "log every search step")
	flag.Parse()

	view := render.Flat
	if *sphere {
		view = render.Sphere
	}
	g := game.New(
		game.WithSeed(*seed),
		game.WithSide(*side),
		game.WithView(view),
		game.WithStepsPerFrame(*speed),
		game.WithVerbose(*verbose),
	)

	ebiten.SetWindowTitle("Sphere Search")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
