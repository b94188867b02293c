// raycaster-gui shows the tile map from above in a desktop window, with the
// viewer and the fan of rays it casts. Build:
//
//	go build -o raycaster-gui ./cmd/gui
//
// Usage:
//
//	./raycaster-gui [-config raycaster.yaml] [-scale 2]
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"tile-raycaster/internal/gui"
	"tile-raycaster/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML simulation config")
	scale := flag.Int("scale", 2, "Window pixels per map unit")
	flag.Parse()

	cfg, err := sim.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	g, err := gui.New(cfg, slog.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	w, h := g.Size()
	ebiten.SetWindowTitle("tile-raycaster")
	ebiten.SetWindowSize(w*max(*scale, 1), h*max(*scale, 1))
	ebiten.SetTPS(cfg.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
