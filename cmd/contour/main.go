//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mesh-squares/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	editor, err := app.NewEditor(cfg)
	if err != nil {
		log.Fatalf("contour: %v", err)
	}
	game := app.New(editor)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("mesh-squares contour editor")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
