package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"constellation/config"
	"constellation/game"
	"constellation/logger"
)

func main() {
	cfg, err := config.Load(config.NewFlagSet("constellation"), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "constellation: %v\n", err)
		os.Exit(2)
	}
	log := logger.Setup(cfg.Log)

	gc, err := game.FromConfig(cfg)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	g, err := game.NewGame(gc, log)
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	game.ConfigureWindow(gc)

	if err := ebiten.RunGame(g); err != nil {
		log.Error("game exited", "error", err)
		os.Exit(1)
	}
	log.Info("window closed")
}
