// Command snapshot renders the particle field off screen and writes a PNG.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"constellation/config"
	"constellation/field"
	"constellation/logger"
	"constellation/snapshot"
)

func main() {
	fs := config.NewFlagSet("snapshot")
	out := fs.StringP("out", "o", "constellation.png", "output PNG path")
	frames := fs.IntP("frames", "n", 240, "frames to simulate before capture")
	dpr := fs.Float64("dpr", 1, "device pixel ratio, capped at 2")
	caption := fs.String("caption", "", "text drawn in the bottom-left corner")
	pointerX := fs.Float64("pointer-x", -1, "hold the pointer at this x; negative for none")
	pointerY := fs.Float64("pointer-y", -1, "hold the pointer at this y")

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(2)
	}
	logger.Setup(cfg.Log)

	accent, err := field.ParseAccent(cfg.Field.Accent)
	if err != nil {
		slog.Error("invalid accent", "accent", cfg.Field.Accent, "error", err)
		os.Exit(1)
	}

	opts := snapshot.Options{
		Width:   float64(cfg.Window.Width),
		Height:  float64(cfg.Window.Height),
		DPR:     *dpr,
		Frames:  *frames,
		Caption: *caption,
		Field: []field.Option{
			field.WithAccent(accent),
			field.WithSpatialGrid(cfg.Field.SpatialGrid),
		},
	}
	if cfg.Field.Seed != 0 {
		opts.Field = append(opts.Field, field.WithSeed(cfg.Field.Seed))
	}
	if *pointerX >= 0 && *pointerY >= 0 {
		opts.Pointer = &[2]float64{*pointerX, *pointerY}
	}

	if err := snapshot.Render(*out, opts); err != nil {
		slog.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
	slog.Info("snapshot written", "path", *out, "frames", *frames)
}
