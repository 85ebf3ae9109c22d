// Command termfield runs the particle field in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"constellation/config"
	"constellation/field"
	"constellation/logger"
	"constellation/loop"
	"constellation/term"
)

var background = colorful.Color{R: 10 / 255.0, G: 10 / 255.0, B: 12 / 255.0}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "termfield: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.NewFlagSet("termfield")
	logPath := fs.String("log-file", "", "write logs to this file; the terminal is taken by the field")
	fps := fs.Int("fps", 30, "frames per second")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.New(out, cfg.Log)

	accent, err := field.ParseAccent(cfg.Field.Accent)
	if err != nil {
		return fmt.Errorf("accent: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "termfield crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	ticker := loop.NewTicker(time.Second / time.Duration(max(*fps, 1)))
	opts := []field.Option{
		field.WithAccent(accent),
		field.WithScheduler(ticker),
		field.WithSpatialGrid(cfg.Field.SpatialGrid),
		field.WithLogger(log),
	}
	if cfg.Field.Seed != 0 {
		opts = append(opts, field.WithSeed(cfg.Field.Seed))
	}
	sim, err := field.New(term.NewSurface(screen, background), opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("termfield started", "particles", sim.Len(), "class", sim.Class().String(), "fps", *fps)
	err = term.NewDriver(screen, sim).RunTicker(ctx, ticker)
	log.Info("termfield stopped", "frames", sim.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
