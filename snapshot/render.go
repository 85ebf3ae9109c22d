package snapshot

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"constellation/field"
	"constellation/loop"
)

// Background is the page colour behind the field
var Background = color.NRGBA{R: 10, G: 10, B: 12, A: 255}

// Options describes one snapshot
type Options struct {
	Width, Height float64 // CSS pixels
	DPR           float64
	Frames        int // frames simulated before capture
	Caption       string
	FontSize      float64
	Pointer       *[2]float64 // optional pointer held for the whole run
	Field         []field.Option
}

// Frame simulates opts.Frames frames and returns the surface holding the
// last one, with the caption drawn on top.
func Frame(opts Options) (*Surface, error) {
	if opts.DPR == 0 {
		opts.DPR = 1
	}
	surface := NewSurface(opts.Width, opts.Height, opts.DPR, Background)

	q := loop.NewQueue()
	sim, err := field.New(surface, append(opts.Field, field.WithScheduler(q))...)
	if err != nil {
		return nil, fmt.Errorf("create simulator: %w", err)
	}
	if opts.Pointer != nil {
		sim.SetPointer(opts.Pointer[0], opts.Pointer[1])
	}

	sim.Start()
	for i := 0; i < opts.Frames; i++ {
		q.Tick()
	}
	sim.Stop()

	if opts.Caption != "" {
		if err := drawCaption(surface, opts.Caption, opts.FontSize); err != nil {
			return nil, err
		}
	}

	slog.Debug("snapshot rendered",
		"frames", sim.Frames(),
		"particles", sim.Len(),
		"class", sim.Class().String())
	return surface, nil
}

// Render writes a snapshot PNG to path
func Render(path string, opts Options) error {
	surface, err := Frame(opts)
	if err != nil {
		return err
	}
	if err := surface.Gfx().SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// drawCaption writes text in the bottom-left corner in Go Mono
func drawCaption(s *Surface, text string, size float64) error {
	if size <= 0 {
		size = 14
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size * s.Scale(),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	dc := s.Gfx()
	dc.SetFontFace(face)
	dc.SetColor(color.NRGBA{R: 240, G: 240, B: 240, A: 220})
	margin := 16 * s.Scale()
	dc.DrawStringAnchored(text, margin, float64(dc.Height())-margin, 0, 0)
	return nil
}
