package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"constellation/cursor"
	"constellation/field"
)

// Background is the page colour behind the field
var Background = color.RGBA{R: 10, G: 10, B: 12, A: 255}

const (
	dotRadius  = 4  // CSS pixels
	ringRadius = 18 // CSS pixels
	ringWidth  = 1
)

// HUDStats is the debug overlay content
type HUDStats struct {
	FPS       float64
	Particles int
	Class     field.Class
	Grid      bool
	Frames    uint64
}

// Renderer composes the field canvas, headline, cursor, grain and overlay
type Renderer struct {
	accent color.Color
	grain  *Grain
}

// NewRenderer creates a renderer using accent for the cursor. grain may be nil.
func NewRenderer(accent color.Color, grain *Grain) *Renderer {
	return &Renderer{accent: accent, grain: grain}
}

// Render draws one screen
func (r *Renderer) Render(screen *ebiten.Image, surface *Surface, headline *Headline, follower *cursor.Follower, trail *cursor.Trail, hud *HUDStats) {
	screen.Fill(Background)
	if canvas := surface.Canvas(); canvas != nil {
		screen.DrawImage(canvas, nil)
	}

	scale := surface.Scale()
	if headline != nil {
		headline.Draw(screen, scale, float64(screen.Bounds().Dy())*0.42)
	}
	if trail != nil {
		if w, _ := surface.Bounds(); cursor.TrailVisible(w) {
			r.RenderTrail(screen, trail, scale)
		}
	}
	if follower != nil {
		r.RenderCursor(screen, follower, scale)
	}
	if r.grain != nil {
		r.grain.Draw(screen)
	}
	if hud != nil {
		ebitenutil.DebugPrintAt(screen, hud.String(), 8, 8)
	}
}

// RenderCursor draws the dot and the trailing ring
func (r *Renderer) RenderCursor(screen *ebiten.Image, f *cursor.Follower, scale float64) {
	if f.Opacity <= 0 {
		return
	}
	k := float32(scale)
	clr := fade(r.accent, f.Opacity)
	vector.DrawFilledCircle(screen, float32(f.DotX)*k, float32(f.DotY)*k, dotRadius*k, clr, true)
	vector.StrokeCircle(screen, float32(f.RingX)*k, float32(f.RingY)*k, ringRadius*k, ringWidth*k, fade(color.White, f.Opacity*0.5), true)
}

// RenderTrail draws the trail tail first so the head sits on top
func (r *Renderer) RenderTrail(screen *ebiten.Image, t *cursor.Trail, scale float64) {
	dots := t.Dots()
	k := float32(scale)
	for i := len(dots) - 1; i >= 0; i-- {
		d := dots[i]
		vector.DrawFilledCircle(screen, float32(d.X)*k, float32(d.Y)*k, float32(d.Size/2)*k, fade(r.accent, d.Alpha), true)
	}
}

func (h *HUDStats) String() string {
	return fmt.Sprintf("FPS %.0f  particles %d  %s  grid %v  frame %d\nF1 overlay  F2 grid  R reseed  Esc quit",
		h.FPS, h.Particles, h.Class, h.Grid, h.Frames)
}

// fade scales a colour's alpha by a
func fade(c color.Color, a float64) color.Color {
	r, g, b, al := c.RGBA()
	k := max(0, min(a, 1))
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(al) * k),
	}
}
