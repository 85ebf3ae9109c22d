// Package snapshot renders the particle field off screen with gg and saves
// it as a PNG.
package snapshot

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"constellation/field"
)

// Surface is an in-memory gg canvas. Clearing paints the background colour.
type Surface struct {
	width, height float64
	dpr           float64
	scale         float64
	background    color.Color
	dc            *gg.Context
}

// NewSurface creates a w×h CSS-pixel surface
func NewSurface(w, h, dpr float64, background color.Color) *Surface {
	s := &Surface{width: w, height: h, dpr: dpr, scale: 1, background: background}
	s.SetBackingSize(1, 1)
	return s
}

// SetBounds changes the displayed size; the simulator picks it up on Resize
func (s *Surface) SetBounds(w, h float64) {
	s.width = w
	s.height = h
}

func (s *Surface) Bounds() (float64, float64) { return s.width, s.height }

func (s *Surface) DevicePixelRatio() float64 { return s.dpr }

// SetBackingSize allocates a new pw×ph pixel canvas
func (s *Surface) SetBackingSize(pw, ph int) {
	s.dc = gg.NewContext(max(pw, 1), max(ph, 1))
	s.scale = 1
	if s.width > 0 {
		s.scale = float64(pw) / s.width
	}
	s.dc.SetColor(s.background)
	s.dc.Clear()
}

func (s *Surface) Context() field.Context { return s }

// ClearRect paints the rectangle with the background colour
func (s *Surface) ClearRect(x, y, w, h float64) {
	s.dc.SetColor(s.background)
	s.dc.DrawRectangle(x*s.scale, y*s.scale, w*s.scale, h*s.scale)
	s.dc.Fill()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	s.dc.SetColor(p)
	s.dc.SetLineWidth(width * s.scale)
	s.dc.DrawLine(x0*s.scale, y0*s.scale, x1*s.scale, y1*s.scale)
	s.dc.Stroke()
}

func (s *Surface) FillCircle(cx, cy, r float64, p field.Paint) {
	s.dc.SetColor(p)
	s.dc.DrawCircle(cx*s.scale, cy*s.scale, r*s.scale)
	s.dc.Fill()
}

// Image returns the backing image
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// Gfx exposes the gg context for overlays drawn in physical pixels
func (s *Surface) Gfx() *gg.Context {
	return s.dc
}

// Scale returns physical pixels per CSS pixel of the current backing store
func (s *Surface) Scale() float64 {
	return s.scale
}
