package game

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"constellation/field"
)

// Surface is an offscreen ebiten image the field draws into. Its backing
// image is sized in physical pixels while drawing calls arrive in CSS
// pixels.
type Surface struct {
	width, height float64
	dpr           float64
	canvas        *ebiten.Image
	scale         float64
}

// NewSurface creates a surface of w×h CSS pixels
func NewSurface(w, h, dpr float64) *Surface {
	return &Surface{width: w, height: h, dpr: dpr, scale: 1}
}

// SetBounds records the window size and monitor scale seen by Layout
func (s *Surface) SetBounds(w, h, dpr float64) {
	s.width, s.height, s.dpr = w, h, dpr
}

func (s *Surface) Bounds() (float64, float64) { return s.width, s.height }

func (s *Surface) DevicePixelRatio() float64 { return s.dpr }

// SetBackingSize replaces the canvas when its pixel size changes
func (s *Surface) SetBackingSize(pw, ph int) {
	pw, ph = max(pw, 1), max(ph, 1)
	s.scale = backingScale(pw, s.width)
	if s.canvas != nil {
		if b := s.canvas.Bounds(); b.Dx() == pw && b.Dy() == ph {
			return
		}
		s.canvas.Deallocate()
	}
	s.canvas = ebiten.NewImage(pw, ph)
}

func (s *Surface) Context() field.Context { return s }

func (s *Surface) ClearRect(x, y, w, h float64) {
	if s.canvas == nil {
		return
	}
	s.canvas.SubImage(physicalRect(x, y, w, h, s.scale)).(*ebiten.Image).Clear()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	if s.canvas == nil {
		return
	}
	k := s.scale
	vector.StrokeLine(s.canvas, physical(x0, k), physical(y0, k), physical(x1, k), physical(y1, k), physical(width, k), p, true)
}

func (s *Surface) FillCircle(cx, cy, r float64, p field.Paint) {
	if s.canvas == nil {
		return
	}
	k := s.scale
	vector.DrawFilledCircle(s.canvas, physical(cx, k), physical(cy, k), physical(r, k), p, true)
}

// Canvas returns the backing image
func (s *Surface) Canvas() *ebiten.Image { return s.canvas }

// Scale returns physical pixels per CSS pixel
func (s *Surface) Scale() float64 { return s.scale }

func backingScale(pw int, width float64) float64 {
	if width <= 0 {
		return 1
	}
	return float64(pw) / width
}

// physical converts a CSS-pixel length to physical pixels
func physical(v, scale float64) float32 {
	return float32(v * scale)
}

// physicalRect converts a CSS-pixel rectangle to the physical pixels it covers
func physicalRect(x, y, w, h, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x*scale)), int(math.Floor(y*scale)),
		int(math.Ceil((x+w)*scale)), int(math.Ceil((y+h)*scale)))
}
