package field

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Surface is a drawable area the simulator renders into.
type Surface interface {
	// Bounds returns the displayed size in CSS pixels
	Bounds() (width, height float64)

	// DevicePixelRatio returns physical pixels per CSS pixel
	DevicePixelRatio() float64

	// SetBackingSize rescales the backing store to the given physical size
	SetBackingSize(pixelWidth, pixelHeight int)

	// Context returns the 2D drawing context, or nil if the surface has none
	Context() Context
}

// Context is an immediate-mode 2D drawing context. Coordinates are CSS
// pixels; implementations apply the device pixel ratio themselves.
type Context interface {
	ClearRect(x, y, width, height float64)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
	FillCircle(cx, cy, radius float64, p Paint)
}

// Presenter is implemented by contexts that buffer a frame and need an
// explicit flush once it is complete.
type Presenter interface {
	Present()
}

// Paint is the accent colour at a given opacity.
type Paint struct {
	Hue   colorful.Color
	Alpha float64 // straight alpha, 0..1
}

// RGBA implements color.Color with premultiplied alpha.
func (p Paint) RGBA() (r, g, b, a uint32) {
	alpha := clamp(p.Alpha, 0, 1)
	c := p.Hue.Clamped()
	return uint32(c.R*alpha*0xffff + 0.5),
		uint32(c.G*alpha*0xffff + 0.5),
		uint32(c.B*alpha*0xffff + 0.5),
		uint32(alpha*0xffff + 0.5)
}

// NRGBA returns the paint as a straight-alpha 8-bit colour.
func (p Paint) NRGBA() color.NRGBA {
	r, g, b := p.Hue.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp(p.Alpha, 0, 1)*255 + 0.5)}
}

// ParseAccent parses a hex colour such as "#ff4d00".
func ParseAccent(hex string) (colorful.Color, error) {
	return colorful.Hex(hex)
}

func mustAccent(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
