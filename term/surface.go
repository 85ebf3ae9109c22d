// Package term draws the particle field into a terminal through tcell.
// Each character cell stands for a block of CSS pixels; ink from lines and
// circles accumulates per cell and is flushed to the screen on Present.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"constellation/field"
)

// A terminal cell covers CellWidth×CellHeight CSS pixels
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	lineGlyph   = '·'
	dotGlyph    = '•'
	glowGlyph   = '∙'
	coreGlyph   = '●'
	bigRadius   = 2.0
	defaultGain = 2.5
)

type inkKind uint8

const (
	inkNone inkKind = iota
	inkLine
	inkDot
)

type ink struct {
	kind  inkKind
	glyph rune
	alpha float64
	hue   colorful.Color
}

// Surface adapts a tcell.Screen to field.Surface and field.Context.
type Surface struct {
	screen     tcell.Screen
	background colorful.Color
	gain       float64

	cols, rows int
	cells      []ink
}

// NewSurface wraps screen. Cells with no ink are painted with background.
func NewSurface(screen tcell.Screen, background colorful.Color) *Surface {
	return &Surface{screen: screen, background: background, gain: defaultGain}
}

// SetGain scales ink alpha before blending; terminals need more contrast
// than a canvas to show faint lines.
func (s *Surface) SetGain(g float64) {
	if g > 0 {
		s.gain = g
	}
}

func (s *Surface) Bounds() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// DevicePixelRatio is always 1; a cell has no finer resolution
func (s *Surface) DevicePixelRatio() float64 { return 1 }

func (s *Surface) SetBackingSize(pw, ph int) {
	s.cols = max(pw/CellWidth, 0)
	s.rows = max(ph/CellHeight, 0)
	s.cells = make([]ink, s.cols*s.rows)
}

func (s *Surface) Context() field.Context { return s }

// Grid returns the backing size in cells
func (s *Surface) Grid() (cols, rows int) { return s.cols, s.rows }

func (s *Surface) cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	c0, r0 := s.cellAt(x, y)
	c1, r1 := s.cellAt(x+w, y+h)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, s.cols-1), min(r1, s.rows-1)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			s.cells[r*s.cols+c] = ink{}
		}
	}
}

// StrokeLine walks the cells between both ends with Bresenham
func (s *Surface) StrokeLine(x0, y0, x1, y1, _ float64, p field.Paint) {
	c0, r0 := s.cellAt(x0, y0)
	c1, r1 := s.cellAt(x1, y1)

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		s.mark(c0, r0, ink{kind: inkLine, glyph: lineGlyph, alpha: p.Alpha, hue: p.Hue})
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, p field.Paint) {
	c, row := s.cellAt(cx, cy)
	glyph := dotGlyph
	switch {
	case r > bigRadius*2:
		glyph = glowGlyph
	case r > bigRadius:
		glyph = coreGlyph
	}
	s.mark(c, row, ink{kind: inkDot, glyph: glyph, alpha: p.Alpha, hue: p.Hue})
}

// mark keeps the strongest ink per cell; particles always cover lines
func (s *Surface) mark(c, r int, in ink) {
	if c < 0 || r < 0 || c >= s.cols || r >= s.rows {
		return
	}
	cur := &s.cells[r*s.cols+c]
	if in.kind > cur.kind || (in.kind == cur.kind && in.alpha >= cur.alpha) {
		*cur = in
	}
}

// Present flushes the ink buffer to the screen
func (s *Surface) Present() {
	bg := s.color(s.background)
	blank := tcell.StyleDefault.Background(bg)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			in := s.cells[r*s.cols+c]
			if in.kind == inkNone || in.alpha <= 0 {
				s.screen.SetContent(c, r, ' ', nil, blank)
				continue
			}
			fg := s.background.BlendRgb(in.hue, math.Min(in.alpha*s.gain, 1))
			s.screen.SetContent(c, r, in.glyph, nil, blank.Foreground(s.color(fg)))
		}
	}
	s.screen.Show()
}

func (s *Surface) color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// CellCentre converts a cell position into CSS pixels at its centre
func CellCentre(col, row int) (float64, float64) {
	return float64(col)*CellWidth + CellWidth/2, float64(row)*CellHeight + CellHeight/2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
