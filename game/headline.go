package game

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"constellation/scramble"
)

const headlineSize = 44 // CSS pixels

// Headline cycles scrambled phrases over the field
type Headline struct {
	rot    *scramble.Rotator
	font   *opentype.Font
	face   text.Face
	scale  float64
	glyphs []scramble.Glyph

	text  color.Color
	noise color.Color
}

// NewHeadline parses the headline font and starts on the first phrase
func NewHeadline(rng *rand.Rand, phrases []string, hold int, noise color.Color) (*Headline, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	h := &Headline{
		rot:   scramble.NewRotator(rng, phrases, hold),
		font:  f,
		text:  color.NRGBA{R: 240, G: 240, B: 240, A: 255},
		noise: noise,
	}
	if err := h.setScale(1); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Headline) setScale(scale float64) error {
	if scale == h.scale && h.face != nil {
		return nil
	}
	face, err := opentype.NewFace(h.font, &opentype.FaceOptions{
		Size:    headlineSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create face: %w", err)
	}
	h.face = text.NewGoXFace(face)
	h.scale = scale
	return nil
}

// Update advances the scramble by one frame
func (h *Headline) Update() {
	h.glyphs = h.rot.Step()
}

// Text returns what is currently shown
func (h *Headline) Text() string {
	return scramble.String(h.glyphs)
}

// Draw renders the headline centred horizontally with its top edge at y, in
// screen pixels.
func (h *Headline) Draw(screen *ebiten.Image, scale float64, y float64) {
	if len(h.glyphs) == 0 {
		return
	}
	if err := h.setScale(scale); err != nil {
		return
	}

	width := text.Advance(h.Text(), h.face)
	x := (float64(screen.Bounds().Dx()) - width) / 2
	for _, g := range h.glyphs {
		s := string(g.R)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		if g.Scrambled {
			op.ColorScale.ScaleWithColor(h.noise)
		} else {
			op.ColorScale.ScaleWithColor(h.text)
		}
		text.Draw(screen, s, h.face, op)
		x += text.Advance(s, h.face)
	}
}
