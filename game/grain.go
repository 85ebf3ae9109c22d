package game

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	grainSize    = 256
	grainOpacity = 0.035
)

// NoiseTexture fills a size×size image with opaque random grey
func NoiseTexture(rng *rand.Rand, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(rng.IntN(256))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// Grain tiles a faint noise texture over the whole screen
type Grain struct {
	source  *image.NRGBA
	texture *ebiten.Image
}

// NewGrain generates the noise once; the ebiten image is made on first draw
func NewGrain(rng *rand.Rand) *Grain {
	return &Grain{source: NoiseTexture(rng, grainSize)}
}

// Draw tiles the texture across screen
func (g *Grain) Draw(screen *ebiten.Image) {
	if g.texture == nil {
		g.texture = ebiten.NewImageFromImage(g.source)
	}
	b := screen.Bounds()
	for _, pos := range tiles(b.Dx(), b.Dy(), grainSize) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(pos.X), float64(pos.Y))
		op.ColorScale.ScaleAlpha(grainOpacity)
		screen.DrawImage(g.texture, op)
	}
}

// tiles returns the top-left corners of size×size tiles covering w×h
func tiles(w, h, size int) []image.Point {
	var out []image.Point
	for y := 0; y < h; y += size {
		for x := 0; x < w; x += size {
			out = append(out, image.Pt(x, y))
		}
	}
	return out
}
