// Package field simulates the ambient particle field: drifting points that
// fade in, shy away from the pointer, wrap at the edges and are drawn with
// faint connections between near neighbours.
package field

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Class is the device class derived from surface width
type Class int

const (
	Wide Class = iota
	Compact
)

func (c Class) String() string {
	if c == Compact {
		return "compact"
	}
	return "wide"
}

// ClassOf classifies a surface width
func ClassOf(width float64) Class {
	if width < compactWidth {
		return Compact
	}
	return Wide
}

// Count returns the particle count for a w×h surface
func Count(w, h float64) int {
	limit, divisor := wideCap, wideDivisor
	if ClassOf(w) == Compact {
		limit, divisor = compactCap, compactDivisor
	}
	if !(w > 0 && h > 0) {
		return 0
	}
	n := math.Floor(w * h / divisor)
	if n > float64(limit) {
		return limit
	}
	return int(n)
}

// ConnectionDistance returns the connection threshold for a device class
func ConnectionDistance(c Class) float64 {
	if c == Compact {
		return compactConnectionDist
	}
	return wideConnectionDist
}

// Field is the simulation state. It is not safe for concurrent use; the
// Simulator serialises access to it.
type Field struct {
	width, height float64
	class         Class
	particles     []Particle

	pointerX, pointerY float64

	accent colorful.Color
	grid   *Grid // nil means brute-force pair scan
	pairs  []Pair
}

// NewField creates an empty field with no pointer
func NewField(accent colorful.Color) *Field {
	return &Field{
		pointerX: farAway,
		pointerY: farAway,
		accent:   accent,
	}
}

// Populate builds a fresh particle set for a w×h surface
func Populate(rng *rand.Rand, w, h float64) []Particle {
	n := Count(w, h)
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = newParticle(rng, w, h)
	}
	return particles
}

// Init discards the current particles and populates the field for w×h
func (f *Field) Init(rng *rand.Rand, w, h float64) {
	f.replace(w, h, Populate(rng, w, h))
}

// replace swaps in a prepared particle set for a w×h surface
func (f *Field) replace(w, h float64, particles []Particle) {
	f.width = w
	f.height = h
	f.class = ClassOf(w)
	f.particles = particles
	if f.grid != nil {
		f.grid.Reset(w, h, ConnectionDistance(f.class))
	}
}

// UseGrid switches the connection search between the spatial grid and the
// pairwise scan
func (f *Field) UseGrid(enabled bool) {
	if !enabled {
		f.grid = nil
		return
	}
	if f.grid == nil {
		f.grid = NewGrid(f.width, f.height, ConnectionDistance(f.class))
	}
}

// SetPointer records the last known pointer position
func (f *Field) SetPointer(x, y float64) {
	f.pointerX = x
	f.pointerY = y
}

// ClearPointer moves the pointer far away from every particle
func (f *Field) ClearPointer() {
	f.pointerX = farAway
	f.pointerY = farAway
}

// Pointer returns the pointer position and whether one is present
func (f *Field) Pointer() (x, y float64, ok bool) {
	return f.pointerX, f.pointerY, f.pointerX != farAway || f.pointerY != farAway
}

// Update advances every particle by one frame
func (f *Field) Update() {
	for i := range f.particles {
		f.particles[i].step(f.pointerX, f.pointerY, f.width, f.height)
	}
}

// Draw clears ctx and renders connections, then particles
func (f *Field) Draw(ctx Context) {
	ctx.ClearRect(0, 0, f.width, f.height)

	threshold := ConnectionDistance(f.class)
	f.pairs = f.connections(f.pairs[:0], threshold)
	for _, pr := range f.pairs {
		a := &f.particles[pr.A]
		b := &f.particles[pr.B]
		alpha := (1 - pr.Dist/threshold) * connectionAlpha * math.Min(a.Opacity, b.Opacity) / opacityReference
		ctx.StrokeLine(a.X, a.Y, b.X, b.Y, connectionWidth, Paint{Hue: f.accent, Alpha: alpha})
	}

	for i := range f.particles {
		p := &f.particles[i]
		// Glow sits beneath the core dot
		if p.Radius > glowThreshold {
			ctx.FillCircle(p.X, p.Y, p.Radius*glowScale, Paint{Hue: f.accent, Alpha: p.Opacity * glowAlpha})
		}
		ctx.FillCircle(p.X, p.Y, p.Radius, Paint{Hue: f.accent, Alpha: p.Opacity})
	}
}

// connections appends every unordered pair closer than threshold to dst
func (f *Field) connections(dst []Pair, threshold float64) []Pair {
	if f.grid != nil {
		return f.grid.Pairs(dst, f.particles)
	}
	return scanPairs(dst, f.particles, threshold)
}

// Width returns the surface width in CSS pixels
func (f *Field) Width() float64 { return f.width }

// Height returns the surface height in CSS pixels
func (f *Field) Height() float64 { return f.height }

// Class returns the current device class
func (f *Field) Class() Class { return f.class }

// Len returns the particle count
func (f *Field) Len() int { return len(f.particles) }

// Particles returns a copy of the particle set
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func hypot(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}
