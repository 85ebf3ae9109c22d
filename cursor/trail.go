package cursor

const (
	// TrailLength is the number of dots in the trail
	TrailLength = 10

	// TrailMinWidth is the narrowest window, in CSS pixels, that shows a trail
	TrailMinWidth = 768

	trailEase      = 0.32
	trailEaseStep  = 0.022
	trailSize      = 4.0
	trailSizeStep  = 0.3
	trailAlpha     = 0.35
	trailAlphaStep = 0.03
)

// Dot is one trail element. Size is a diameter in CSS pixels.
type Dot struct {
	X, Y  float64
	Size  float64
	Alpha float64
	Ease  float64
}

// Trail is a chain of dots, each easing toward the one ahead of it; the
// first one eases toward the pointer. Later dots are smaller, fainter and
// slower.
type Trail struct {
	leaderX, leaderY float64
	dots             [TrailLength]Dot
}

// NewTrail creates a trail parked off screen
func NewTrail() *Trail {
	t := &Trail{leaderX: offscreen, leaderY: offscreen}
	for i := range t.dots {
		t.dots[i] = Dot{
			X:     offscreen,
			Y:     offscreen,
			Size:  trailSize - float64(i)*trailSizeStep,
			Alpha: trailAlpha - float64(i)*trailAlphaStep,
			Ease:  trailEase - float64(i)*trailEaseStep,
		}
	}
	return t
}

// Move sets the position the head of the trail chases
func (t *Trail) Move(x, y float64) {
	t.leaderX = x
	t.leaderY = y
}

// Step moves every dot one frame toward its leader, head first
func (t *Trail) Step() {
	lx, ly := t.leaderX, t.leaderY
	for i := range t.dots {
		d := &t.dots[i]
		d.X += (lx - d.X) * d.Ease
		d.Y += (ly - d.Y) * d.Ease
		lx, ly = d.X, d.Y
	}
}

// Dots returns a copy of the trail, head first
func (t *Trail) Dots() []Dot {
	out := make([]Dot, len(t.dots))
	copy(out, t.dots[:])
	return out
}

// TrailVisible reports whether a window of the given CSS width shows a trail
func TrailVisible(width float64) bool {
	return width >= TrailMinWidth
}
