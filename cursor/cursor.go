// Package cursor implements a custom pointer: a dot that tracks the pointer
// exactly and a ring that trails behind it.
package cursor

const (
	// RingLerp is the fraction of the remaining distance the ring covers each frame
	RingLerp = 0.12

	// FadeDuration is how long the cursor takes to fade in or out, in seconds
	FadeDuration = 0.3

	offscreen = -100.0
)

// Follower is the cursor state
type Follower struct {
	DotX, DotY   float64
	RingX, RingY float64
	Opacity      float64

	present bool
}

// NewFollower creates a hidden cursor parked off screen
func NewFollower() *Follower {
	return &Follower{
		DotX:  offscreen,
		DotY:  offscreen,
		RingX: offscreen,
		RingY: offscreen,
	}
}

// Move snaps the dot to the pointer
func (f *Follower) Move(x, y float64) {
	f.DotX = x
	f.DotY = y
	f.present = true
}

// Leave hides the cursor; the ring stays where it is
func (f *Follower) Leave() {
	f.present = false
}

// Present reports whether the pointer is inside the window
func (f *Follower) Present() bool { return f.present }

// Step eases the ring toward the dot and the opacity toward its target
func (f *Follower) Step(dt float64) {
	f.RingX += (f.DotX - f.RingX) * RingLerp
	f.RingY += (f.DotY - f.RingY) * RingLerp

	target := 0.0
	if f.present {
		target = 1
	}
	delta := dt / FadeDuration
	switch {
	case f.Opacity < target:
		f.Opacity = min(target, f.Opacity+delta)
	case f.Opacity > target:
		f.Opacity = max(target, f.Opacity-delta)
	}
}
