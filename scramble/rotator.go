package scramble

import "math/rand/v2"

// Rotator cycles a Scrambler through phrases, holding each settled phrase
// for a number of frames before scrambling to the next.
type Rotator struct {
	s       *Scrambler
	phrases []string
	hold    int
	idx     int
	held    int
}

// NewRotator starts on the first phrase. hold is counted in frames.
func NewRotator(rng *rand.Rand, phrases []string, hold int) *Rotator {
	r := &Rotator{s: New(rng), phrases: phrases, hold: hold}
	if len(phrases) > 0 {
		r.s.SetText(phrases[0])
	}
	return r
}

// Phrase returns the index of the phrase being shown or scrambled to
func (r *Rotator) Phrase() int { return r.idx }

// Step advances one frame and returns the glyphs to draw
func (r *Rotator) Step() []Glyph {
	glyphs, done := r.s.Step()
	if !done || len(r.phrases) < 2 {
		return glyphs
	}
	r.held++
	if r.held >= r.hold {
		r.held = 0
		r.idx = (r.idx + 1) % len(r.phrases)
		r.s.SetText(r.phrases[r.idx])
	}
	return glyphs
}
