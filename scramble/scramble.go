// Package scramble animates a text change by cycling random glyphs through
// each position before it settles on the new character.
package scramble

import (
	"math/rand/v2"
	"strings"
)

// Charset is the pool of noise glyphs
const Charset = "!<>-_\\/[]{}—=+*^?#________"

const (
	maxDelay   = 40   // frames before a position starts scrambling
	maxSpan    = 40   // frames a position keeps scrambling
	rerollRate = 0.28 // chance per frame to swap the noise glyph
)

// Glyph is one rendered position
type Glyph struct {
	R         rune
	Scrambled bool
}

type slot struct {
	from, to   rune // 0 when the position is absent on that side
	start, end int
	char       rune
}

// Scrambler holds one text transition
type Scrambler struct {
	rng    *rand.Rand
	chars  []rune
	queue  []slot
	frame  int
	target string
	last   []Glyph
}

// New creates a scrambler showing no text
func New(rng *rand.Rand) *Scrambler {
	return &Scrambler{rng: rng, chars: []rune(Charset)}
}

// SetText starts a transition from whatever is currently shown to next
func (s *Scrambler) SetText(next string) {
	from := []rune(String(s.last))
	to := []rune(next)
	n := max(len(from), len(to))

	s.queue = s.queue[:0]
	for i := 0; i < n; i++ {
		var sl slot
		if i < len(from) {
			sl.from = from[i]
		}
		if i < len(to) {
			sl.to = to[i]
		}
		sl.start = s.rng.IntN(maxDelay)
		sl.end = sl.start + s.rng.IntN(maxSpan)
		s.queue = append(s.queue, sl)
	}
	s.frame = 0
	s.target = next
}

// Target returns the text the current transition settles on
func (s *Scrambler) Target() string { return s.target }

// Done reports whether every position has settled
func (s *Scrambler) Done() bool {
	for _, sl := range s.queue {
		if s.frame < sl.end {
			return false
		}
	}
	return true
}

// Step renders the current frame and advances unless the transition is complete.
func (s *Scrambler) Step() ([]Glyph, bool) {
	out := make([]Glyph, 0, len(s.queue))
	complete := 0
	for i := range s.queue {
		sl := &s.queue[i]
		switch {
		case s.frame >= sl.end:
			complete++
			if sl.to != 0 {
				out = append(out, Glyph{R: sl.to})
			}
		case s.frame >= sl.start:
			if sl.char == 0 || s.rng.Float64() < rerollRate {
				sl.char = s.chars[s.rng.IntN(len(s.chars))]
			}
			out = append(out, Glyph{R: sl.char, Scrambled: true})
		default:
			if sl.from != 0 {
				out = append(out, Glyph{R: sl.from})
			}
		}
	}
	s.last = out

	done := complete == len(s.queue)
	if !done {
		s.frame++
	}
	return out, done
}

// String joins glyphs into plain text
func String(glyphs []Glyph) string {
	var b strings.Builder
	for _, g := range glyphs {
		b.WriteRune(g.R)
	}
	return b.String()
}
