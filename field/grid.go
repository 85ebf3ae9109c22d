package field

import "math"

// Pair is a connection candidate between particles A < B
type Pair struct {
	A, B int
	Dist float64
}

// scanPairs checks every unordered pair. O(n²), fine at the particle caps.
func scanPairs(dst []Pair, particles []Particle, threshold float64) []Pair {
	for i := 0; i < len(particles); i++ {
		a := &particles[i]
		for j := i + 1; j < len(particles); j++ {
			b := &particles[j]
			dist := hypot(a.X-b.X, a.Y-b.Y)
			if dist < threshold {
				dst = append(dst, Pair{A: i, B: j, Dist: dist})
			}
		}
	}
	return dst
}

// Cell holds the indices of particles whose position falls inside it
type Cell struct {
	Indices []int
}

// Grid is a uniform spatial partition with cells as large as the
// connection threshold, so every connection lies within a 3x3 block.
// Positions outside the surface are clamped into the edge cells.
type Grid struct {
	cellSize  float64
	threshold float64
	cols      int
	rows      int
	cells     []Cell
}

// NewGrid creates a grid covering a w×h surface
func NewGrid(w, h, threshold float64) *Grid {
	g := &Grid{}
	g.Reset(w, h, threshold)
	return g
}

// Reset resizes the grid for a new surface, reusing cell storage where possible
func (g *Grid) Reset(w, h, threshold float64) {
	g.threshold = threshold
	g.cellSize = threshold
	g.cols = max(1, int(math.Ceil(w/threshold)))
	g.rows = max(1, int(math.Ceil(h/threshold)))
	n := g.cols * g.rows
	if cap(g.cells) >= n {
		g.cells = g.cells[:n]
	} else {
		g.cells = make([]Cell, n)
	}
	g.clear()
}

// Dims returns the grid size in cells
func (g *Grid) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// CellOf converts a position to clamped cell coordinates
func (g *Grid) CellOf(x, y float64) (int, int) {
	cx := int(math.Floor(x / g.cellSize))
	cy := int(math.Floor(y / g.cellSize))
	cx = max(0, min(cx, g.cols-1))
	cy = max(0, min(cy, g.rows-1))
	return cx, cy
}

func (g *Grid) cell(cx, cy int) *Cell {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return nil
	}
	return &g.cells[cy*g.cols+cx]
}

func (g *Grid) clear() {
	for i := range g.cells {
		g.cells[i].Indices = g.cells[i].Indices[:0]
	}
}

// Pairs buckets particles and appends every pair closer than the threshold
func (g *Grid) Pairs(dst []Pair, particles []Particle) []Pair {
	g.clear()
	for i := range particles {
		cx, cy := g.CellOf(particles[i].X, particles[i].Y)
		c := g.cell(cx, cy)
		c.Indices = append(c.Indices, i)
	}

	for i := range particles {
		a := &particles[i]
		cx, cy := g.CellOf(a.X, a.Y)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c := g.cell(cx+dx, cy+dy)
				if c == nil {
					continue
				}
				for _, j := range c.Indices {
					if j <= i {
						continue
					}
					b := &particles[j]
					dist := hypot(a.X-b.X, a.Y-b.Y)
					if dist < g.threshold {
						dst = append(dst, Pair{A: i, B: j, Dist: dist})
					}
				}
			}
		}
	}
	return dst
}
