package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want int
	}{
		{"wide scenario", 1000, 500, 62},
		{"compact scenario", 300, 200, 4},
		{"wide capped", 1920, 1080, 150},
		{"compact capped", 767, 2000, 60},
		{"wide boundary", 768, 100, 9},
		{"compact boundary", 767.9, 100, 5},
		{"zero width", 0, 500, 0},
		{"zero height", 1000, 0, 0},
		{"negative", -800, -800, 0},
		{"tiny", 10, 10, 0},
		{"NaN", math.NaN(), 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.w, tt.h))
		})
	}
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, Compact, ClassOf(767.99))
	assert.Equal(t, Wide, ClassOf(768))
	assert.Equal(t, 80.0, ConnectionDistance(Compact))
	assert.Equal(t, 120.0, ConnectionDistance(Wide))
	assert.Equal(t, "compact", Compact.String())
	assert.Equal(t, "wide", Wide.String())
}

func TestPopulateRanges(t *testing.T) {
	ps := Populate(testRand(1), 1600, 900)
	require.Len(t, ps, 150)
	for _, p := range ps {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 1600.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 900.0)
		assert.LessOrEqual(t, math.Abs(p.VX), 0.2)
		assert.LessOrEqual(t, math.Abs(p.VY), 0.2)
		assert.GreaterOrEqual(t, p.Radius, 0.5)
		assert.LessOrEqual(t, p.Radius, 2.5)
		assert.GreaterOrEqual(t, p.BaseOpacity, 0.1)
		assert.LessOrEqual(t, p.BaseOpacity, 0.5)
		assert.Zero(t, p.Opacity)
	}
}

func newTestField(w, h float64, particles ...Particle) *Field {
	f := NewField(mustAccent(DefaultAccent))
	f.replace(w, h, particles)
	return f
}

func TestOpacityFadesInWithoutOvershoot(t *testing.T) {
	f := newTestField(1000, 500)
	f.Init(testRand(7), 1000, 500)
	require.NotZero(t, f.Len())

	prev := f.Particles()
	for step := 0; step < 300; step++ {
		f.Update()
		for i, p := range f.particles {
			require.LessOrEqual(t, p.Opacity, p.BaseOpacity)
			require.GreaterOrEqual(t, p.Opacity, prev[i].Opacity)
		}
		prev = f.Particles()
	}
	// 0.5 / 0.002 = 250 frames is enough for every particle
	for _, p := range f.particles {
		assert.Equal(t, p.BaseOpacity, p.Opacity)
	}
}

func TestEdgeWrap(t *testing.T) {
	const w, h = 1000.0, 500.0
	tests := []struct {
		name  string
		in    Particle
		wantX float64
		wantY float64
	}{
		{"past right", Particle{X: w + 11, Y: 250}, -10, 250},
		{"past left", Particle{X: -11, Y: 250}, w + 10, 250},
		{"past bottom", Particle{X: 500, Y: h + 11}, 500, -10},
		{"past top", Particle{X: 500, Y: -11}, 500, h + 10},
		{"inside band", Particle{X: w + 10, Y: -10}, w + 10, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(w, h, tt.in)
			f.Update()
			assert.Equal(t, tt.wantX, f.particles[0].X)
			assert.Equal(t, tt.wantY, f.particles[0].Y)
		})
	}
}

func TestPositionsStayInBand(t *testing.T) {
	f := newTestField(400, 300)
	f.Init(testRand(3), 400, 300)
	for i := range f.particles {
		f.particles[i].VX = 9
		f.particles[i].VY = -7
	}
	f.SetPointer(200, 150)
	for step := 0; step < 500; step++ {
		f.Update()
		for _, p := range f.particles {
			require.GreaterOrEqual(t, p.X, -10.0)
			require.LessOrEqual(t, p.X, 410.0)
			require.GreaterOrEqual(t, p.Y, -10.0)
			require.LessOrEqual(t, p.Y, 310.0)
		}
	}
}

func TestVelocityDamping(t *testing.T) {
	f := newTestField(1000, 500, Particle{X: 500, Y: 250, VX: 0.12, VY: -0.16})
	initial := math.Hypot(0.12, -0.16)
	const n = 60
	for i := 0; i < n; i++ {
		f.Update()
	}
	p := f.particles[0]
	assert.InEpsilon(t, initial*math.Pow(0.985, n), math.Hypot(p.VX, p.VY), 1e-9)
}

func TestPointerRepulsion(t *testing.T) {
	f := newTestField(1000, 500, Particle{X: 500, Y: 250})
	f.SetPointer(400, 250)
	f.Update()

	p := f.particles[0]
	want := (150.0 - 100.0) / 150.0 * 0.3 * 0.985
	assert.InDelta(t, want, p.VX, 1e-12, "pushed directly away from the pointer")
	assert.Zero(t, p.VY)
	assert.Greater(t, p.X, 500.0)
}

func TestPointerRepulsionDiagonal(t *testing.T) {
	f := newTestField(1000, 500, Particle{X: 460, Y: 280})
	f.SetPointer(400, 200) // dx=60 dy=80 dist=100
	f.Update()

	p := f.particles[0]
	mag := (150.0 - 100.0) / 150.0 * 0.3 * 0.985
	assert.InDelta(t, mag*0.6, p.VX, 1e-12)
	assert.InDelta(t, mag*0.8, p.VY, 1e-12)
}

func TestPointerOutsideRadiusOrOnTop(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
	}{
		{"at radius", 350, 250},
		{"far", 0, 0},
		{"coincident", 500, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(1000, 500, Particle{X: 500, Y: 250})
			f.SetPointer(tt.px, tt.py)
			f.Update()
			assert.Zero(t, f.particles[0].VX)
			assert.Zero(t, f.particles[0].VY)
		})
	}
}

func TestClearPointer(t *testing.T) {
	f := newTestField(1000, 500, Particle{X: 500, Y: 250})
	f.SetPointer(450, 250)
	_, _, ok := f.Pointer()
	assert.True(t, ok)

	f.ClearPointer()
	x, y, ok := f.Pointer()
	assert.False(t, ok)
	assert.Equal(t, -9999.0, x)
	assert.Equal(t, -9999.0, y)

	f.Update()
	assert.Zero(t, f.particles[0].VX)
}

func TestConnectionThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name  string
		w     float64
		dist  float64
		lines int
	}{
		{"wide at threshold", 1000, 120, 0},
		{"wide just inside", 1000, 120 - 1e-9, 1},
		{"compact at threshold", 500, 80, 0},
		{"compact just inside", 500, 80 - 1e-9, 1},
		{"compact wide-only distance", 500, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, grid := range []bool{false, true} {
				f := newTestField(tt.w, 500,
					Particle{X: 100, Y: 100, Radius: 1},
					Particle{X: 100 + tt.dist, Y: 100, Radius: 1},
				)
				f.UseGrid(grid)
				rec := &recorder{}
				f.Draw(rec)
				assert.Equal(t, tt.lines, rec.count("line"), "grid=%v", grid)
			}
		})
	}
}

func TestConnectionAlpha(t *testing.T) {
	f := newTestField(1000, 500,
		Particle{X: 100, Y: 100, Radius: 1, Opacity: 0.4, BaseOpacity: 0.4},
		Particle{X: 160, Y: 100, Radius: 1, Opacity: 0.2, BaseOpacity: 0.5},
	)
	rec := &recorder{}
	f.Draw(rec)

	require.Equal(t, 1, rec.count("line"))
	line := rec.calls[1]
	assert.Equal(t, "line", line.op)
	assert.InDelta(t, 0.5*0.12*0.2/0.4, line.paint.Alpha, 1e-12)
	assert.Equal(t, 0.5, line.width)
	assert.Equal(t, [4]float64{100, 100, 160, 100}, [4]float64{line.x0, line.y0, line.x1, line.y1})
}

func TestDrawOrderAndGlow(t *testing.T) {
	f := newTestField(1000, 500,
		Particle{X: 10, Y: 10, Radius: 2, Opacity: 0.3},
		Particle{X: 900, Y: 400, Radius: 1.5, Opacity: 0.2},
	)
	rec := &recorder{}
	f.Draw(rec)

	require.Len(t, rec.calls, 4)
	assert.Equal(t, drawCall{op: "clear", x1: 1000, y1: 500}, rec.calls[0])

	glow, core := rec.calls[1], rec.calls[2]
	assert.Equal(t, 6.0, glow.radius)
	assert.InDelta(t, 0.03, glow.paint.Alpha, 1e-12)
	assert.Equal(t, 2.0, core.radius)
	assert.Equal(t, 0.3, core.paint.Alpha)

	// radius 1.5 is not above the glow threshold
	assert.Equal(t, 1.5, rec.calls[3].radius)
	assert.Equal(t, 0.2, rec.calls[3].paint.Alpha)
}

func TestDrawUsesSingleAccent(t *testing.T) {
	f := newTestField(600, 400)
	f.Init(testRand(5), 600, 400)
	for i := 0; i < 100; i++ {
		f.Update()
	}
	rec := &recorder{}
	f.Draw(rec)
	accent := mustAccent(DefaultAccent)
	for _, c := range rec.calls[1:] {
		assert.Equal(t, accent, c.paint.Hue)
	}
}

func TestDrawZeroArea(t *testing.T) {
	f := newTestField(0, 0)
	f.Init(testRand(1), 0, 0)
	f.Update()
	rec := &recorder{}
	f.Draw(rec)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "clear", rec.calls[0].op)
}

func TestGridMatchesPairScan(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		w := 200 + float64(seed)*90
		h := 150 + float64(seed)*40
		ps := Populate(testRand(seed), w, h)
		// push a few particles into the wrap band
		if len(ps) > 3 {
			ps[0].X, ps[0].Y = -9, -9
			ps[1].X, ps[1].Y = w+9, h+9
			ps[2].X = w + 10
		}
		threshold := ConnectionDistance(ClassOf(w))

		want := scanPairs(nil, ps, threshold)
		got := NewGrid(w, h, threshold).Pairs(nil, ps)
		assert.ElementsMatch(t, want, got, "seed %d (%vx%v)", seed, w, h)
	}
}

func TestGridCellOfClamps(t *testing.T) {
	g := NewGrid(1000, 500, 120)
	cols, rows := g.Dims()
	assert.Equal(t, 9, cols)
	assert.Equal(t, 5, rows)

	cx, cy := g.CellOf(-10, -10)
	assert.Equal(t, [2]int{0, 0}, [2]int{cx, cy})
	cx, cy = g.CellOf(1010, 510)
	assert.Equal(t, [2]int{8, 4}, [2]int{cx, cy})
	cx, cy = g.CellOf(130, 250)
	assert.Equal(t, [2]int{1, 2}, [2]int{cx, cy})
}

func TestPaintColor(t *testing.T) {
	p := Paint{Hue: mustAccent(DefaultAccent), Alpha: 0.5}
	n := p.NRGBA()
	assert.Equal(t, uint8(255), n.R)
	assert.Equal(t, uint8(77), n.G)
	assert.Equal(t, uint8(0), n.B)
	assert.Equal(t, uint8(128), n.A)

	r, g, b, a := p.RGBA()
	assert.LessOrEqual(t, r, a)
	assert.LessOrEqual(t, g, a)
	assert.Zero(t, b)
	assert.InDelta(t, 0x7fff, a, 1)

	_, _, _, a = Paint{Alpha: 3}.RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestParseAccent(t *testing.T) {
	c, err := ParseAccent("#00ff00")
	require.NoError(t, err)
	r, g, b := c.RGB255()
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})

	_, err = ParseAccent("orange")
	assert.Error(t, err)
}
