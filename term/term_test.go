package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constellation/field"
	"constellation/loop"
)

var (
	testBackground = colorful.Color{R: 0.04, G: 0.04, B: 0.05}
	testAccent     = colorful.Color{R: 1, G: 77.0 / 255, B: 0}
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestSurfaceBoundsFollowScreen(t *testing.T) {
	screen := newScreen(t, 80, 24)
	s := NewSurface(screen, testBackground)

	w, h := s.Bounds()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 384.0, h)
	assert.Equal(t, 1.0, s.DevicePixelRatio())

	s.SetBackingSize(640, 384)
	cols, rows := s.Grid()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)
}

func TestPresentDrawsInk(t *testing.T) {
	screen := newScreen(t, 20, 5)
	s := NewSurface(screen, testBackground)
	s.SetBackingSize(160, 80)

	paint := field.Paint{Hue: testAccent, Alpha: 0.3}
	s.StrokeLine(4, 8, 76, 8, 0.5, field.Paint{Hue: testAccent, Alpha: 0.05})
	s.FillCircle(12, 8, 1, paint)
	s.Present()

	mainc, _, style, _ := screen.GetContent(1, 0)
	assert.Equal(t, dotGlyph, mainc, "particle covers line")
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	assert.Greater(t, r, g)
	assert.Greater(t, r, b)

	for col := 2; col <= 9; col++ {
		mainc, _, _, _ = screen.GetContent(col, 0)
		assert.Equal(t, lineGlyph, mainc, "col %d", col)
	}
	mainc, _, _, _ = screen.GetContent(10, 0)
	assert.Equal(t, ' ', mainc)
	mainc, _, _, _ = screen.GetContent(1, 1)
	assert.Equal(t, ' ', mainc)
}

func TestClearRectWipesInk(t *testing.T) {
	screen := newScreen(t, 10, 4)
	s := NewSurface(screen, testBackground)
	s.SetBackingSize(80, 64)

	s.FillCircle(20, 20, 1, field.Paint{Hue: testAccent, Alpha: 0.4})
	s.ClearRect(0, 0, 80, 64)
	s.Present()

	mainc, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, ' ', mainc)
}

func TestStrongerInkWins(t *testing.T) {
	screen := newScreen(t, 4, 2)
	s := NewSurface(screen, testBackground)
	s.SetBackingSize(32, 32)

	// glow first, then the brighter core on the same cell
	s.FillCircle(4, 4, 6, field.Paint{Hue: testAccent, Alpha: 0.04})
	s.FillCircle(4, 4, 2.2, field.Paint{Hue: testAccent, Alpha: 0.4})
	s.Present()

	mainc, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, coreGlyph, mainc)
}

func TestStepPresentsToScreen(t *testing.T) {
	screen := newScreen(t, 120, 40)
	s := NewSurface(screen, testBackground)
	sim, err := field.New(s, field.WithSeed(4))
	require.NoError(t, err)
	require.Greater(t, sim.Len(), 0)

	for i := 0; i < 200; i++ {
		sim.Step()
	}

	inked := 0
	for row := 0; row < 40; row++ {
		for col := 0; col < 120; col++ {
			if mainc, _, _, _ := screen.GetContent(col, row); mainc != ' ' {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 0)
}

func newDriver(t *testing.T, cols, rows int) (tcell.SimulationScreen, *field.Simulator, *Driver) {
	t.Helper()
	screen := newScreen(t, cols, rows)
	sim, err := field.New(NewSurface(screen, testBackground), field.WithSeed(9))
	require.NoError(t, err)
	return screen, sim, NewDriver(screen, sim)
}

func TestDriverMouseMovesPointer(t *testing.T) {
	_, sim, d := newDriver(t, 80, 24)

	assert.True(t, d.Handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)))
	x, y, ok := sim.Pointer()
	require.True(t, ok)
	assert.Equal(t, 84.0, x)
	assert.Equal(t, 88.0, y)

	assert.True(t, d.Handle(&tcell.EventFocus{Focused: false}))
	_, _, ok = sim.Pointer()
	assert.False(t, ok)
}

func TestDriverResizeReinitializes(t *testing.T) {
	screen, sim, d := newDriver(t, 200, 60)
	assert.Equal(t, field.Wide, sim.Class())

	screen.SetSize(40, 20)
	assert.True(t, d.Handle(tcell.NewEventResize(40, 20)))

	w, h, _ := sim.Size()
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 320.0, h)
	assert.Equal(t, field.Compact, sim.Class())
	assert.Equal(t, field.Count(320, 320), sim.Len())
}

func TestDriverQuitKeys(t *testing.T) {
	_, _, d := newDriver(t, 20, 10)

	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, d.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestRunStopsOnQuit(t *testing.T) {
	screen, sim, d := newDriver(t, 20, 10)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
	assert.False(t, sim.Running())
}

func TestRunStopsOnCancel(t *testing.T) {
	_, sim, d := newDriver(t, 20, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, sim.Running())
}

func TestRunTickerJoinsTickerBeforeReturning(t *testing.T) {
	screen := newScreen(t, 60, 20)
	tk := loop.NewTicker(time.Millisecond)
	sim, err := field.New(NewSurface(screen, testBackground), field.WithSeed(2), field.WithScheduler(tk))
	require.NoError(t, err)
	d := NewDriver(screen, sim)

	done := make(chan error, 1)
	go func() { done <- d.RunTicker(context.Background(), tk) }()

	require.Eventually(t, func() bool { return sim.Frames() >= 3 }, 2*time.Second, time.Millisecond)
	assert.True(t, tk.Running())
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunTicker did not return after quit key")
	}
	assert.False(t, tk.Running(), "ticker goroutine has exited")
	assert.False(t, sim.Running())

	frames := sim.Frames()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frames, sim.Frames())
}
