package term

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"constellation/field"
	"constellation/loop"
)

// Driver routes terminal events to a simulator drawing on a Surface.
type Driver struct {
	screen tcell.Screen
	sim    *field.Simulator
}

// NewDriver binds screen events to sim
func NewDriver(screen tcell.Screen, sim *field.Simulator) *Driver {
	return &Driver{screen: screen, sim: sim}
}

// Handle applies one event and reports whether the driver should keep running.
func (d *Driver) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			d.sim.Resize()
		}

	case *tcell.EventResize:
		d.screen.Sync()
		d.sim.Resize()
		w, h, _ := d.sim.Size()
		slog.Debug("terminal resized", "width", w, "height", h, "particles", d.sim.Len())

	case *tcell.EventMouse:
		col, row := ev.Position()
		d.sim.SetPointer(CellCentre(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			d.sim.ClearPointer()
		}
	}
	return true
}

// Run starts the simulator and handles events until ctx is done, the user
// quits, or the screen is finalized.
func (d *Driver) Run(ctx context.Context) error {
	d.sim.Start()
	defer d.sim.Stop()

	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !d.Handle(ev) {
				return nil
			}
		}
	}
}

// RunTicker runs t alongside Run and returns only after both have finished,
// so no frame reaches the screen once RunTicker returns.
func (d *Driver) RunTicker(ctx context.Context, t *loop.Ticker) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := t.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("frame ticker stopped", "error", err)
		}
	}()

	err := d.Run(ctx)
	cancel()
	<-done
	return err
}
