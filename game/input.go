package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a host-level command triggered from the keyboard
type Action int

const (
	ActionNone Action = iota
	ActionToggleHUD
	ActionToggleGrid
	ActionReseed
	ActionQuit
)

// keyBindings maps keys to actions; F1 keeps its debug-overlay role
var keyBindings = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyF1, ActionToggleHUD},
	{ebiten.KeyF2, ActionToggleGrid},
	{ebiten.KeyR, ActionReseed},
	{ebiten.KeyEscape, ActionQuit},
}

// PointerInput tracks the mouse in CSS pixels
type PointerInput struct {
	X, Y    float64
	Present bool
}

// Update samples the cursor. Screen coordinates are physical pixels; dpr
// converts them back to CSS pixels.
func (p *PointerInput) Update(screenW, screenH int, dpr float64) {
	cx, cy := ebiten.CursorPosition()
	p.sample(cx, cy, screenW, screenH, dpr, ebiten.IsFocused())
}

func (p *PointerInput) sample(cx, cy, screenW, screenH int, dpr float64, focused bool) {
	if !focused || !pointerInside(cx, cy, screenW, screenH) {
		p.Present = false
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	p.X = float64(cx) / dpr
	p.Y = float64(cy) / dpr
	p.Present = true
}

// pointerInside reports whether a cursor position lies in the window;
// ebiten keeps reporting the last position after the cursor leaves.
func pointerInside(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

// pressedActions returns the actions whose keys went down this tick
func pressedActions() []Action {
	var actions []Action
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			actions = append(actions, b.action)
		}
	}
	return actions
}
