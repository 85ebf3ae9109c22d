package game

import "github.com/hajimehoshi/ebiten/v2"

// ConfigureWindow applies window settings; call it before ebiten.RunGame
func ConfigureWindow(c Config) {
	ebiten.SetWindowSize(c.ScreenWidth, c.ScreenHeight)
	ebiten.SetWindowTitle(c.Title)
	if c.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	syncFramesToDisplay()
}

// syncFramesToDisplay runs Update once per displayed frame instead of at a
// fixed tick rate, so every Update advances the field by exactly one frame.
func syncFramesToDisplay() {
	ebiten.SetTPS(ebiten.SyncWithFPS)
}
