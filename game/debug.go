package game

// DebugState holds debug toggles that persist across resets
type DebugState struct {
	ShowHUD     bool // FPS, particle count and device class overlay
	SpatialGrid bool // grid-based connection search
}

var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
