package game

import (
	"fmt"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"constellation/config"
	"constellation/field"
)

// Config holds the host window settings
type Config struct {
	// ScreenWidth is the initial window width in CSS pixels
	ScreenWidth int

	// ScreenHeight is the initial window height in CSS pixels
	ScreenHeight int

	Title     string
	Resizable bool
	Grain     bool

	// Accent colours particles, connections, headline noise and the cursor
	Accent colorful.Color

	// Seed fixes the particle layout; 0 picks a random one
	Seed uint64

	// SpatialGrid starts with grid-based connection search
	SpatialGrid bool

	// Phrases cycle through the scrambled headline; empty hides it
	Phrases    []string
	HoldFrames int

	// Profiling captures CPU profile and trace when FPS drops below MinFPS
	Profiling       bool
	ProfileDir      string
	MinFPS          float64
	CaptureDuration time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	accent, _ := field.ParseAccent(field.DefaultAccent)
	return Config{
		ScreenWidth:     1280,
		ScreenHeight:    720,
		Title:           "constellation",
		Resizable:       true,
		Grain:           true,
		Accent:          accent,
		HoldFrames:      180,
		ProfileDir:      "profiles",
		MinFPS:          30,
		CaptureDuration: 5 * time.Second,
	}
}

// FromConfig converts loaded settings into a host Config
func FromConfig(cfg *config.Config) (Config, error) {
	c := DefaultConfig()
	accent, err := field.ParseAccent(cfg.Field.Accent)
	if err != nil {
		return c, fmt.Errorf("parse accent %q: %w", cfg.Field.Accent, err)
	}
	c.ScreenWidth = cfg.Window.Width
	c.ScreenHeight = cfg.Window.Height
	if cfg.Window.Title != "" {
		c.Title = cfg.Window.Title
	}
	c.Resizable = cfg.Window.Resizable
	c.Grain = cfg.Window.Grain
	c.Accent = accent
	c.Seed = cfg.Field.Seed
	c.SpatialGrid = cfg.Field.SpatialGrid
	c.Phrases = cfg.Headline.Phrases
	c.HoldFrames = cfg.Headline.HoldFrames
	c.Profiling = cfg.Profile.Enabled
	if cfg.Profile.Dir != "" {
		c.ProfileDir = cfg.Profile.Dir
	}
	c.MinFPS = cfg.Profile.MinFPS
	return c, nil
}

// fieldOptions builds simulator options from the config
func (c Config) fieldOptions() []field.Option {
	opts := []field.Option{
		field.WithAccent(c.Accent),
		field.WithSpatialGrid(c.SpatialGrid),
	}
	if c.Seed != 0 {
		opts = append(opts, field.WithSeed(c.Seed))
	}
	return opts
}
