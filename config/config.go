// Package config loads runtime settings from defaults, an optional config
// file, CONSTELLATION_* environment variables and command-line flags, in
// increasing order of precedence.
package config

// Config holds all application configuration.
type Config struct {
	Window   WindowConfig   `mapstructure:"window" validate:"required"`
	Field    FieldConfig    `mapstructure:"field" validate:"required"`
	Headline HeadlineConfig `mapstructure:"headline"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
}

// WindowConfig sizes the host window or terminal canvas, in CSS pixels.
type WindowConfig struct {
	Width     int    `mapstructure:"width" validate:"gt=0"`
	Height    int    `mapstructure:"height" validate:"gt=0"`
	Title     string `mapstructure:"title"`
	Resizable bool   `mapstructure:"resizable"`
	Grain     bool   `mapstructure:"grain"` // film grain over the page
}

// FieldConfig tunes the particle field.
type FieldConfig struct {
	Accent      string `mapstructure:"accent" validate:"required,hexcolor"`
	Seed        uint64 `mapstructure:"seed"` // 0 picks a random seed
	SpatialGrid bool   `mapstructure:"spatial_grid"`
}

// HeadlineConfig drives the scrambled headline drawn over the field.
type HeadlineConfig struct {
	Phrases    []string `mapstructure:"phrases" validate:"dive,max=80"`
	HoldFrames int      `mapstructure:"hold_frames" validate:"gte=0"`
}

// ProfileConfig enables CPU/trace capture when the frame rate drops.
type ProfileConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Dir     string  `mapstructure:"dir" validate:"required_if=Enabled true"`
	MinFPS  float64 `mapstructure:"min_fps" validate:"gte=0"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}
