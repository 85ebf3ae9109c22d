package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CONSTELLATION_FIELD_ACCENT
const EnvPrefix = "CONSTELLATION"

// ErrInvalid wraps validation failures
var ErrInvalid = errors.New("invalid configuration")

var defaults = map[string]any{
	"window.width":         1280,
	"window.height":        720,
	"window.title":         "constellation",
	"window.resizable":     true,
	"window.grain":         true,
	"field.accent":         "#ff4d00",
	"field.seed":           uint64(0),
	"field.spatial_grid":   false,
	"headline.phrases":     []string{"We build brands that move", "Design. Motion. Code.", "Let's make something loud"},
	"headline.hold_frames": 180,
	"profile.enabled":      false,
	"profile.dir":          "profiles",
	"profile.min_fps":      30.0,
	"log.level":            "info",
	"log.format":           "text",
}

// NewFlagSet registers the shared flags. Callers may add their own before Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML, TOML or JSON config file")
	fs.Int("window.width", defaults["window.width"].(int), "surface width in CSS pixels")
	fs.Int("window.height", defaults["window.height"].(int), "surface height in CSS pixels")
	fs.Bool("window.grain", true, "draw film grain over the window")
	fs.String("field.accent", defaults["field.accent"].(string), "accent colour as #rrggbb")
	fs.Uint64("field.seed", 0, "random seed, 0 for a random one")
	fs.Bool("field.spatial_grid", false, "find connections through a spatial grid")
	fs.Bool("profile.enabled", false, "capture a CPU profile when the frame rate drops")
	fs.String("log.level", defaults["log.level"].(string), "debug, info, warn or error")
	fs.String("log.format", defaults["log.format"].(string), "json or text")
	return fs
}

// Load parses args into fs and resolves the final configuration.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Only flags set on the command line override the layers below
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || !f.Changed || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("bind flags: %w", bindErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
