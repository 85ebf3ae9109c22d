// Package game hosts the particle field in an ebiten window, with the
// scrambled headline, the custom cursor and a debug overlay drawn on top.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"constellation/cursor"
	"constellation/field"
	"constellation/loop"
)

// Game implements ebiten.Game
type Game struct {
	config   Config
	logger   *slog.Logger
	surface  *Surface
	frames   *loop.Queue
	sim      *field.Simulator
	renderer *Renderer
	headline *Headline
	follower *cursor.Follower
	trail    *cursor.Trail
	pointer  PointerInput

	meter    *FrameMeter
	profiler *Profiler

	// Last Layout result, in CSS pixels and the capped pixel ratio
	outsideW, outsideH int
	dpr                float64

	lastUpdateTime time.Time
}

// NewGame creates the host and starts the field's frame loop
func NewGame(config Config, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		config:         config,
		logger:         logger,
		surface:        NewSurface(float64(config.ScreenWidth), float64(config.ScreenHeight), 1),
		frames:         loop.NewQueue(),
		follower:       cursor.NewFollower(),
		trail:          cursor.NewTrail(),
		meter:          NewFrameMeter(config.MinFPS),
		outsideW:       config.ScreenWidth,
		outsideH:       config.ScreenHeight,
		dpr:            1,
		lastUpdateTime: time.Now(),
	}

	opts := append(config.fieldOptions(),
		field.WithScheduler(g.frames),
		field.WithLogger(logger))
	sim, err := field.New(g.surface, opts...)
	if err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	g.sim = sim
	GetDebugState().SpatialGrid = config.SpatialGrid

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed+1))
	if config.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	var grain *Grain
	if config.Grain {
		grain = NewGrain(rng)
	}
	g.renderer = NewRenderer(field.Paint{Hue: config.Accent, Alpha: 1}, grain)

	if len(config.Phrases) > 0 {
		noise := field.Paint{Hue: config.Accent, Alpha: 0.8}
		g.headline, err = NewHeadline(rng, config.Phrases, config.HoldFrames, noise)
		if err != nil {
			return nil, fmt.Errorf("create headline: %w", err)
		}
	}

	if config.Profiling {
		g.profiler, err = NewProfiler(config.ProfileDir, config.CaptureDuration, logger)
		if err != nil {
			return nil, err
		}
	}

	g.sim.Start()
	logger.Info("field started",
		"particles", sim.Len(),
		"class", sim.Class().String(),
		"spatial_grid", config.SpatialGrid)
	return g, nil
}

// Update advances input, the field and the overlays by one tick
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	for _, action := range pressedActions() {
		if err := g.apply(action); err != nil {
			return err
		}
	}

	if g.meter.Tick(deltaTime) {
		g.onFrameDrop()
	}

	sw, sh := g.screenSize()
	g.pointer.Update(sw, sh, g.dpr)
	if g.pointer.Present {
		g.sim.SetPointer(g.pointer.X, g.pointer.Y)
		g.follower.Move(g.pointer.X, g.pointer.Y)
		g.trail.Move(g.pointer.X, g.pointer.Y)
	} else {
		g.sim.ClearPointer()
		g.follower.Leave()
	}

	g.frames.Tick()
	g.follower.Step(deltaTime)
	g.trail.Step()
	if g.headline != nil {
		g.headline.Update()
	}
	return nil
}

// apply runs one keyboard action
func (g *Game) apply(action Action) error {
	debug := GetDebugState()
	switch action {
	case ActionToggleHUD:
		debug.ShowHUD = !debug.ShowHUD
	case ActionToggleGrid:
		debug.SpatialGrid = !debug.SpatialGrid
		g.sim.SetSpatialGrid(debug.SpatialGrid)
		g.logger.Debug("connection search switched", "spatial_grid", debug.SpatialGrid)
	case ActionReseed:
		g.sim.Resize()
	case ActionQuit:
		g.sim.Stop()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) onFrameDrop() {
	fps := g.meter.FPS()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	g.logger.Warn("frame rate dropped",
		"fps", math.Round(fps),
		"particles", g.sim.Len(),
		"num_gc", m.NumGC,
		"heap_alloc_kb", m.HeapAlloc/1024)

	if g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("fps%.0f-particles%d", fps, g.sim.Len())
	if err := g.profiler.CaptureProfile(reason); err != nil {
		g.logger.Debug("profile not captured", "error", err)
	}
}

// Draw composes the screen
func (g *Game) Draw(screen *ebiten.Image) {
	var hud *HUDStats
	if debug := GetDebugState(); debug.ShowHUD {
		hud = &HUDStats{
			FPS:       ebiten.ActualFPS(),
			Particles: g.sim.Len(),
			Class:     g.sim.Class(),
			Grid:      g.sim.SpatialGrid(),
			Frames:    g.sim.Frames(),
		}
	}
	g.renderer.Render(screen, g.surface, g.headline, g.follower, g.trail, hud)
}

// Layout keeps the screen in physical pixels and re-initializes the field
// whenever the window size or monitor scale changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := field.DevicePixelRatio(ebiten.Monitor().DeviceScaleFactor())
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH || dpr != g.dpr {
		g.outsideW, g.outsideH, g.dpr = outsideWidth, outsideHeight, dpr
		g.surface.SetBounds(float64(outsideWidth), float64(outsideHeight), dpr)
		g.sim.Resize()
	}
	return g.screenSize()
}

// screenSize is the physical pixel size of the window
func (g *Game) screenSize() (int, int) {
	return physicalSize(g.outsideW, g.dpr), physicalSize(g.outsideH, g.dpr)
}

func physicalSize(css int, dpr float64) int {
	return max(int(math.Ceil(float64(css)*dpr)), 1)
}

// Close stops the frame loop
func (g *Game) Close() {
	g.sim.Stop()
}
