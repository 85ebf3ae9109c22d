package field

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"constellation/loop"
)

var (
	// ErrNoSurface is returned when the simulator is built without a surface
	ErrNoSurface = errors.New("field: no drawing surface")

	// ErrNoContext is returned when the surface has no 2D context
	ErrNoContext = errors.New("field: surface has no 2D context")
)

// Option configures a Simulator
type Option func(*options)

type options struct {
	rng    *rand.Rand
	accent colorful.Color
	sched  loop.Scheduler
	grid   bool
	logger *slog.Logger
}

// WithRand sets the random source used to place particles
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds a deterministic random source
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithAccent sets the colour used for particles and connections
func WithAccent(c colorful.Color) Option {
	return func(o *options) { o.accent = c }
}

// WithScheduler sets the frame scheduler Start uses
func WithScheduler(s loop.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithSpatialGrid finds connections through a spatial grid instead of a
// pairwise scan. Both produce the same connections.
func WithSpatialGrid(enabled bool) Option {
	return func(o *options) { o.grid = enabled }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Simulator owns a Field, the surface it draws on and the frame loop.
// Pointer and resize entry points may be called from any goroutine.
type Simulator struct {
	mu      sync.Mutex
	surface Surface
	ctx     Context
	field   *Field
	rng     *rand.Rand
	dpr     float64
	logger  *slog.Logger

	loop *loop.Loop
}

// New creates a simulator for s and populates it for the current size.
func New(s Surface, opts ...Option) (*Simulator, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	ctx := s.Context()
	if ctx == nil {
		return nil, ErrNoContext
	}

	o := options{accent: mustAccent(DefaultAccent)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.sched == nil {
		o.sched = loop.NewQueue()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	sim := &Simulator{
		surface: s,
		ctx:     ctx,
		field:   NewField(o.accent),
		rng:     o.rng,
		logger:  o.logger,
	}
	sim.field.UseGrid(o.grid)
	sim.loop = loop.New(o.sched, sim.Step)
	sim.Resize()
	return sim, nil
}

// Resize re-queries the surface size, rescales its backing store and
// replaces the whole particle set. No particle survives a resize.
func (s *Simulator) Resize() {
	w, h := s.surface.Bounds()
	w = math.Max(w, 0)
	h = math.Max(h, 0)
	dpr := DevicePixelRatio(s.surface.DevicePixelRatio())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.surface.SetBackingSize(int(math.Ceil(w*dpr)), int(math.Ceil(h*dpr)))
	s.dpr = dpr
	s.field.replace(w, h, Populate(s.rng, w, h))

	s.logger.Debug("particle field reset",
		"width", w,
		"height", h,
		"dpr", dpr,
		"class", s.field.class.String(),
		"particles", len(s.field.particles))
}

// DevicePixelRatio caps a reported ratio at 2 and treats nonsense as 1
func DevicePixelRatio(reported float64) float64 {
	if !(reported > 0) {
		return 1
	}
	return math.Min(reported, maxDevicePixelRatio)
}

// Step runs one frame: update then draw.
func (s *Simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field.Update()
	s.field.Draw(s.ctx)
	if p, ok := s.ctx.(Presenter); ok {
		p.Present()
	}
}

// SetPointer records the pointer position in viewport CSS pixels
func (s *Simulator) SetPointer(x, y float64) {
	s.mu.Lock()
	s.field.SetPointer(x, y)
	s.mu.Unlock()
}

// ClearPointer forgets the pointer, e.g. when it leaves the window
func (s *Simulator) ClearPointer() {
	s.mu.Lock()
	s.field.ClearPointer()
	s.mu.Unlock()
}

// SetSpatialGrid switches the connection search at runtime
func (s *Simulator) SetSpatialGrid(enabled bool) {
	s.mu.Lock()
	s.field.UseGrid(enabled)
	s.mu.Unlock()
}

// SpatialGrid reports whether connections are found through the grid
func (s *Simulator) SpatialGrid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.grid != nil
}

// Start begins the per-frame loop.
func (s *Simulator) Start() {
	s.loop.Start()
}

// Stop cancels the per-frame loop and waits for a frame running on another
// goroutine to finish. No frame runs after Stop returns.
func (s *Simulator) Stop() {
	s.loop.Halt()
}

// Running reports whether the frame loop is active
func (s *Simulator) Running() bool {
	return s.loop.State() == loop.Running
}

// Frames returns how many frames the loop has executed
func (s *Simulator) Frames() uint64 {
	return s.loop.Frames()
}

// Particles returns a snapshot of the particle set
func (s *Simulator) Particles() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Particles()
}

// Len returns the particle count
func (s *Simulator) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Len()
}

// Class returns the current device class
func (s *Simulator) Class() Class {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Class()
}

// Threshold returns the current connection distance
func (s *Simulator) Threshold() float64 {
	return ConnectionDistance(s.Class())
}

// Size returns the surface size in CSS pixels and the capped pixel ratio
func (s *Simulator) Size() (w, h, dpr float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.width, s.field.height, s.dpr
}

// Pointer returns the last pointer position and whether one is present
func (s *Simulator) Pointer() (x, y float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Pointer()
}
