package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

var (
	// ErrProfileCooldown is returned when a capture was taken too recently
	ErrProfileCooldown = errors.New("profile capture on cooldown")

	// ErrProfiling is returned while a capture is still running
	ErrProfiling = errors.New("already profiling")
)

// Profiler captures a CPU profile and an execution trace when the frame
// rate drops.
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	logger          *slog.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, duration time.Duration, logger *slog.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		profilesDir:     dir,
		captureDuration: duration,
		logger:          logger,
	}, nil
}

// CaptureProfile starts a background capture tagged with reason. The CPU
// profile and trace are written in parallel.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return ErrProfiling
	}
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w: last capture %v ago", ErrProfileCooldown, time.Since(p.lastCaptureTime).Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Error("cpu profile failed", "error", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Error("trace failed", "error", err)
			}
		}()
		wg.Wait()

		p.summarize(baseName)
	}()
	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", "path", path)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Info("trace saved", "path", path)
	return nil
}

// summarize logs where the capture went and the heap state after it
func (p *Profiler) summarize(baseName string) {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("could not inspect profile", "error", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("performance capture complete",
		"profile", path,
		"size_kb", float64(info.Size())/1024,
		"view", "go tool pprof -http=:8080 "+path,
		"alloc_kb", m.Alloc/1024,
		"sys_kb", m.Sys/1024,
		"num_gc", m.NumGC,
		"heap_objects", m.HeapObjects)
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// FrameMeter measures frames per second over half-second windows and flags
// drops below a floor once a warm-up period has passed.
type FrameMeter struct {
	fps      float64
	frames   int
	elapsed  float64
	uptime   float64
	lastDrop float64

	MinFPS   float64
	WarmUp   float64 // seconds before drops are reported
	Cooldown float64 // seconds between reported drops
}

// NewFrameMeter creates a meter that reports drops below minFPS
func NewFrameMeter(minFPS float64) *FrameMeter {
	return &FrameMeter{fps: 60, MinFPS: minFPS, WarmUp: 3, Cooldown: 10, lastDrop: -1}
}

// Tick records one frame of dt seconds. It returns true when a window
// closes below MinFPS outside the warm-up and cooldown periods.
func (m *FrameMeter) Tick(dt float64) bool {
	m.uptime += dt
	m.elapsed += dt
	m.frames++
	if m.elapsed < 0.5 {
		return false
	}

	m.fps = float64(m.frames) / m.elapsed
	m.frames = 0
	m.elapsed = 0

	if m.MinFPS <= 0 || m.fps >= m.MinFPS || m.uptime < m.WarmUp {
		return false
	}
	if m.lastDrop >= 0 && m.uptime-m.lastDrop < m.Cooldown {
		return false
	}
	m.lastDrop = m.uptime
	return true
}

// FPS returns the rate measured over the last window
func (m *FrameMeter) FPS() float64 {
	return m.fps
}
