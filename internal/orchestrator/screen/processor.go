package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/noflash/internal/config"
	"github.com/GriffinCanCode/noflash/internal/detect"
	apperrors "github.com/GriffinCanCode/noflash/internal/errors"
	"github.com/GriffinCanCode/noflash/internal/resilience"
	screencap "github.com/GriffinCanCode/noflash/internal/screen"
	"github.com/GriffinCanCode/noflash/internal/syncx"
	"github.com/GriffinCanCode/noflash/internal/trace"
)

// State of the frame loop.
type State uint32

const (
	Idle State = iota
	Processing
)

func (s State) String() string {
	return [...]string{"idle", "processing"}[s]
}

// Stats is a snapshot of frame loop counters.
type Stats struct {
	Ticks           uint64        // ticks that ran
	Skipped         uint64        // ticks dropped because one was still running
	CaptureFailures uint64        // ticks skipped on a transient capture error
	BreakerSkips    uint64        // ticks skipped while the capture breaker was open
	BreakerTrips    uint64        // times the capture breaker opened
	Overruns        uint64        // ticks longer than the tick interval
	Published       uint64        // overlay states published
	SceneCuts       uint64        // scene cuts seen by the tracker
	BiasedCuts      uint64        // scene cuts under a non-empty previous overlay
	LastDuration    time.Duration // duration of the latest tick
	Areas           int           // size of the current overlay state
}

// Processor owns the overlay state and updates it once per tick:
// capture, undo last tick's shading, scan, publish, redraw.
type Processor struct {
	capturer screencap.Capturer
	cfg      *config.Config
	scanner  detect.Scanner
	comp     *detect.Compensator
	breaker  *resilience.Breaker
	scene    *SceneTracker
	overlay  *syncx.RWGuard[detect.Areas]
	redraw   atomic.Pointer[func()]

	state atomic.Uint32
	seq   atomic.Uint64

	skipped         atomic.Uint64
	captureFailures atomic.Uint64
	breakerSkips    atomic.Uint64
	breakerTrips    atomic.Uint64
	biasedCuts      atomic.Uint64
	overruns        atomic.Uint64
	lastDuration    atomic.Int64

	// touched only inside a tick
	lastReport time.Time
}

// NewProcessor creates a frame loop over capturer. cfg must have passed Validate.
func NewProcessor(capturer screencap.Capturer, cfg *config.Config) *Processor {
	p := &Processor{
		capturer:   capturer,
		cfg:        cfg,
		scanner:    detect.Scanner{AreaSize: cfg.AreaSize, Threshold: cfg.Threshold},
		comp:       detect.NewCompensator(cfg.AreaSize, cfg.ShaderOpacity),
		scene:      NewSceneTracker(cfg.SceneSampleEvery, cfg.SceneCutDistance),
		overlay:    syncx.NewGuard[detect.Areas](nil),
		lastReport: time.Now(),
	}
	p.breaker = resilience.New(resilience.CaptureConfig()).WithHook(func(_, to resilience.State) {
		if to == resilience.Open {
			p.breakerTrips.Add(1)
		}
	})
	return p
}

// OnRedraw registers the function called after each published overlay state.
func (p *Processor) OnRedraw(fn func()) {
	p.redraw.Store(&fn)
}

// Areas returns the overlay state published by the latest completed tick.
func (p *Processor) Areas() detect.Areas {
	return p.overlay.Get()
}

// State reports whether a tick is running.
func (p *Processor) State() State {
	return State(p.state.Load())
}

// Run drives Tick from a ticker until ctx is done or stopCh is closed. A
// ticker drops ticks that fall due while one is running, so slow captures
// lower the frame rate instead of piling up. Returns the first fatal error.
func (p *Processor) Run(ctx context.Context, stopCh <-chan struct{}) error {
	ticker := time.NewTicker(p.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stopCh:
			return nil
		case <-ticker.C:
			if err := p.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick runs one iteration. A tick that arrives while another is running is
// dropped. Transient capture failures keep the previous overlay state and
// return nil; only fatal errors are returned.
func (p *Processor) Tick(ctx context.Context) error {
	if !p.state.CompareAndSwap(uint32(Idle), uint32(Processing)) {
		p.skipped.Add(1)
		return nil
	}
	defer p.state.Store(uint32(Idle))

	ctx, span := trace.StartSpan(ctx, TickSpanName, p.seq.Add(1))
	log := trace.Logger(ctx)

	err := p.process(ctx, span)

	span.End()
	d := span.Duration()
	p.lastDuration.Store(int64(d))
	if d > p.cfg.TickInterval() {
		p.overruns.Add(1)
	}
	log.Debug("tick complete", "span", span)

	if now := time.Now(); now.Sub(p.lastReport) >= p.cfg.StatsInterval {
		p.lastReport = now
		p.logStats()
	}
	return err
}

func (p *Processor) process(ctx context.Context, span *trace.Span) error {
	log := trace.Logger(ctx)

	img, err := resilience.ExecuteWithResult(p.breaker, p.capturer.Capture)
	switch {
	case err == nil:
	case apperrors.IsFatal(err):
		return err
	case errors.Is(err, resilience.ErrOpen):
		p.breakerSkips.Add(1)
		span.SetAttr("skipped", "breaker open")
		return nil
	default:
		p.captureFailures.Add(1)
		log.Warn("capture failed, keeping previous overlay", "code", apperrors.CodeOf(err), "error", err)
		span.SetAttr("skipped", "capture failed")
		return nil
	}

	prev := p.overlay.Get()
	frame := p.comp.Apply(img, prev)
	areas := p.scanner.Scan(frame)
	p.overlay.Swap(areas)

	span.SetAttr("compensated", len(prev))
	span.SetAttr("areas", len(areas))

	// Compensation assumes shaded blocks kept their content since the last
	// tick. A scene cut under a non-empty overlay breaks that, so this
	// tick's brightness values for those blocks are off.
	switch cut, err := p.scene.Observe(span.Seq, frame); {
	case err != nil:
		log.Debug("scene hash failed", "error", err)
	case cut && len(prev) > 0:
		p.biasedCuts.Add(1)
		log.Warn("scene cut under shaded areas, compensation may be off this tick",
			"compensated", len(prev), "areas", len(areas))
	case cut:
		log.Debug("scene cut", "areas", len(areas))
	}

	if fn := p.redraw.Load(); fn != nil {
		(*fn)()
	}
	return nil
}

// Stats returns a snapshot of the frame loop counters.
func (p *Processor) Stats() Stats {
	areas, published := p.overlay.Load()
	return Stats{
		Ticks:           p.seq.Load(),
		Skipped:         p.skipped.Load(),
		CaptureFailures: p.captureFailures.Load(),
		BreakerSkips:    p.breakerSkips.Load(),
		BreakerTrips:    p.breakerTrips.Load(),
		Overruns:        p.overruns.Load(),
		Published:       published,
		SceneCuts:       p.scene.Cuts(),
		BiasedCuts:      p.biasedCuts.Load(),
		LastDuration:    time.Duration(p.lastDuration.Load()),
		Areas:           len(areas),
	}
}

func (p *Processor) logStats() {
	s := p.Stats()
	slog.Info("frame loop stats",
		"ticks", s.Ticks,
		"skipped", s.Skipped,
		"capture_failures", s.CaptureFailures,
		"breaker_skips", s.BreakerSkips,
		"breaker", p.breaker.State().String(),
		"breaker_trips", s.BreakerTrips,
		"overruns", s.Overruns,
		"last_tick", s.LastDuration,
		"areas", s.Areas,
		"scene_cuts", s.SceneCuts,
		"biased_cuts", s.BiasedCuts,
	)
}
