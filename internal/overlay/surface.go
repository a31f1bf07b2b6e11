// Package overlay is the click-through, always-on-top window that darkens
// bright areas. It runs on ebiten: Update is the fixed-rate timer, Draw the
// paint callback, both on one goroutine.
package overlay

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/GriffinCanCode/noflash/internal/config"
	"github.com/GriffinCanCode/noflash/internal/detect"
	apperrors "github.com/GriffinCanCode/noflash/internal/errors"
)

const windowTitle = "noflash"

// Surface implements ebiten.Game.
type Surface struct {
	bounds   image.Rectangle
	areaSize int
	fill     color.RGBA
	areas    func() detect.Areas

	ctx      context.Context
	timer    func(context.Context) error
	interval time.Duration

	dirty  atomic.Bool
	paints atomic.Uint64
}

// New creates a surface covering bounds (the primary display, in capture
// pixels). areas supplies the overlay state to paint.
func New(bounds image.Rectangle, cfg *config.Config, areas func() detect.Areas) (*Surface, error) {
	if bounds.Empty() {
		return nil, apperrors.Newf(apperrors.CodeRenderSurfaceInit, "overlay bounds %v are empty", bounds)
	}
	return &Surface{
		bounds:   bounds,
		areaSize: cfg.AreaSize,
		fill:     color.RGBA{A: cfg.ShaderOpacity}, // premultiplied black
		areas:    areas,
		ctx:      context.Background(),
	}, nil
}

// RegisterTimer makes fn run every interval from the game loop. ebiten never
// calls Update re-entrantly, so a slow fn delays later calls instead of
// overlapping them.
func (s *Surface) RegisterTimer(interval time.Duration, fn func(context.Context) error) {
	s.interval = interval
	s.timer = fn
}

// RequestRedraw marks the overlay for repaint on the next frame.
func (s *Surface) RequestRedraw() {
	s.dirty.Store(true)
}

// Paints returns how many times the overlay was repainted.
func (s *Surface) Paints() uint64 {
	return s.paints.Load()
}

// Update implements ebiten.Game.
func (s *Surface) Update() error {
	if s.ctx.Err() != nil {
		return ebiten.Termination
	}
	if s.timer == nil {
		return nil
	}
	return s.timer(s.ctx)
}

// Draw implements ebiten.Game. The screen is not cleared between frames, so
// it is only touched after RequestRedraw.
func (s *Surface) Draw(screen *ebiten.Image) {
	if !s.dirty.CompareAndSwap(true, false) {
		return
	}
	screen.Clear()
	for _, r := range Rects(s.areas(), s.areaSize) {
		vector.DrawFilledRect(screen,
			float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()),
			s.fill, true)
	}
	s.paints.Add(1)
}

// Layout implements ebiten.Game. The logical screen matches the captured
// frame so area coordinates map 1:1; see fitWindow for the window size.
func (s *Surface) Layout(_, _ int) (int, int) {
	return s.bounds.Dx(), s.bounds.Dy()
}

// Run opens the overlay window and blocks until ctx is done, the window is
// closed or the timer returns an error.
func (s *Surface) Run(ctx context.Context) error {
	s.ctx = ctx

	g := fitWindow(s.bounds, image.Pt(ebiten.ScreenSizeInFullscreen()))

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowSize(g.Size.X, g.Size.Y)
	ebiten.SetWindowPosition(g.Pos.X, g.Pos.Y)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetScreenClearedEveryFrame(false)
	if s.interval > 0 {
		ebiten.SetTPS(tps(s.interval))
	}

	slog.Info("overlay window opening", "bounds", s.bounds, "window", g.Size, "scale", g.Scale, "tps", ebiten.TPS())

	err := ebiten.RunGameWithOptions(s, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
		InitUnfocused:     true,
	})
	if err == nil {
		return nil
	}
	if apperrors.IsFatal(err) {
		return err
	}
	return apperrors.Wrapf(err, apperrors.CodeRenderSurfaceInit, "run overlay window %v", g.Size)
}

// windowGeometry places the overlay window, in device-independent pixels.
type windowGeometry struct {
	Pos   image.Point
	Size  image.Point
	Scale float64 // capture pixels per window pixel
}

// fitWindow covers the captured display with a window. monitor is the
// display's device-independent size as ebiten reports it. Capture bounds are
// device pixels on Windows and X11 but points on macOS, so the scale comes
// from comparing the two rather than from the device scale factor. Layout
// stays at capture resolution and ebiten scales it onto the window.
func fitWindow(bounds image.Rectangle, monitor image.Point) windowGeometry {
	if monitor.X <= 0 || monitor.Y <= 0 {
		return windowGeometry{Pos: bounds.Min, Size: bounds.Size(), Scale: 1}
	}
	scale := float64(bounds.Dx()) / float64(monitor.X)
	return windowGeometry{
		Pos: image.Pt(
			int(math.Round(float64(bounds.Min.X)/scale)),
			int(math.Round(float64(bounds.Min.Y)/scale)),
		),
		Size:  monitor,
		Scale: scale,
	}
}

// Rects returns the rectangles painted for areas: one size×size square per
// area origin, in screen coordinates.
func Rects(areas detect.Areas, size int) []image.Rectangle {
	rects := make([]image.Rectangle, 0, len(areas))
	for _, a := range areas {
		rects = append(rects, image.Rect(a.X, a.Y, a.X+size, a.Y+size))
	}
	return rects
}

// tps converts a timer interval to ticks per second, at least 1.
func tps(interval time.Duration) int {
	return max(1, int(math.Round(float64(time.Second)/float64(interval))))
}
