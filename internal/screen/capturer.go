// Package screen captures the primary display as an RGBA raster.
package screen

import (
	"image"
	"log/slog"
	"sync/atomic"

	apperrors "github.com/GriffinCanCode/noflash/internal/errors"
)

// Capturer produces full-resolution frames of the primary display.
type Capturer interface {
	Capture() (*image.RGBA, error)
	Bounds() image.Rectangle
	Close()
}

// backend implements platform-specific raw capture
type backend interface {
	displays() int
	primaryBounds() image.Rectangle
	grab(r image.Rectangle) (*image.RGBA, error)
	cleanup()
}

// baseCapturer turns backend results into classified errors and follows
// resolution changes of the primary display.
type baseCapturer struct {
	backend
	bounds atomic.Pointer[image.Rectangle]
	frames atomic.Uint64
}

func newBase(b backend) (*baseCapturer, error) {
	c := &baseCapturer{backend: b}
	r, err := c.display()
	if err != nil {
		return nil, err
	}
	c.bounds.Store(&r)
	return c, nil
}

func (c *baseCapturer) display() (image.Rectangle, error) {
	if n := c.displays(); n == 0 {
		return image.Rectangle{}, apperrors.New(apperrors.CodeCaptureUnavailable, "no active display")
	}
	r := c.primaryBounds()
	if r.Empty() {
		return image.Rectangle{}, apperrors.Newf(apperrors.CodeCaptureUnavailable, "primary display has empty bounds %v", r)
	}
	return r, nil
}

func (c *baseCapturer) Capture() (*image.RGBA, error) {
	r, err := c.display()
	if err != nil {
		return nil, err
	}
	if prev := c.bounds.Swap(&r); prev != nil && *prev != r {
		slog.Info("primary display bounds changed", "from", *prev, "to", r)
	}

	img, err := c.grab(r)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCaptureFailed, "capture primary display").
			WithMetadata("bounds", r.String())
	}
	if img == nil || img.Rect.Empty() {
		return nil, apperrors.New(apperrors.CodeCaptureFailed, "capture returned an empty frame")
	}
	c.frames.Add(1)
	return img, nil
}

// Bounds returns the primary display rectangle seen by the latest capture.
func (c *baseCapturer) Bounds() image.Rectangle {
	if r := c.bounds.Load(); r != nil {
		return *r
	}
	return image.Rectangle{}
}

func (c *baseCapturer) Close() {
	c.cleanup()
	slog.Debug("screen capturer closed", "frames", c.frames.Load())
}
