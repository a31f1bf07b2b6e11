package screen

import (
	"context"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/GriffinCanCode/noflash/internal/resilience"
)

// primaryDisplay is the index screenshot uses for the main monitor.
const primaryDisplay = 0

// screenshotBackend grabs pixels through kbinani/screenshot
// (X11 SHM on Linux, GDI on Windows, CoreGraphics on macOS). Bounds are
// device pixels except on macOS, where they are points.
type screenshotBackend struct{}

func (screenshotBackend) displays() int { return screenshot.NumActiveDisplays() }

func (screenshotBackend) primaryBounds() image.Rectangle {
	return screenshot.GetDisplayBounds(primaryDisplay)
}

func (screenshotBackend) grab(r image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(r)
}

func (screenshotBackend) cleanup() {}

// New creates a capturer for the primary display. It fails with
// CodeCaptureUnavailable when no display is attached.
func New() (Capturer, error) {
	c, err := newBase(screenshotBackend{})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Probe takes a test capture, retrying transient failures, so a missing
// display or capture permission surfaces before the overlay opens.
func Probe(ctx context.Context, c Capturer) error {
	return resilience.Retry(ctx, resilience.ProbeRetryConfig(), func() error {
		_, err := c.Capture()
		return err
	})
}
