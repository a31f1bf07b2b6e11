// Package detect finds over-bright screen blocks and undoes the overlay's own
// shading before each measurement.
package detect

import (
	"image"

	apperrors "github.com/GriffinCanCode/noflash/internal/errors"
)

// Perceived brightness weights (ITU-R BT.601 luma).
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// ErrDegenerateBlock is returned for blocks with no pixels.
var ErrDegenerateBlock = apperrors.New(apperrors.CodeDegenerateBlock, "block has zero width or height")

// Area is a block origin, relative to the frame origin, and its measured brightness.
type Area struct {
	X, Y       int
	Brightness float64
}

// Areas is one tick's detection result. Published slices are never mutated.
type Areas []Area

// Origins returns the block origins in result order.
func (a Areas) Origins() []image.Point {
	pts := make([]image.Point, len(a))
	for i, area := range a {
		pts[i] = image.Pt(area.X, area.Y)
	}
	return pts
}

// Contains reports whether a block at (x, y) is present.
func (a Areas) Contains(x, y int) bool {
	for _, area := range a {
		if area.X == x && area.Y == y {
			return true
		}
	}
	return false
}

// blockRect returns the frame-absolute rectangle of the block at the
// frame-relative origin (x, y), clipped to bounds.
func blockRect(bounds image.Rectangle, x, y, size int) image.Rectangle {
	origin := bounds.Min.Add(image.Pt(x, y))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(size, size))}.Intersect(bounds)
}
