package detect

import (
	"image"
	"math"
	"slices"
)

// Compensator reverses the overlay's darkening on blocks shaded last tick so
// a shaded block is measured at its true brightness.
//
// It assumes the screen under a shaded block did not change between ticks;
// when it did, the corrected values are off by the content change.
type Compensator struct {
	areaSize int
	lut      [256]uint8
}

// NewCompensator precomputes the per-channel gain 1/(1 - opacity/255).
// opacity must be below 255.
func NewCompensator(areaSize int, opacity uint8) *Compensator {
	c := &Compensator{areaSize: areaSize}
	gain := Gain(opacity)
	for v := 0; v < 256; v++ {
		c.lut[v] = clamp(math.Round(float64(v) * gain))
	}
	return c
}

// Gain is the factor that undoes a black overlay of the given alpha.
func Gain(opacity uint8) float64 {
	return 1 / (1 - float64(opacity)/255)
}

// Shade blends black at alpha opacity/255 over v, the way the overlay
// darkens the screen.
func Shade(v, opacity uint8) uint8 {
	return clamp(math.Round(float64(v) * (1 - float64(opacity)/255)))
}

// Apply returns img with every block in prev brightened by the gain. With no
// previous areas img itself is returned; otherwise img is left untouched and a
// corrected copy is returned.
func (c *Compensator) Apply(img *image.RGBA, prev Areas) *image.RGBA {
	if len(prev) == 0 {
		return img
	}

	out := &image.RGBA{Pix: slices.Clone(img.Pix), Stride: img.Stride, Rect: img.Rect}
	for _, a := range prev {
		r := blockRect(out.Rect, a.X, a.Y, c.areaSize)
		if r.Empty() {
			continue
		}
		w := r.Dx()
		for y := r.Min.Y; y < r.Max.Y; y++ {
			off := out.PixOffset(r.Min.X, y)
			row := out.Pix[off : off+w*4 : off+w*4]
			for i := 0; i < len(row); i += 4 {
				row[i] = c.lut[row[i]]
				row[i+1] = c.lut[row[i+1]]
				row[i+2] = c.lut[row[i+2]]
			}
		}
	}
	return out
}

func clamp(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
