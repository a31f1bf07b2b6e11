package detect

import "image"

// Scanner partitions a frame into AreaSize squares and keeps those brighter
// than Threshold.
type Scanner struct {
	AreaSize  int
	Threshold float64
}

// Scan walks block origins column by column (x outer, y inner). Edge blocks
// are clipped to the frame; blocks with no pixels are skipped.
func (s Scanner) Scan(img *image.RGBA) Areas {
	if s.AreaSize <= 0 {
		return nil
	}
	bounds := img.Rect
	w, h := bounds.Dx(), bounds.Dy()

	var out Areas
	for x := 0; x < w; x += s.AreaSize {
		for y := 0; y < h; y += s.AreaSize {
			b, err := Brightness(img, blockRect(bounds, x, y, s.AreaSize))
			if err != nil {
				continue
			}
			if b > s.Threshold {
				out = append(out, Area{X: x, Y: y, Brightness: b})
			}
		}
	}
	return out
}
