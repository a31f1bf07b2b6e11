package detect

import "image"

// Luma returns the perceived brightness of one pixel.
func Luma(r, g, b uint8) float64 {
	return LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b)
}

// Brightness returns the unweighted mean luma of the pixels of img inside r.
// r is clipped to the image bounds first; an empty block yields
// ErrDegenerateBlock.
func Brightness(img *image.RGBA, r image.Rectangle) (float64, error) {
	r = r.Intersect(img.Rect)
	if r.Empty() {
		return 0, ErrDegenerateBlock
	}

	// luma is linear, so summing channels first gives the same mean
	var sumR, sumG, sumB uint64
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		row := img.Pix[off : off+w*4 : off+w*4]
		for i := 0; i < len(row); i += 4 {
			sumR += uint64(row[i])
			sumG += uint64(row[i+1])
			sumB += uint64(row[i+2])
		}
	}

	n := float64(w * r.Dy())
	return (LumaR*float64(sumR) + LumaG*float64(sumG) + LumaB*float64(sumB)) / n, nil
}
