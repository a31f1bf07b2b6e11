package screen

import (
	"image"
	"sync/atomic"

	"github.com/corona10/goimagehash"
)

// SceneTracker counts scene cuts: sampled frames whose difference hash
// moved further than cutDistance from the previous sample.
type SceneTracker struct {
	every       uint64
	cutDistance int
	lastHash    *goimagehash.ImageHash
	cuts        atomic.Uint64
}

// NewSceneTracker samples every `every` ticks; every <= 0 disables tracking.
func NewSceneTracker(every, cutDistance int) *SceneTracker {
	s := &SceneTracker{cutDistance: cutDistance}
	if every > 0 {
		s.every = uint64(every)
	}
	return s
}

// Observe hashes img when seq falls on a sample tick and reports whether it
// was a scene cut. Not safe for concurrent use; the frame loop calls it
// from one tick at a time.
func (s *SceneTracker) Observe(seq uint64, img *image.RGBA) (bool, error) {
	if s.every == 0 || seq%s.every != 0 {
		return false, nil
	}

	hash, err := goimagehash.DifferenceHash(thumbnail(img, SceneThumbWidth))
	if err != nil {
		return false, err
	}

	if s.lastHash == nil {
		s.lastHash = hash
		return false, nil
	}

	dist, err := s.lastHash.Distance(hash)
	s.lastHash = hash
	if err != nil {
		return false, err
	}
	if dist > s.cutDistance {
		s.cuts.Add(1)
		return true, nil
	}
	return false, nil
}

// Cuts returns the number of scene cuts seen so far.
func (s *SceneTracker) Cuts() uint64 {
	return s.cuts.Load()
}

// thumbnail nearest-neighbour samples img down to about width pixels wide so
// hashing a 4K frame stays cheap.
func thumbnail(img *image.RGBA, width int) *image.RGBA {
	b := img.Rect
	step := max(1, b.Dx()/width)
	w, h := max(1, b.Dx()/step), max(1, b.Dy()/step)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := img.PixOffset(b.Min.X+x*step, b.Min.Y+y*step)
			dst := out.PixOffset(x, y)
			copy(out.Pix[dst:dst+4], img.Pix[src:src+4])
		}
	}
	return out
}
