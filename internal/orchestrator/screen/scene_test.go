package screen

import (
	"image"
	"image/color"
	"testing"
)

// makePattern creates test frames with distinct horizontal structure.
func makePattern(pattern int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 256, 128))
	for y := 0; y < 128; y++ {
		for x := 0; x < 256; x++ {
			var c color.RGBA
			switch pattern {
			case 0: // solid gray
				c = color.RGBA{R: 128, G: 128, B: 128, A: 255}
			case 1: // brightening left to right
				c = color.RGBA{R: uint8(x), G: uint8(x), B: uint8(x), A: 255}
			case 2: // darkening left to right
				c = color.RGBA{R: uint8(255 - x), G: uint8(255 - x), B: uint8(255 - x), A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSceneTrackerFirstSample(t *testing.T) {
	s := NewSceneTracker(1, 10)

	cut, err := s.Observe(1, makePattern(0))
	if err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if cut {
		t.Error("first sample cannot be a cut")
	}
	if s.lastHash == nil {
		t.Error("lastHash should be set after first sample")
	}
}

func TestSceneTrackerIdenticalFrames(t *testing.T) {
	s := NewSceneTracker(1, 10)
	img := makePattern(1)

	_, _ = s.Observe(1, img)
	if cut, _ := s.Observe(2, img); cut {
		t.Error("identical frames should not be a cut")
	}
	if s.Cuts() != 0 {
		t.Errorf("Cuts() = %d, want 0", s.Cuts())
	}
}

func TestSceneTrackerDistinctFrames(t *testing.T) {
	s := NewSceneTracker(1, 10)

	_, _ = s.Observe(1, makePattern(1))
	cut, err := s.Observe(2, makePattern(2))
	if err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if !cut {
		t.Error("reversed gradient should be a cut")
	}
	if s.Cuts() != 1 {
		t.Errorf("Cuts() = %d, want 1", s.Cuts())
	}
}

func TestSceneTrackerSamplesEveryN(t *testing.T) {
	s := NewSceneTracker(25, 10)

	for seq := uint64(1); seq < 25; seq++ {
		_, _ = s.Observe(seq, makePattern(int(seq%3)))
	}
	if s.lastHash != nil {
		t.Error("no frame before tick 25 should be hashed")
	}

	_, _ = s.Observe(25, makePattern(0))
	if s.lastHash == nil {
		t.Error("tick 25 should be hashed")
	}
}

func TestSceneTrackerDisabled(t *testing.T) {
	s := NewSceneTracker(0, 10)
	if cut, err := s.Observe(100, makePattern(1)); cut || err != nil {
		t.Errorf("disabled tracker Observe() = %v, %v", cut, err)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 10+1920, 20+1080))
	img.SetRGBA(10, 20, color.RGBA{R: 9, A: 255})

	th := thumbnail(img, SceneThumbWidth)
	if th.Rect.Dx() != 64 || th.Rect.Dy() != 36 {
		t.Errorf("thumbnail = %v, want 64x36", th.Rect)
	}
	if got := th.RGBAAt(0, 0).R; got != 9 {
		t.Errorf("thumbnail origin R = %d, want 9", got)
	}

	small := image.NewRGBA(image.Rect(0, 0, 10, 5))
	if th := thumbnail(small, SceneThumbWidth); th.Rect.Dx() != 10 || th.Rect.Dy() != 5 {
		t.Errorf("small thumbnail = %v, want unchanged size", th.Rect)
	}
}
