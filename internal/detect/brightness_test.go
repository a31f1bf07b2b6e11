package detect

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestBrightnessUniform(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 255}},
		{"white", color.RGBA{255, 255, 255, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"green", color.RGBA{0, 255, 0, 255}},
		{"blue", color.RGBA{0, 0, 255, 255}},
		{"mixed", color.RGBA{17, 200, 99, 255}},
		{"translucent", color.RGBA{40, 80, 120, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solid(37, 23, tt.c)
			got, err := Brightness(img, img.Rect)
			if err != nil {
				t.Fatalf("Brightness() error = %v", err)
			}
			want := 0.299*float64(tt.c.R) + 0.587*float64(tt.c.G) + 0.114*float64(tt.c.B)
			if abs(got-want) > eps {
				t.Errorf("Brightness() = %v, want %v", got, want)
			}
		})
	}
}

func TestBrightnessCheckerboard(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, gray(255))
			} else {
				img.SetRGBA(x, y, gray(0))
			}
		}
	}

	got, err := Brightness(img, img.Rect)
	if err != nil {
		t.Fatalf("Brightness() error = %v", err)
	}
	// half the pixels are white: 0.5 * 255 * (0.299+0.587+0.114)
	if abs(got-127.5) > eps {
		t.Errorf("Brightness() = %v, want 127.5", got)
	}
}

func TestBrightnessQuarterRed(t *testing.T) {
	img := solid(4, 4, gray(0))
	fill(img, image.Rect(0, 0, 2, 2), color.RGBA{R: 200, A: 255})

	got, _ := Brightness(img, img.Rect)
	want := 0.25 * 0.299 * 200
	if abs(got-want) > eps {
		t.Errorf("Brightness() = %v, want %v", got, want)
	}
}

func TestBrightnessSubRect(t *testing.T) {
	img := solid(200, 200, gray(255))
	fill(img, image.Rect(0, 0, 100, 100), gray(0))

	dark, _ := Brightness(img, image.Rect(0, 0, 100, 100))
	bright, _ := Brightness(img, image.Rect(100, 0, 200, 100))
	if dark != 0 {
		t.Errorf("dark block = %v, want 0", dark)
	}
	if abs(bright-255) > eps {
		t.Errorf("bright block = %v, want 255", bright)
	}
}

func TestBrightnessClipsToBounds(t *testing.T) {
	img := solid(150, 150, gray(0))
	fill(img, image.Rect(100, 100, 150, 150), gray(200))

	// only the 50x50 in-bounds part counts toward the denominator
	got, err := Brightness(img, image.Rect(100, 100, 200, 200))
	if err != nil {
		t.Fatalf("Brightness() error = %v", err)
	}
	if abs(got-200) > 1e-6 {
		t.Errorf("Brightness() = %v, want 200", got)
	}
}

func TestBrightnessDegenerate(t *testing.T) {
	img := solid(50, 50, gray(255))

	tests := []image.Rectangle{
		image.Rect(10, 10, 10, 20), // zero width
		image.Rect(10, 10, 20, 10), // zero height
		image.Rect(60, 60, 90, 90), // outside
		{},
	}
	for _, r := range tests {
		b, err := Brightness(img, r)
		if !errors.Is(err, ErrDegenerateBlock) {
			t.Errorf("Brightness(%v) error = %v, want ErrDegenerateBlock", r, err)
		}
		if b != 0 {
			t.Errorf("Brightness(%v) = %v, want 0", r, b)
		}
	}
}

func TestLuma(t *testing.T) {
	if got := Luma(255, 255, 255); abs(got-255) > 1e-9 {
		t.Errorf("Luma(white) = %v, want 255", got)
	}
	if got := Luma(0, 0, 0); got != 0 {
		t.Errorf("Luma(black) = %v, want 0", got)
	}
}
