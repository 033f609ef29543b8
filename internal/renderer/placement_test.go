package renderer

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"imageviewer/internal/imagefile"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		iw   int
		ih   int
		want Placement
	}{
		{"origin", 0, 0, 800, 600, Placement{-1, 1, 2, -2}},
		{"panned", -400, -300, 1600, 1200, Placement{-2, 2, 4, -4}},
		{"small", 400, 300, 400, 300, Placement{0, 0, 1, -1}},
		{"rounded", 399.6, 300.4, 400, 300, Placement{0, 0, 1, -1}},
	}

	for _, tt := range tests {
		got := place(tt.x, tt.y, tt.iw, tt.ih, 800, 600)
		if !near(float64(got.OffsetX), float64(tt.want.OffsetX)) ||
			!near(float64(got.OffsetY), float64(tt.want.OffsetY)) ||
			!near(float64(got.ScaleX), float64(tt.want.ScaleX)) ||
			!near(float64(got.ScaleY), float64(tt.want.ScaleY)) {
			t.Errorf("%s: place() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestClearColor(t *testing.T) {
	c := clearColor(Background, wgpu.TextureFormat_BGRA8Unorm)
	if !near(c.R, 150.0/255) || c.R != c.G || c.G != c.B || c.A != 1 {
		t.Errorf("clearColor(unorm) = %+v, want grey 150/255", c)
	}

	s := clearColor(Background, wgpu.TextureFormat_BGRA8UnormSrgb)
	if math.Abs(s.R-0.3049) > 1e-3 {
		t.Errorf("clearColor(srgb).R = %v, want about 0.305", s.R)
	}
}

func TestCheckSize(t *testing.T) {
	limit := imagefile.MaxDimension
	tests := []struct {
		w, h    int
		tooBig  bool
		wantErr bool
	}{
		{800, 600, false, false},
		{limit, limit, false, false},
		{limit + 1, 10, true, true},
		{10, limit + 1, true, true},
		{0, 10, false, true},
	}

	for _, tt := range tests {
		err := checkSize(image.Rect(0, 0, tt.w, tt.h))
		if (err != nil) != tt.wantErr {
			t.Errorf("checkSize(%dx%d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
		}
		if got := errors.Is(err, imagefile.ErrTooLarge); got != tt.tooBig {
			t.Errorf("checkSize(%dx%d) ErrTooLarge = %v, want %v", tt.w, tt.h, got, tt.tooBig)
		}
	}
}
