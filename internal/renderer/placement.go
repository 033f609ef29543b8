package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"imageviewer/internal/imagefile"
)

// Background is the colour around and behind the image.
var Background = color.RGBA{R: 150, G: 150, B: 150, A: 255}

// Placement matches the shader uniform
type Placement struct {
	OffsetX float32
	OffsetY float32
	ScaleX  float32
	ScaleY  float32
}

// checkSize rejects images that cannot be uploaded as a single texture.
func checkSize(b image.Rectangle) error {
	if b.Dx() > imagefile.MaxDimension || b.Dy() > imagefile.MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds texture limit %d", imagefile.ErrTooLarge, b.Dx(), b.Dy(), imagefile.MaxDimension)
	}
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("image is empty")
	}
	return nil
}

// place converts an image of size iw x ih whose top-left corner is at pixel
// (x, y) of a w x h viewport into the quad's NDC offset and scale.
// Screen coords: (0,0) top-left, (w,h) bottom-right.
// NDC coords: (-1,-1) bottom-left, (1,1) top-right.
func place(x, y float64, iw, ih int, w, h uint32) Placement {
	px := math.Round(x)
	py := math.Round(y)
	fw := float64(w)
	fh := float64(h)
	return Placement{
		OffsetX: float32(px/fw*2 - 1),
		OffsetY: float32(1 - py/fh*2),
		ScaleX:  float32(float64(iw) / fw * 2),
		ScaleY:  float32(-float64(ih) / fh * 2),
	}
}

// clearColor returns c as a clear value for a target of the given format.
// Clear values are linear, so sRGB targets need the channel decoded.
func clearColor(c color.RGBA, format wgpu.TextureFormat) wgpu.Color {
	conv := func(v uint8) float64 { return float64(v) / 255 }
	if isSRGB(format) {
		conv = func(v uint8) float64 { return srgbToLinear(float64(v) / 255) }
	}
	return wgpu.Color{R: conv(c.R), G: conv(c.G), B: conv(c.B), A: float64(c.A) / 255}
}

func isSRGB(format wgpu.TextureFormat) bool {
	return format == wgpu.TextureFormat_BGRA8UnormSrgb || format == wgpu.TextureFormat_RGBA8UnormSrgb
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
