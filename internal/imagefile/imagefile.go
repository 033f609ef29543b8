// Package imagefile decodes the displayed image into an RGBA pixel buffer.
package imagefile

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imageviewer/internal/imagecache"
)

// MaxDimension is the largest width or height the renderer can upload as a
// single texture.
const MaxDimension = 8192

// ErrTooLarge is returned for images wider or taller than MaxDimension.
var ErrTooLarge = errors.New("image too large")

// Load decodes the file at path, applying its EXIF orientation.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return nil, fmt.Errorf("%w: %s is %dx%d, limit %d", ErrTooLarge, path, b.Dx(), b.Dy(), MaxDimension)
	}

	if nrgba, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return nrgba, nil
	}
	return imaging.Clone(img), nil
}

// Resolve returns a local path for source, downloading it through cache
// when it is a URL. cache may be nil when source is known to be local.
func Resolve(ctx context.Context, source string, cache *imagecache.Cache) (string, error) {
	if !imagecache.IsRemote(source) {
		return source, nil
	}
	if cache == nil {
		return "", fmt.Errorf("no cache for remote image %s", source)
	}
	return cache.Get(ctx, source)
}

// Open resolves and loads source.
func Open(ctx context.Context, source string, cache *imagecache.Cache) (*image.NRGBA, error) {
	path, err := Resolve(ctx, source, cache)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
