package imagefile

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"imageviewer/internal/imagecache"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 20, 10)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 || b.Min != (image.Point{}) {
		t.Errorf("bounds = %v, want 20x10 at origin", b)
	}
	if c := img.NRGBAAt(0, 0); c != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want opaque red", c)
	}
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, MaxDimension+1, 1)

	if _, err := Load(path); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Load() error = %v, want ErrTooLarge", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{filepath.Join(dir, "missing.png"), garbage} {
		if _, err := Load(p); err == nil {
			t.Errorf("Load(%q) = nil error, want error", p)
		}
	}
}

func TestOpenRemote(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src.png")
	writePNG(t, src, 8, 6)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, src)
	}))
	defer srv.Close()

	cache, err := imagecache.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	img, err := Open(context.Background(), srv.URL+"/remote.png", cache)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}

	if _, err := Open(context.Background(), srv.URL+"/remote.png", nil); err == nil {
		t.Error("Open() of a URL without cache = nil error, want error")
	}
}

func TestResolveLocal(t *testing.T) {
	p, err := Resolve(context.Background(), "local.png", nil)
	if err != nil || p != "local.png" {
		t.Errorf("Resolve() = %q, %v, want local.png, nil", p, err)
	}
}
