package watch

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"imageviewer/internal/diag"
	"imageviewer/internal/input"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func waitEvent(t *testing.T, q *input.Queue) input.Event {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if events := q.Drain(); len(events) > 0 {
			return events[len(events)-1]
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no event before deadline")
	return input.Event{}
}

func startWatcher(t *testing.T, path string, q *input.Queue) context.CancelFunc {
	t.Helper()
	w, err := New(path, q, diag.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func TestReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	writePNG(t, path, 4, 4)

	q := input.NewQueue(8)
	startWatcher(t, path, q)

	writePNG(t, path, 12, 7)
	ev := waitEvent(t, q)
	if ev.Kind != input.EventImage || ev.Image == nil {
		t.Fatalf("event = %+v, want image event", ev)
	}
	if b := ev.Image.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("reloaded size = %dx%d, want 12x7", b.Dx(), b.Dy())
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	writePNG(t, path, 4, 4)

	q := input.NewQueue(8)
	startWatcher(t, path, q)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if n := q.Len(); n != 0 {
		t.Errorf("queue holds %d events after unrelated write, want 0", n)
	}
}

func TestCancelStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writePNG(t, path, 1, 1)

	w, err := New(path, input.NewQueue(1), diag.Discard())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope", "img.png"), input.NewQueue(1), diag.Discard()); err == nil {
		t.Error("New() in a missing directory = nil error, want error")
	}
}
