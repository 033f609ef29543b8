package apds9960

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

func read(reg byte, val ...byte) i2ctest.IO {
	return i2ctest.IO{Addr: DefaultAddr, W: []byte{reg}, R: val}
}

func write(reg, val byte) i2ctest.IO {
	return i2ctest.IO{Addr: DefaultAddr, W: []byte{reg, val}}
}

func initOps(id byte) []i2ctest.IO {
	return []i2ctest.IO{
		read(regID, id),
		write(regEnable, 0x00),
		write(regGCONF3, 0x00),
		write(regGCONF1, 0x40),
		write(regGCONF2, 0x60),
		write(regGPENTH, 50),
		write(regControl, 0x0C),
		write(regEnable, 0x45),
	}
}

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newTestDev(t *testing.T, ops []i2ctest.IO) (*Dev, *i2ctest.Playback) {
	t.Helper()
	bus := &i2ctest.Playback{Ops: append(initOps(0xAB), ops...)}
	d, err := New(bus, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.sleep = func(time.Duration) {}
	d.now = fakeClock(100 * time.Millisecond)
	return d, bus
}

func TestNew(t *testing.T) {
	for _, id := range []byte{0xAB, 0xA8} {
		bus := &i2ctest.Playback{Ops: initOps(id)}
		if _, err := New(bus, nil); err != nil {
			t.Errorf("New() with id 0x%02X error = %v", id, err)
		}
		if err := bus.Close(); err != nil {
			t.Errorf("id 0x%02X: %v", id, err)
		}
	}
}

func TestNewWrongID(t *testing.T) {
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{read(regID, 0x55)}}
	_, err := New(bus, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("New() error = %v, want ErrNotFound", err)
	}
}

type failingBus struct{}

func (failingBus) String() string { return "failing" }
func (failingBus) Tx(addr uint16, w, r []byte) error { return errors.New("nack") }
func (failingBus) SetSpeed(f physic.Frequency) error { return nil }

func TestNewBusError(t *testing.T) {
	if _, err := New(failingBus{}, nil); err == nil {
		t.Error("New() on a failing bus = nil error, want error")
	}
}

func TestGestureNotValid(t *testing.T) {
	d, bus := newTestDev(t, []i2ctest.IO{read(regGSTATUS, 0x00)})
	g, err := d.Gesture()
	if err != nil || g != None {
		t.Errorf("Gesture() = %v, %v, want none, nil", g, err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}

func TestGestureNoMovement(t *testing.T) {
	d, bus := newTestDev(t, []i2ctest.IO{
		read(regGSTATUS, 0x01),
		read(regGSTATUS, 0x01),
		read(regGFLVL, 0),
	})
	g, err := d.Gesture()
	if err != nil || g != None {
		t.Errorf("Gesture() = %v, %v, want none, nil", g, err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}

func TestGestureDirections(t *testing.T) {
	tests := []struct {
		name          string
		first, second []byte
		want          Gesture
	}{
		{"up", []byte{100, 40, 50, 50}, []byte{40, 100, 50, 50}, Up},
		{"down", []byte{40, 100, 50, 50}, []byte{100, 40, 50, 50}, Down},
		{"left", []byte{50, 50, 100, 40}, []byte{50, 50, 40, 100}, Left},
		{"right", []byte{50, 50, 40, 100}, []byte{50, 50, 100, 40}, Right},
	}

	for _, tt := range tests {
		// The second batch holds two records; only the first one counts.
		second := append(append([]byte{}, tt.second...), 0, 0, 0, 0)
		d, bus := newTestDev(t, []i2ctest.IO{
			read(regGSTATUS, 0x01),
			read(regGSTATUS, 0x01),
			read(regGFLVL, 1),
			read(regGFIFOU, tt.first...),
			read(regGSTATUS, 0x01),
			read(regGFLVL, 2),
			read(regGFIFOU, second...),
		})
		g, err := d.Gesture()
		if err != nil || g != tt.want {
			t.Errorf("%s: Gesture() = %v, %v, want %v, nil", tt.name, g, err, tt.want)
		}
		if err := bus.Close(); err != nil {
			t.Errorf("%s: %v", tt.name, err)
		}
	}
}

func TestGestureTimeout(t *testing.T) {
	ops := []i2ctest.IO{
		read(regGSTATUS, 0x01),
		read(regGSTATUS, 0x01),
		read(regGFLVL, 1),
		read(regGFIFOU, 100, 40, 50, 50),
	}
	// Four quiet polls at 100ms each; the fourth exceeds 300ms.
	for i := 0; i < 4; i++ {
		ops = append(ops, read(regGSTATUS, 0x01), read(regGFLVL, 0))
	}
	d, bus := newTestDev(t, ops)

	g, err := d.Gesture()
	if err != nil || g != None {
		t.Errorf("Gesture() = %v, %v, want none, nil", g, err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
	if d.sawUp != 0 {
		t.Errorf("sawUp = %d after timeout, want 0", d.sawUp)
	}
}

func TestTrackThreshold(t *testing.T) {
	d := &Dev{}
	if g, moved := d.track(13, -13); g != None || moved {
		t.Errorf("track(13, -13) = %v, %v, want none, false", g, moved)
	}
	if g, moved := d.track(14, 0); g != None || !moved {
		t.Errorf("track(14, 0) = %v, %v, want none, true", g, moved)
	}
	if g, _ := d.track(-14, 0); g != Up {
		t.Errorf("track(-14, 0) after leading edge = %v, want up", g)
	}
}

func TestHalt(t *testing.T) {
	d, bus := newTestDev(t, []i2ctest.IO{write(regEnable, 0)})
	if err := d.Halt(); err != nil {
		t.Errorf("Halt() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}
