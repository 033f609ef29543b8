// Package apds9960 controls the gesture engine of an APDS9960
// proximity/gesture sensor over I2C.
//
// The sensor's gesture engine fills a FIFO with up/down/left/right photodiode
// samples while an object is close. Gesture reads those samples and reports a
// discrete direction once a motion has crossed the sensor.
package apds9960

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the fixed I2C address of the sensor.
const DefaultAddr = 0x39

const (
	regEnable  = 0x80
	regControl = 0x8F
	regID      = 0x92
	regGPENTH  = 0xA0
	regGCONF1  = 0xA2
	regGCONF2  = 0xA3
	regGCONF3  = 0xAA
	regGFLVL   = 0xAE
	regGSTATUS = 0xAF
	regGFIFOU  = 0xFC

	enablePON = 0x01
	enablePEN = 0x04
	enableGEN = 0x40

	gstatusGVALID = 0x01

	fifoSize = 32 // records of 4 bytes

	diffThreshold  = 13
	gestureTimeout = 300 * time.Millisecond
	fifoPoll       = 10 * time.Millisecond
)

// ErrNotFound is returned when the device at the address does not identify as an APDS9960.
var ErrNotFound = errors.New("apds9960: device not found")

// Gesture is a recognized hand motion.
type Gesture uint8

const (
	None Gesture = iota
	Up
	Down
	Left
	Right
)

func (g Gesture) String() string {
	switch g {
	case None:
		return "none"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Gesture(%d)", uint8(g))
}

// Opts holds the sensor configuration.
type Opts struct {
	// ProximityGain and GestureGain select 1x, 2x, 4x or 8x (0-3).
	ProximityGain uint8
	GestureGain   uint8

	// ProximityThreshold is the proximity value that starts the gesture engine.
	ProximityThreshold uint8

	// FIFOThreshold selects after how many records (1, 4, 8, 16) the FIFO reports data (0-3).
	FIFOThreshold uint8
}

// DefaultOpts uses the maximum gains.
var DefaultOpts = Opts{
	ProximityGain:      3,
	GestureGain:        3,
	ProximityThreshold: 50,
	FIFOThreshold:      1,
}

// Dev is a handle to an APDS9960.
type Dev struct {
	c i2c.Dev

	// leading edges seen since the last reported gesture
	sawUp, sawDown, sawLeft, sawRight int

	now   func() time.Time
	sleep func(time.Duration)
}

// New checks the device identity and enables proximity and gesture detection.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		c:     i2c.Dev{Bus: bus, Addr: DefaultAddr},
		now:   time.Now,
		sleep: time.Sleep,
	}

	id, err := d.readReg(regID)
	if err != nil {
		return nil, fmt.Errorf("apds9960: reading id: %w", err)
	}
	if id != 0xAB && id != 0xA8 {
		return nil, fmt.Errorf("%w: id 0x%02X", ErrNotFound, id)
	}

	setup := []struct {
		reg, val byte
	}{
		{regEnable, 0},
		{regGCONF3, 0}, // all photodiodes
		{regGCONF1, (opts.FIFOThreshold & 0x03) << 6},
		{regGCONF2, (opts.GestureGain & 0x03) << 5},
		{regGPENTH, opts.ProximityThreshold},
		{regControl, (opts.ProximityGain & 0x03) << 2},
		{regEnable, enablePON | enablePEN | enableGEN},
	}
	for _, w := range setup {
		if err := d.writeReg(w.reg, w.val); err != nil {
			return nil, fmt.Errorf("apds9960: init register 0x%02X: %w", w.reg, err)
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("APDS9960{%s}", d.c.String())
}

// Halt powers the sensor down.
func (d *Dev) Halt() error {
	return d.writeReg(regEnable, 0)
}

// Gesture returns the next recognized gesture, or None when no motion is in
// progress. While a motion is being tracked it keeps reading the FIFO until a
// direction is known or no movement has been seen for 300ms.
func (d *Dev) Gesture() (Gesture, error) {
	valid, err := d.gestureValid()
	if err != nil || !valid {
		return None, err
	}

	var mark time.Time
	for {
		d.sleep(fifoPoll)

		valid, err := d.gestureValid()
		if err != nil {
			return None, err
		}
		if !valid {
			return None, nil
		}

		n, err := d.readReg(regGFLVL)
		if err != nil {
			return None, fmt.Errorf("apds9960: reading fifo level: %w", err)
		}

		g, moved := None, false
		if n > 0 {
			rec, err := d.readFIFO(int(n))
			if err != nil {
				return None, err
			}
			g, moved = d.track(int(rec[0])-int(rec[1]), int(rec[2])-int(rec[3]))
		}

		now := d.now()
		if moved {
			mark = now
		}
		if g != None {
			d.resetCounts()
			return g, nil
		}
		if mark.IsZero() || now.Sub(mark) > gestureTimeout {
			d.resetCounts()
			return None, nil
		}
	}
}

// track feeds one FIFO record into the edge counters. A direction is
// reported when the trailing edge of a motion follows its leading edge.
func (d *Dev) track(upDown, leftRight int) (g Gesture, moved bool) {
	if abs(upDown) <= diffThreshold {
		upDown = 0
	}
	if abs(leftRight) <= diffThreshold {
		leftRight = 0
	}

	switch {
	case upDown < 0:
		if d.sawUp > 0 {
			g = Up
		} else {
			d.sawDown++
		}
	case upDown > 0:
		if d.sawDown > 0 {
			g = Down
		} else {
			d.sawUp++
		}
	}
	switch {
	case leftRight < 0:
		if d.sawLeft > 0 {
			g = Left
		} else {
			d.sawRight++
		}
	case leftRight > 0:
		if d.sawRight > 0 {
			g = Right
		} else {
			d.sawLeft++
		}
	}
	return g, upDown != 0 || leftRight != 0
}

func (d *Dev) resetCounts() {
	d.sawUp, d.sawDown, d.sawLeft, d.sawRight = 0, 0, 0, 0
}

func (d *Dev) gestureValid() (bool, error) {
	s, err := d.readReg(regGSTATUS)
	if err != nil {
		return false, fmt.Errorf("apds9960: reading gesture status: %w", err)
	}
	return s&gstatusGVALID != 0, nil
}

// readFIFO reads n records and returns the bytes of the first one.
func (d *Dev) readFIFO(n int) ([]byte, error) {
	if n > fifoSize {
		n = fifoSize
	}
	buf := make([]byte, n*4)
	if err := d.c.Tx([]byte{regGFIFOU}, buf); err != nil {
		return nil, fmt.Errorf("apds9960: reading fifo: %w", err)
	}
	return buf[:4], nil
}

func (d *Dev) readReg(reg byte) (byte, error) {
	var b [1]byte
	if err := d.c.Tx([]byte{reg}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Dev) writeReg(reg, val byte) error {
	return d.c.Tx([]byte{reg, val}, nil)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
