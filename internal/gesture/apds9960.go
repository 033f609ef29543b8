package gesture

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"imageviewer/internal/apds9960"
)

// APDS9960 is a Sensor backed by an APDS9960 on an I2C bus.
type APDS9960 struct {
	dev *apds9960.Dev
	bus i2c.BusCloser
}

// OpenAPDS9960 initializes the host drivers, opens the named I2C bus (the
// first one when empty) and configures the sensor.
func OpenAPDS9960(busName string) (*APDS9960, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init failed: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("opening I2C bus %q: %w", busName, err)
	}

	dev, err := apds9960.New(bus, &apds9960.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return &APDS9960{dev: dev, bus: bus}, nil
}

// Gesture implements Sensor.
func (s *APDS9960) Gesture() (Code, error) {
	g, err := s.dev.Gesture()
	if err != nil {
		return None, err
	}
	return Code(g), nil
}

func (s *APDS9960) String() string {
	return s.dev.String()
}

// Close powers the sensor down and releases the bus.
func (s *APDS9960) Close() error {
	haltErr := s.dev.Halt()
	if err := s.bus.Close(); err != nil {
		return err
	}
	return haltErr
}
