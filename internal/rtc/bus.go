package rtc

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// OpenBus initializes the host drivers and opens the named I2C bus ("" picks the first one).
// The caller closes the bus.
func OpenBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return bus, nil
}

// NewI2C returns a DS3231 at its fixed address on bus.
func NewI2C(bus i2c.Bus) *DS3231 {
	return New(&i2c.Dev{Bus: bus, Addr: Address})
}
