// Package gpio drives the heating relay output.
// The chip driver uses the Linux GPIO character device, the pinctrl driver shells out to
// the Raspberry Pi pinctrl tool, and the fake driver records writes for tests.
package gpio

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/model"
	"github.com/thatsimonsguy/frost-relay/internal/pinctrl"
)

const (
	DriverChip    = "gpiocdev"
	DriverPinctrl = "pinctrl"

	DefaultChip     = "gpiochip0"
	DefaultRelayPin = 26
)

// Relay is a single boolean output. Set(true) energizes the heating circuit.
type Relay interface {
	Set(on bool) error
	Close() error
}

// Open returns the relay driver named by driver. In safe mode writes are logged and dropped.
func Open(driver, chip string, pin model.GPIOPin, safeMode bool) (Relay, error) {
	if safeMode {
		log.Warn().Int("pin", pin.Number).Msg("SAFE MODE ENABLED: relay writes are disabled")
		return &SafeRelay{Pin: pin}, nil
	}
	switch driver {
	case DriverChip, "":
		r, err := NewChipRelay(chip, pin)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverPinctrl:
		return &PinctrlRelay{Pin: pin}, nil
	default:
		return nil, fmt.Errorf("unknown relay driver %q", driver)
	}
}

// level converts a logical relay state into the electrical level for pin.
func level(pin model.GPIOPin, on bool) bool {
	return pin.ActiveHigh == on
}

// PinctrlRelay drives the relay through the pinctrl utility.
type PinctrlRelay struct {
	Pin model.GPIOPin
}

var driveOutput = pinctrl.DriveOutput
var readLevel = pinctrl.ReadLevel
var readPin = pinctrl.ReadPin

func (r *PinctrlRelay) Set(on bool) error {
	if err := driveOutput(r.Pin.Number, level(r.Pin, on)); err != nil {
		return fmt.Errorf("%w: set relay pin %d: %v", model.ErrHardwareIO, r.Pin.Number, err)
	}
	return nil
}

// Active reads back the pin and reports whether the relay is energized.
func (r *PinctrlRelay) Active() (bool, error) {
	lvl, err := readLevel(r.Pin.Number)
	if err != nil {
		return false, err
	}
	return lvl == r.Pin.ActiveHigh, nil
}

func (r *PinctrlRelay) Close() error {
	return nil
}

// RelayStatus is the relay pin as pinctrl sees it.
type RelayStatus struct {
	Active bool
	Pin    pinctrl.PinState
}

// Status reads the pin configuration and level without driving it. It works whichever
// driver owns the line.
func Status(pin model.GPIOPin) (RelayStatus, error) {
	state, err := readPin(pin.Number)
	if err != nil {
		return RelayStatus{}, fmt.Errorf("read relay pin %d: %w", pin.Number, err)
	}
	active, err := (&PinctrlRelay{Pin: pin}).Active()
	if err != nil {
		return RelayStatus{}, fmt.Errorf("read relay level %d: %w", pin.Number, err)
	}
	return RelayStatus{Active: active, Pin: *state}, nil
}

// SafeRelay never touches hardware.
type SafeRelay struct {
	Pin model.GPIOPin
}

func (r *SafeRelay) Set(on bool) error {
	log.Debug().Int("pin", r.Pin.Number).Bool("on", on).Msg("Safe mode: relay write skipped")
	return nil
}

func (r *SafeRelay) Close() error {
	return nil
}
