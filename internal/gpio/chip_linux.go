//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

// ChipRelay drives the relay through the Linux GPIO character device.
type ChipRelay struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  model.GPIOPin
}

// NewChipRelay requests pin as an output, starting de-energized.
func NewChipRelay(chipName string, pin model.GPIOPin) (*ChipRelay, error) {
	if chipName == "" {
		chipName = DefaultChip
	}
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("frost-relay"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	opts := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if !pin.ActiveHigh {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	line, err := chip.RequestLine(pin.Number, opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request relay pin %d: %w", pin.Number, err)
	}

	return &ChipRelay{chip: chip, line: line, pin: pin}, nil
}

// Set writes the logical state; active-low polarity is handled by the line request.
func (r *ChipRelay) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("%w: set relay pin %d: %v", model.ErrHardwareIO, r.pin.Number, err)
	}
	return nil
}

// Close de-energizes the relay and releases the line.
func (r *ChipRelay) Close() error {
	var errs []error
	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("de-energize relay: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
