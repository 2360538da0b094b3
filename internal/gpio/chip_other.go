//go:build !linux

package gpio

import (
	"errors"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

// ChipRelay is not available on non-Linux platforms.
type ChipRelay struct{}

func NewChipRelay(string, model.GPIOPin) (*ChipRelay, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (r *ChipRelay) Set(bool) error {
	return errors.New("gpio: not supported")
}

func (r *ChipRelay) Close() error {
	return nil
}
