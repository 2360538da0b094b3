//go:build !linux

package clock

import (
	"errors"
	"time"
)

func setSystemTime(time.Time) error {
	return errors.New("clock: setting the system time is not supported on this platform (requires Linux)")
}
