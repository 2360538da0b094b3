// Package clock wraps the host's wall clock so the controller can read it and
// overwrite it from the RTC.
package clock

import (
	"time"

	"github.com/rs/zerolog/log"
)

type Clock interface {
	Now() time.Time
}

type Setter interface {
	Set(t time.Time) error
}

// System is the host clock. DryRun logs instead of calling settimeofday.
type System struct {
	DryRun bool
}

func (s *System) Now() time.Time {
	return time.Now()
}

func (s *System) Set(t time.Time) error {
	if s.DryRun {
		log.Debug().Time("time", t).Msg("Dry run: not setting system clock")
		return nil
	}
	return setSystemTime(t)
}
