// Package civiltime converts UTC into Central European wall time using the fixed EU rule:
// summer time from 01:00 UTC on the last Sunday of March until 01:00 UTC on the last
// Sunday of October.
package civiltime

import (
	"fmt"
	"time"

	"github.com/thatsimonsguy/frost-relay/internal/clock"
	"github.com/thatsimonsguy/frost-relay/internal/model"
)

const (
	StandardOffset = time.Hour     // CET, UTC+1
	SummerOffset   = 2 * time.Hour // CEST, UTC+2

	transitionHour = 1
)

// LastSunday returns the day of month of the last Sunday of March or October.
// Integer division is required for the closed form to hold.
func LastSunday(year int, month time.Month) int {
	var k int
	switch month {
	case time.March:
		k = 4
	case time.October:
		k = 1
	default:
		panic(fmt.Sprintf("civiltime: no transition in %s", month))
	}
	return 31 - (5*year/4+k)%7
}

// Boundaries returns the March and October transition instants of year as Unix seconds.
func Boundaries(year int) (march, october int64) {
	march = time.Date(year, time.March, LastSunday(year, time.March), transitionHour, 0, 0, 0, time.UTC).Unix()
	october = time.Date(year, time.October, LastSunday(year, time.October), transitionHour, 0, 0, 0, time.UTC).Unix()
	return march, october
}

// Offset returns the UTC offset in force at now, judged against the transitions of year.
func Offset(year int, now int64) time.Duration {
	march, october := Boundaries(year)
	switch {
	case now < march:
		return StandardOffset
	case now < october:
		return SummerOffset
	default:
		return StandardOffset
	}
}

func IsSummerTime(year int, now time.Time) bool {
	return Offset(year, now.Unix()) == SummerOffset
}

// LocalTimeAt shifts now by the offset for year and decomposes the result.
func LocalTimeAt(year int, now time.Time) model.CalendarTime {
	secs := now.Unix()
	return model.FromTime(time.Unix(secs+int64(Offset(year, secs)/time.Second), 0))
}

type Resolver struct {
	Clock clock.Clock
}

func NewResolver(c clock.Clock) *Resolver {
	return &Resolver{Clock: c}
}

// LocalTime reads the host clock for the current year and then again for the instant to
// convert. Across New Year the two reads can disagree; the year read first wins.
func (r *Resolver) LocalTime() model.CalendarTime {
	year := r.Clock.Now().UTC().Year()
	return LocalTimeAt(year, r.Clock.Now())
}
