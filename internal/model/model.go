package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrHardwareIO marks a failed transfer on the I2C or 1-wire bus. Fatal to the controller.
	ErrHardwareIO = errors.New("hardware i/o error")
	// ErrSensorAbsent means the 1-wire scan found no temperature sensor.
	ErrSensorAbsent = errors.New("no DS18B20 devices found")
)

// CalendarTime is a broken-down wall clock value. Weekday is 0-based with Monday = 0.
type CalendarTime struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
}

// FromTime decomposes t in UTC.
func FromTime(t time.Time) CalendarTime {
	t = t.UTC()
	return CalendarTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: MondayWeekday(t.Weekday()),
	}
}

// Time returns the value as a UTC instant. Weekday is ignored.
func (c CalendarTime) Time() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

func (c CalendarTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d (wd %d)", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Weekday)
}

// MondayWeekday converts Go's Sunday-based weekday into 0=Monday .. 6=Sunday.
func MondayWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// ThresholdPair is the hysteresis band of the temperature monitor, in degrees Celsius.
type ThresholdPair struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

func (p ThresholdPair) Validate() error {
	if p.High <= p.Low {
		return fmt.Errorf("invalid thresholds: high %.2f must be above low %.2f", p.High, p.Low)
	}
	return nil
}

type GPIOPin struct {
	Number     int
	ActiveHigh bool
}
