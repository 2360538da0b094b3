package rtc

import (
	"fmt"

	"github.com/thatsimonsguy/frost-relay/internal/bcd"
	"github.com/thatsimonsguy/frost-relay/internal/model"
)

// Block is the DS3231 timekeeping register set starting at register 0x00:
// seconds, minutes, hours, day-of-week, date, month/century, year.
type Block [7]byte

const (
	RegSeconds byte = iota
	RegMinutes
	RegHours
	RegDay
	RegDate
	RegMonth
	RegYear
)

const (
	hour12Mode  = 0x40
	hourPM      = 0x20
	hour12Mask  = 0x1F
	centuryBit  = 0x80
	monthMask   = 0x1F
	centuryBase = 2000
	epochBase   = 1900
)

// Decode maps a register block to a calendar time. In 12-hour mode the PM flag adds 12
// to the decoded hour. The chip's 1-7 day-of-week becomes a 0-6 weekday.
func Decode(b Block) model.CalendarTime {
	var hour int
	if b[RegHours]&hour12Mode != 0 {
		hour = bcd.Decode(b[RegHours] & hour12Mask)
		if b[RegHours]&hourPM != 0 {
			hour += 12
		}
	} else {
		hour = bcd.Decode(b[RegHours])
	}

	year := bcd.Decode(b[RegYear])
	if b[RegMonth]&centuryBit != 0 {
		year += centuryBase
	} else {
		year += epochBase
	}

	return model.CalendarTime{
		Year:    year,
		Month:   bcd.Decode(b[RegMonth] & monthMask),
		Day:     bcd.Decode(b[RegDate]),
		Hour:    hour,
		Minute:  bcd.Decode(b[RegMinutes]),
		Second:  bcd.Decode(b[RegSeconds]),
		Weekday: int(b[RegDay]) - 1,
	}
}

// Encode is the inverse of Decode. It always writes 24-hour mode and stores the
// weekday as 1-7. Years from 2000 set the century bit.
func Encode(t model.CalendarTime) (Block, error) {
	var b Block

	if t.Year < epochBase {
		return b, fmt.Errorf("encode year %d: %w", t.Year, bcd.ErrRange)
	}
	yearOffset := t.Year - epochBase
	if t.Year >= centuryBase {
		yearOffset = t.Year - centuryBase
	}

	fields := []struct {
		name string
		reg  byte
		val  int
	}{
		{"second", RegSeconds, t.Second},
		{"minute", RegMinutes, t.Minute},
		{"hour", RegHours, t.Hour},
		{"weekday", RegDay, t.Weekday + 1},
		{"day", RegDate, t.Day},
		{"month", RegMonth, t.Month},
		{"year", RegYear, yearOffset},
	}
	for _, f := range fields {
		v, err := bcd.Encode(f.val)
		if err != nil {
			return Block{}, fmt.Errorf("encode %s: %w", f.name, err)
		}
		b[f.reg] = v
	}

	if t.Year >= centuryBase {
		b[RegMonth] |= centuryBit
	}
	return b, nil
}
