// Package schedule decides whether the local wall time falls inside the heating window.
package schedule

import "github.com/thatsimonsguy/frost-relay/internal/model"

const (
	NightStartHour = 22
	NightEndHour   = 7

	SeasonEndMonth   = 5 // heating runs through May
	SeasonStartMonth = 9 // and resumes in September
)

// IsNight reports hour < 7 or hour >= 22.
func IsNight(t model.CalendarTime) bool {
	return t.Hour < NightEndHour || t.Hour >= NightStartHour
}

// IsHeatingSeason reports month <= 5 or month >= 9.
func IsHeatingSeason(t model.CalendarTime) bool {
	return t.Month <= SeasonEndMonth || t.Month >= SeasonStartMonth
}

func InActiveWindow(t model.CalendarTime) bool {
	return IsNight(t) && IsHeatingSeason(t)
}
