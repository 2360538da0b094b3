package temperature

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

// DefaultThresholds is the fixed frost band: heating is suppressed below -3.0 °C
// and allowed again above -1.5 °C.
var DefaultThresholds = model.ThresholdPair{High: -1.5, Low: -3.0}

type Reading struct {
	Temperature float64
	Timestamp   time.Time
	Valid       bool
}

// Monitor is a two-state hysteresis machine (Normal, Low) over sensor readings.
type Monitor struct {
	thresholds model.ThresholdPair
	isLow      bool
}

func NewMonitor(thresholds model.ThresholdPair) (*Monitor, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Monitor{thresholds: thresholds}, nil
}

// Poll feeds one reading and returns the updated low flag.
// A missing reading leaves the state alone and reports not-low, so a dead sensor
// never suppresses heating.
func (m *Monitor) Poll(r Reading) bool {
	if !r.Valid {
		log.Warn().Bool("is_low", m.isLow).Msg("No temperature reading, not suppressing heating")
		return false
	}

	switch {
	case m.isLow && r.Temperature > m.thresholds.High:
		m.isLow = false
		log.Info().Float64("temp", r.Temperature).Float64("high", m.thresholds.High).Msg("Temperature recovered above high threshold")
	case !m.isLow && r.Temperature < m.thresholds.Low:
		m.isLow = true
		log.Info().Float64("temp", r.Temperature).Float64("low", m.thresholds.Low).Msg("Temperature dropped below low threshold")
	}
	return m.isLow
}

// IsLow reports the current state without sampling.
func (m *Monitor) IsLow() bool {
	return m.isLow
}

func (m *Monitor) Thresholds() model.ThresholdPair {
	return m.thresholds
}
