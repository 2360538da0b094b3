package temperature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

func valid(temp float64) Reading {
	return Reading{Temperature: temp, Valid: true}
}

func TestMonitor_HysteresisSequence(t *testing.T) {
	m, err := NewMonitor(DefaultThresholds)
	require.NoError(t, err)

	readings := []float64{-1.0, -3.5, -2.0, -1.6, -1.4}
	expected := []bool{false, true, true, true, false}

	for i, temp := range readings {
		got := m.Poll(valid(temp))
		assert.Equal(t, expected[i], got, "reading %d (%.1f)", i, temp)
		assert.Equal(t, got, m.IsLow())
	}
}

func TestMonitor_ExactThresholdsDoNotTransition(t *testing.T) {
	m, err := NewMonitor(DefaultThresholds)
	require.NoError(t, err)

	assert.False(t, m.Poll(valid(-3.0)), "low threshold itself is not below low")
	assert.True(t, m.Poll(valid(-3.01)))
	assert.True(t, m.Poll(valid(-1.5)), "high threshold itself is not above high")
	assert.False(t, m.Poll(valid(-1.49)))
}

func TestMonitor_NoReading(t *testing.T) {
	m, err := NewMonitor(DefaultThresholds)
	require.NoError(t, err)

	require.True(t, m.Poll(valid(-5.0)))

	assert.False(t, m.Poll(Reading{}), "missing reading reports not-low")
	assert.True(t, m.IsLow(), "missing reading keeps state")

	assert.True(t, m.Poll(valid(-2.0)))
}

func TestMonitor_NoReadingFromNormal(t *testing.T) {
	m, err := NewMonitor(DefaultThresholds)
	require.NoError(t, err)

	assert.False(t, m.Poll(Reading{}))
	assert.False(t, m.IsLow())
}

func TestNewMonitor_InvalidThresholds(t *testing.T) {
	_, err := NewMonitor(model.ThresholdPair{High: -3.0, Low: -1.5})
	assert.Error(t, err)

	_, err = NewMonitor(model.ThresholdPair{High: 1, Low: 1})
	assert.Error(t, err)
}

func TestMonitor_Thresholds(t *testing.T) {
	m, err := NewMonitor(DefaultThresholds)
	require.NoError(t, err)
	assert.Equal(t, -1.5, m.Thresholds().High)
	assert.Equal(t, -3.0, m.Thresholds().Low)
}
