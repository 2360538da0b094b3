package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPayload(t *testing.T) {
	temp := -4.25
	event := RelayEvent{
		Timestamp:   time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC),
		On:          false,
		InWindow:    true,
		TempLow:     true,
		Temperature: &temp,
		LocalTime:   "2024-01-16 00:30:00",
	}

	data, err := FormatPayload(event)
	require.NoError(t, err)

	var p Payload
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "2024-01-15T23:30:00Z", p.Relay.Timestamp)
	assert.Equal(t, "OFF", p.Relay.State)
	assert.True(t, p.Relay.InWindow)
	assert.True(t, p.Relay.TempLow)
	require.NotNil(t, p.Relay.Temperature)
	assert.Equal(t, -4.25, *p.Relay.Temperature)
}

func TestFormatPayload_NoTemperature(t *testing.T) {
	data, err := FormatPayload(RelayEvent{Timestamp: time.Unix(0, 0), On: true})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "temperature")
	assert.Contains(t, string(data), `"state":"ON"`)
}

func TestFakePublisher(t *testing.T) {
	f := &FakePublisher{}
	require.NoError(t, f.Publish(RelayEvent{On: true}))
	require.Len(t, f.Events, 1)
	assert.True(t, f.Events[0].On)

	require.NoError(t, f.Close())
	assert.True(t, f.Closed)

	var nop Publisher = Nop{}
	assert.NoError(t, nop.Publish(RelayEvent{}))
}
