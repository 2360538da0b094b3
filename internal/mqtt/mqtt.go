// Package mqtt publishes relay state changes with an abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

const DefaultTopic = "heating/frost-relay/relay"

// Publisher publishes relay events. Errors are reported, never fatal to the controller.
type Publisher interface {
	Publish(event RelayEvent) error
	Close() error
}

// RelayEvent describes one relay decision that changed the output.
type RelayEvent struct {
	Timestamp   time.Time
	On          bool
	InWindow    bool
	TempLow     bool
	Temperature *float64 // nil when no sensor reading was available
	LocalTime   string
}

type Payload struct {
	Relay RelayPayload `json:"relay"`
}

type RelayPayload struct {
	Timestamp   string   `json:"timestamp"`
	State       string   `json:"state"`
	InWindow    bool     `json:"in_window"`
	TempLow     bool     `json:"temp_low"`
	Temperature *float64 `json:"temperature,omitempty"`
	LocalTime   string   `json:"local_time"`
}

func stateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// FormatPayload renders event as the JSON message body.
func FormatPayload(event RelayEvent) ([]byte, error) {
	return json.Marshal(Payload{Relay: RelayPayload{
		Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
		State:       stateString(event.On),
		InWindow:    event.InWindow,
		TempLow:     event.TempLow,
		Temperature: event.Temperature,
		LocalTime:   event.LocalTime,
	}})
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(RelayEvent) error { return nil }
func (Nop) Close() error             { return nil }
