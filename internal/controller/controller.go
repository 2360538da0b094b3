// Package controller runs the heating control loop: sync the host clock from the RTC,
// sample the frost sensor, resolve local time and drive the relay.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/civiltime"
	"github.com/thatsimonsguy/frost-relay/internal/clock"
	"github.com/thatsimonsguy/frost-relay/internal/gpio"
	"github.com/thatsimonsguy/frost-relay/internal/model"
	"github.com/thatsimonsguy/frost-relay/internal/mqtt"
	"github.com/thatsimonsguy/frost-relay/internal/schedule"
	"github.com/thatsimonsguy/frost-relay/internal/temperature"
)

const DefaultPollInterval = 60 * time.Second

type State int

const (
	Idle State = iota
	Polling
	Deciding
	Actuating
	Sleeping
)

func (s State) String() string {
	switch s {
	case Polling:
		return "polling"
	case Deciding:
		return "deciding"
	case Actuating:
		return "actuating"
	case Sleeping:
		return "sleeping"
	default:
		return "idle"
	}
}

// RTC is the part of the DS3231 the loop needs.
type RTC interface {
	Sync(clk clock.Setter) (model.CalendarTime, error)
}

// LocalTimer yields the current local wall time.
type LocalTimer interface {
	LocalTime() model.CalendarTime
}

type Metrics interface {
	Gauge(name string, value float64, tags ...string)
}

type Deps struct {
	RTC       RTC
	HostClock clock.Setter
	Sensor    temperature.Source
	Monitor   *temperature.Monitor
	Resolver  LocalTimer
	Relay     gpio.Relay

	// Optional
	Metrics      Metrics
	Events       mqtt.Publisher
	PollInterval time.Duration
}

// Decision is the outcome of one cycle.
type Decision struct {
	RTCTime    model.CalendarTime
	LocalTime  model.CalendarTime
	SummerTime bool
	Reading    temperature.Reading
	TempLow    bool
	InWindow   bool
	Relay      bool
}

type Controller struct {
	deps    Deps
	state   State
	relayOn bool
	written bool
	cycles  int
}

// sleep blocks for d or until ctx is done.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func New(d Deps) (*Controller, error) {
	var missing []string
	if d.RTC == nil {
		missing = append(missing, "rtc")
	}
	if d.HostClock == nil {
		missing = append(missing, "host clock")
	}
	if d.Sensor == nil {
		missing = append(missing, "sensor")
	}
	if d.Monitor == nil {
		missing = append(missing, "monitor")
	}
	if d.Resolver == nil {
		missing = append(missing, "resolver")
	}
	if d.Relay == nil {
		missing = append(missing, "relay")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("controller: missing dependencies: %v", missing)
	}

	if d.Events == nil {
		d.Events = mqtt.Nop{}
	}
	if d.PollInterval <= 0 {
		d.PollInterval = DefaultPollInterval
	}
	return &Controller{deps: d, state: Idle}, nil
}

// Decide is the relay policy: heat inside the window unless the frost monitor says low.
func Decide(inWindow, tempLow bool) bool {
	return inWindow && !tempLow
}

func (c *Controller) State() State { return c.state }

func (c *Controller) RelayOn() bool { return c.relayOn }

// Step runs one cycle. The RTC sync always happens before local time is resolved, so
// the window check sees freshly synced time. Any error is a hardware fault.
func (c *Controller) Step() (Decision, error) {
	var d Decision
	var err error

	c.state = Polling
	d.RTCTime, err = c.deps.RTC.Sync(c.deps.HostClock)
	if err != nil {
		return d, fmt.Errorf("rtc sync: %w", err)
	}

	d.Reading, err = c.deps.Sensor.Read()
	if err != nil {
		return d, fmt.Errorf("read temperature: %w", err)
	}
	d.TempLow = c.deps.Monitor.Poll(d.Reading)

	c.state = Deciding
	d.LocalTime = c.deps.Resolver.LocalTime()
	d.SummerTime = civiltime.IsSummerTime(d.RTCTime.Year, d.RTCTime.Time())
	d.InWindow = schedule.InActiveWindow(d.LocalTime)
	d.Relay = Decide(d.InWindow, d.TempLow)

	c.state = Actuating
	if err := c.deps.Relay.Set(d.Relay); err != nil {
		return d, fmt.Errorf("write relay: %w", err)
	}
	changed := !c.written || c.relayOn != d.Relay
	c.relayOn = d.Relay
	c.written = true
	c.cycles++

	c.report(d, changed)
	return d, nil
}

func (c *Controller) report(d Decision, changed bool) {
	entry := log.Info()
	if !changed {
		entry = log.Debug()
	}
	entry.
		Stringer("rtc_time", d.RTCTime).
		Stringer("local_time", d.LocalTime).
		Bool("summer_time", d.SummerTime).
		Bool("reading_valid", d.Reading.Valid).
		Float64("temp", d.Reading.Temperature).
		Bool("temp_low", d.TempLow).
		Bool("in_window", d.InWindow).
		Bool("relay", d.Relay).
		Msg("Control cycle complete")

	if m := c.deps.Metrics; m != nil {
		if d.Reading.Valid {
			m.Gauge("temperature", d.Reading.Temperature)
		}
		m.Gauge("relay", boolGauge(d.Relay))
		m.Gauge("temp_low", boolGauge(d.TempLow))
		m.Gauge("in_window", boolGauge(d.InWindow))
		m.Gauge("sensor_present", boolGauge(d.Reading.Valid))
	}

	if !changed {
		return
	}
	event := mqtt.RelayEvent{
		Timestamp: d.RTCTime.Time(),
		On:        d.Relay,
		InWindow:  d.InWindow,
		TempLow:   d.TempLow,
		LocalTime: d.LocalTime.String(),
	}
	if d.Reading.Valid {
		temp := d.Reading.Temperature
		event.Temperature = &temp
	}
	if err := c.deps.Events.Publish(event); err != nil {
		log.Warn().Err(err).Msg("Failed to publish relay event")
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Run cycles forever, sleeping PollInterval between cycles. It returns the first cycle
// error, or nil once ctx is cancelled during a sleep.
func (c *Controller) Run(ctx context.Context) error {
	log.Info().Dur("poll_interval", c.deps.PollInterval).Msg("Starting heating control loop")
	for {
		if _, err := c.Step(); err != nil {
			return err
		}

		c.state = Sleeping
		if err := sleep(ctx, c.deps.PollInterval); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Info().Int("cycles", c.cycles).Msg("Control loop stopped")
				return nil
			}
			return err
		}
	}
}
