package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/civiltime"
	"github.com/thatsimonsguy/frost-relay/internal/clock"
	"github.com/thatsimonsguy/frost-relay/internal/config"
	"github.com/thatsimonsguy/frost-relay/internal/controller"
	"github.com/thatsimonsguy/frost-relay/internal/datadog"
	"github.com/thatsimonsguy/frost-relay/internal/gpio"
	"github.com/thatsimonsguy/frost-relay/internal/logging"
	"github.com/thatsimonsguy/frost-relay/internal/mqtt"
	"github.com/thatsimonsguy/frost-relay/internal/notifications"
	"github.com/thatsimonsguy/frost-relay/internal/rtc"
	"github.com/thatsimonsguy/frost-relay/internal/temperature"
	"github.com/thatsimonsguy/frost-relay/system/shutdown"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("config_file", cfg.ConfigFile).
		Str("relay_driver", cfg.RelayDriver).
		Int("relay_pin", *cfg.RelayPin).
		Msg("Starting frost relay controller")

	if cfg.SafeMode {
		log.Warn().Msg("SAFE MODE ENABLED - relay writes and clock updates are disabled")
	}

	dd := datadog.New(cfg.EnableDatadog, cfg.DDAgentAddr, cfg.DDNamespace, cfg.DDTags)

	var notifier shutdown.Notifier
	if n := notifications.New(cfg.NtfyTopic); n.Enabled() {
		notifier = n
	}

	var events mqtt.Publisher = mqtt.Nop{}
	if cfg.MQTTBroker != "" {
		p, err := mqtt.NewRealPublisher(cfg.MQTTBroker, cfg.MQTTTopic)
		if err != nil {
			log.Warn().Err(err).Msg("MQTT unavailable, relay events will not be published")
		} else {
			events = p
		}
	}

	relay, err := gpio.Open(cfg.RelayDriver, cfg.GPIOChip, cfg.RelayGPIOPin(), cfg.SafeMode)
	if err != nil {
		shutdown.New(nil, notifier).ShutdownWithError(err, "Failed to open heating relay")
		return
	}
	exit := shutdown.New(relay, notifier)

	if err := relay.Set(false); err != nil {
		exit.ShutdownWithError(err, "Failed to de-energize relay at startup")
		return
	}

	bus, err := rtc.OpenBus(cfg.I2CBus)
	if err != nil {
		exit.ShutdownWithError(err, "Failed to open I2C bus")
		return
	}
	ds3231 := rtc.NewI2C(bus)

	hostClock := &clock.System{DryRun: cfg.SafeMode}
	synced, err := ds3231.Sync(hostClock)
	if err != nil {
		exit.ShutdownWithError(err, "Initial clock sync from RTC failed")
		return
	}
	log.Info().Stringer("rtc", synced).Msg("System clock set from RTC")

	monitor, err := temperature.NewMonitor(temperature.DefaultThresholds)
	if err != nil {
		exit.ShutdownWithError(err, "Invalid frost thresholds")
		return
	}

	ctrl, err := controller.New(controller.Deps{
		RTC:          ds3231,
		HostClock:    hostClock,
		Sensor:       temperature.NewSensor(cfg.W1DevicesDir, cfg.SensorRetries),
		Monitor:      monitor,
		Resolver:     civiltime.NewResolver(hostClock),
		Relay:        relay,
		Metrics:      dd,
		Events:       events,
		PollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
	})
	if err != nil {
		exit.ShutdownWithError(err, "Failed to build controller")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Run(ctx); err != nil {
		exit.ShutdownWithError(err, "Control loop stopped")
		return
	}

	log.Info().Msg("Received shutdown signal")
	events.Close()
	dd.Close()
	bus.Close()
	exit.Shutdown(0)
}
