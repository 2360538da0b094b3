package temperature

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

const (
	DefaultDevicesDir      = "/sys/bus/w1/devices"
	DefaultConversionDelay = 750 * time.Millisecond
	DefaultRetryDelay      = 2 * time.Second

	// DS18B20 family code
	familyPrefix = "28-"
)

var sleep = time.Sleep

// Source yields one temperature sample per call.
type Source interface {
	Read() (Reading, error)
}

// Sensor reads DS18B20 probes through the Linux w1 sysfs interface.
type Sensor struct {
	DevicesDir      string
	ConversionDelay time.Duration
	Retries         int
	RetryDelay      time.Duration
}

func NewSensor(devicesDir string, retries int) *Sensor {
	if devicesDir == "" {
		devicesDir = DefaultDevicesDir
	}
	return &Sensor{
		DevicesDir:      devicesDir,
		ConversionDelay: DefaultConversionDelay,
		Retries:         retries,
		RetryDelay:      DefaultRetryDelay,
	}
}

// Scan lists the ids of DS18B20 devices present on the bus.
func (s *Sensor) Scan() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.DevicesDir, familyPrefix+"*"))
	if err != nil {
		return nil, fmt.Errorf("scan w1 devices: %w", err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, filepath.Base(m))
	}
	sort.Strings(ids)
	return ids, nil
}

// Convert starts a temperature conversion on every bus master that supports bulk reads
// and waits for it to settle.
func (s *Sensor) Convert() error {
	masters, err := filepath.Glob(filepath.Join(s.DevicesDir, "w1_bus_master*", "therm_bulk_read"))
	if err != nil {
		return fmt.Errorf("scan w1 bus masters: %w", err)
	}
	for _, m := range masters {
		if err := os.WriteFile(m, []byte("trigger\n"), 0644); err != nil {
			return fmt.Errorf("%w: trigger conversion on %s: %v", model.ErrHardwareIO, m, err)
		}
	}
	sleep(s.ConversionDelay)
	return nil
}

// ReadDevice parses w1_slave for one device and returns degrees Celsius.
func (s *Sensor) ReadDevice(id string) (float64, error) {
	data, err := os.ReadFile(filepath.Join(s.DevicesDir, id, "w1_slave"))
	if err != nil {
		return 0, fmt.Errorf("read sensor %s: %w", id, err)
	}
	return parseW1Slave(string(data))
}

func parseW1Slave(data string) (float64, error) {
	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) < 2 {
		return 0, errors.New("temperature data missing or malformed")
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), "YES") {
		return 0, errors.New("sensor crc check failed")
	}

	parts := strings.Split(lines[1], "t=")
	if len(parts) != 2 {
		return 0, errors.New("could not parse temperature line")
	}

	milliC, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("failed to convert temperature to int: %w", err)
	}
	return float64(milliC) / 1000.0, nil
}

// Read scans, converts and samples the first probe found. No probe is not an error:
// it yields an invalid reading. A probe that keeps failing after the configured
// retries is reported as model.ErrHardwareIO.
func (s *Sensor) Read() (Reading, error) {
	ids, err := s.Scan()
	if err != nil {
		return Reading{}, err
	}
	if len(ids) == 0 {
		log.Warn().Err(model.ErrSensorAbsent).Str("dir", s.DevicesDir).Msg("Temperature sensor missing")
		return Reading{Timestamp: time.Now()}, nil
	}
	if len(ids) > 1 {
		log.Debug().Strs("devices", ids).Msg("Multiple sensors found, using the first")
	}

	if err := s.Convert(); err != nil {
		return Reading{}, err
	}

	id := ids[0]
	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if attempt > 0 {
			sleep(s.RetryDelay)
		}
		temp, err := s.ReadDevice(id)
		if err == nil {
			log.Debug().Str("sensor_id", id).Float64("temp", temp).Msg("Temperature reading accepted")
			return Reading{Temperature: temp, Timestamp: time.Now(), Valid: true}, nil
		}
		lastErr = err
		log.Error().Err(err).Str("sensor_id", id).Int("attempt", attempt+1).Msg("Failed to read sensor data")
	}
	return Reading{}, fmt.Errorf("%w: max sensor retries reached: %v", model.ErrHardwareIO, lastErr)
}
