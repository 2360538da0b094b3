package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

// Config covers wiring and deployment only. The heating policy (thresholds, DST rule,
// time window) is fixed in code.
type Config struct {
	ConfigFile string        `json:"-"`
	LogLevel   zerolog.Level `json:"-"`

	LogFile string `json:"log_file"`

	I2CBus string `json:"i2c_bus"`

	GPIOChip        string `json:"gpio_chip"`
	RelayDriver     string `json:"relay_driver"`
	RelayPin        *int   `json:"relay_pin"`
	RelayActiveHigh *bool  `json:"relay_active_high"`

	W1DevicesDir  string `json:"w1_devices_dir"`
	SensorRetries int    `json:"sensor_retries"`

	PollIntervalSeconds int  `json:"poll_interval_seconds"`
	SafeMode            bool `json:"safe_mode"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`

	NtfyTopic string `json:"ntfy_topic"`

	MQTTBroker string `json:"mqtt_broker"`
	MQTTTopic  string `json:"mqtt_topic"`

	BootScriptFilePath string `json:"boot_script_path"`
	OSServicePath      string `json:"os_service_path"`
	MainServicePath    string `json:"main_service_path"`
}

// Load parses flags, reads the JSON config file and fills in defaults.
// A missing config file is fine; the defaults describe the reference board.
func Load() Config {
	var configFile, logLevel string

	flag.StringVar(&configFile, "config-file", "config.json", "Path to controller config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg := LoadFile(configFile)
	cfg.LogLevel = parseLogLevel(logLevel)
	return cfg
}

// LoadFile is Load without flag parsing, for tools that own their flags.
func LoadFile(path string) Config {
	cfg := Config{ConfigFile: path, LogLevel: zerolog.InfoLevel}
	if err := cfg.readFile(path); err != nil {
		panic(err.Error())
	}

	cfg.applyDefaults()
	cfg.validate()
	return cfg
}

func (cfg *Config) readFile(path string) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.LogFile == "" {
		cfg.LogFile = "/var/log/frost-relay.log"
	}
	if cfg.GPIOChip == "" {
		cfg.GPIOChip = "gpiochip0"
	}
	if cfg.RelayDriver == "" {
		cfg.RelayDriver = "gpiocdev"
	}
	if cfg.RelayPin == nil {
		pin := 26
		cfg.RelayPin = &pin
	}
	if cfg.RelayActiveHigh == nil {
		activeHigh := true
		cfg.RelayActiveHigh = &activeHigh
	}
	if cfg.W1DevicesDir == "" {
		cfg.W1DevicesDir = "/sys/bus/w1/devices"
	}
	if cfg.SensorRetries == 0 {
		cfg.SensorRetries = 3
	}
	if cfg.PollIntervalSeconds == 0 {
		cfg.PollIntervalSeconds = 60
	}
	if cfg.DDAgentAddr == "" {
		cfg.DDAgentAddr = "127.0.0.1:8125"
	}
	if cfg.DDNamespace == "" {
		cfg.DDNamespace = "frost_relay."
	}
	if cfg.MQTTTopic == "" {
		cfg.MQTTTopic = "heating/frost-relay/relay"
	}
	if cfg.BootScriptFilePath == "" {
		cfg.BootScriptFilePath = "/usr/local/bin/frost-relay-gpio.sh"
	}
	if cfg.OSServicePath == "" {
		cfg.OSServicePath = "/etc/systemd/system/frost-relay-gpio.service"
	}
	if cfg.MainServicePath == "" {
		cfg.MainServicePath = "/etc/systemd/system/frost-relay.service"
	}
}

// RelayGPIOPin is the relay output with its polarity. Call after defaults are applied.
func (cfg Config) RelayGPIOPin() model.GPIOPin {
	return model.GPIOPin{Number: *cfg.RelayPin, ActiveHigh: *cfg.RelayActiveHigh}
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var problems []string

	switch cfg.RelayDriver {
	case "gpiocdev", "pinctrl":
	default:
		problems = append(problems, fmt.Sprintf("relay_driver %q (want gpiocdev or pinctrl)", cfg.RelayDriver))
	}
	if cfg.RelayPin == nil || *cfg.RelayPin < 0 || *cfg.RelayPin > 27 {
		problems = append(problems, "relay_pin must be a BCM GPIO number 0-27")
	}
	if cfg.RelayActiveHigh == nil {
		problems = append(problems, "relay_active_high must be set")
	}
	if cfg.PollIntervalSeconds < 0 {
		problems = append(problems, "poll_interval_seconds must be positive")
	}
	if cfg.SensorRetries < 0 {
		problems = append(problems, "sensor_retries must not be negative")
	}
	if cfg.EnableDatadog && cfg.DDAgentAddr == "" {
		problems = append(problems, "dd_agent_addr is required when enable_datadog is set")
	}

	if len(problems) > 0 {
		panic("Invalid config: " + strings.Join(problems, ", "))
	}
}
