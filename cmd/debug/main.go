package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thatsimonsguy/frost-relay/internal/civiltime"
	"github.com/thatsimonsguy/frost-relay/internal/clock"
	"github.com/thatsimonsguy/frost-relay/internal/config"
	"github.com/thatsimonsguy/frost-relay/internal/gpio"
	"github.com/thatsimonsguy/frost-relay/internal/model"
	"github.com/thatsimonsguy/frost-relay/internal/rtc"
	"github.com/thatsimonsguy/frost-relay/internal/schedule"
	"github.com/thatsimonsguy/frost-relay/internal/temperature"
	"github.com/thatsimonsguy/frost-relay/system/startup"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var configFile, command, binaryPath string
	flag.StringVar(&configFile, "config-file", "config.json", "Path to controller config file")
	flag.StringVar(&command, "cmd", "", "Command to run: read-rtc, save-rtc, read-temp, local-time, relay-status, write-boot-script, run-boot-script, install-service")
	flag.StringVar(&binaryPath, "binary", "/usr/local/bin/frost-relay", "Controller binary path for install-service")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of frost-relay-debug:")
		fmt.Println("  -config-file string\tPath to controller config file (default 'config.json')")
		fmt.Println("  -cmd string\tCommand to run:")
		fmt.Println("      read-rtc\t\tPrint the DS3231 time")
		fmt.Println("      save-rtc\t\tWrite the host UTC time to the DS3231")
		fmt.Println("      read-temp\t\tTake one DS18B20 reading")
		fmt.Println("      local-time\tPrint local time and whether the heating window is open")
		fmt.Println("      relay-status\tShow the relay pin configuration and whether it is energized")
		fmt.Println("      write-boot-script\tWrite the GPIO boot script")
		fmt.Println("      run-boot-script\tRun the GPIO boot script now")
		fmt.Println("      install-service\tWrite the boot and controller systemd units")
		fmt.Println("  -binary string\tController binary path for install-service")
		fmt.Println("  -help\tShow this help message")
		os.Exit(0)
	}

	cfg := config.LoadFile(configFile)

	var err error
	switch command {
	case "read-rtc":
		err = readRTC(cfg)
	case "save-rtc":
		err = saveRTC(cfg)
	case "read-temp":
		err = readTemp(cfg)
	case "local-time":
		localTime()
	case "relay-status":
		err = relayStatus(cfg)
	case "write-boot-script":
		err = startup.WriteStartupScript(cfg)
	case "run-boot-script":
		err = startup.RunStartupScript(cfg)
	case "install-service":
		if err = startup.WriteStartupScript(cfg); err == nil {
			if err = startup.InstallStartupService(cfg); err == nil {
				err = startup.InstallMainService(cfg, binaryPath)
			}
		}
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
	fmt.Printf("Command %s completed successfully\n", command)
}

func withRTC(cfg config.Config, fn func(*rtc.DS3231) error) error {
	bus, err := rtc.OpenBus(cfg.I2CBus)
	if err != nil {
		return err
	}
	defer bus.Close()
	return fn(rtc.NewI2C(bus))
}

func readRTC(cfg config.Config) error {
	return withRTC(cfg, func(d *rtc.DS3231) error {
		block, err := d.ReadBlock()
		if err != nil {
			return err
		}
		fmt.Printf("registers: % x\n", block[:])
		fmt.Printf("time:      %s\n", rtc.Decode(block))
		return nil
	})
}

func saveRTC(cfg config.Config) error {
	host := &clock.System{}
	return withRTC(cfg, func(d *rtc.DS3231) error {
		now := model.FromTime(host.Now())
		if err := d.SaveTime(now); err != nil {
			return err
		}
		fmt.Printf("saved:     %s\n", now)
		return nil
	})
}

func readTemp(cfg config.Config) error {
	r, err := temperature.NewSensor(cfg.W1DevicesDir, cfg.SensorRetries).Read()
	if err != nil {
		return err
	}
	if !r.Valid {
		fmt.Println("no sensor present")
		return nil
	}
	fmt.Printf("temperature: %.3f C\n", r.Temperature)
	return nil
}

func localTime() {
	local := civiltime.NewResolver(&clock.System{}).LocalTime()
	fmt.Printf("local time: %s\n", local)
	fmt.Printf("night: %t  season: %t  window: %t\n",
		schedule.IsNight(local), schedule.IsHeatingSeason(local), schedule.InActiveWindow(local))
}

func relayStatus(cfg config.Config) error {
	status, err := gpio.Status(cfg.RelayGPIOPin())
	if err != nil {
		return err
	}
	p := status.Pin
	fmt.Printf("GPIO%d: mode=%s pull=%s drive=%s level=%s\n", p.Pin, p.Mode, p.Pull, p.Drive, p.Level)
	fmt.Printf("relay energized: %t\n", status.Active)
	return nil
}
