package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/thatsimonsguy/frost-relay/internal/config"
)

// WriteStartupScript writes a boot script that drives the relay pin to its
// de-energized level before the controller starts.
func WriteStartupScript(cfg config.Config) error {
	pin := cfg.RelayGPIOPin()
	drive := "dl"
	if !pin.ActiveHigh {
		drive = "dh"
	}

	lines := []string{
		"#!/bin/bash",
		"",
		"# Heating relay GPIO configuration at boot",
		"",
		"# heating_relay (de-energized)",
		fmt.Sprintf("pinctrl set %d op pn %s", pin.Number, drive),
		"",
	}

	contents := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(cfg.BootScriptFilePath, []byte(contents), 0755)
}

func InstallStartupService(cfg config.Config) error {
	unitContents := fmt.Sprintf(`[Unit]
Description=Configure heating relay GPIO at boot
After=network.target

[Service]
Type=oneshot
Environment=PATH=/usr/local/bin:/usr/bin:/bin
ExecStart=%s
RemainAfterExit=true

[Install]
WantedBy=multi-user.target
`, cfg.BootScriptFilePath)

	return os.WriteFile(cfg.OSServicePath, []byte(unitContents), 0644)
}

func RunStartupScript(cfg config.Config) error {
	cmd := exec.Command("/bin/bash", cfg.BootScriptFilePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// InstallMainService writes the controller unit, ordered after the GPIO boot unit.
// The controller needs CAP_SYS_TIME to set the clock from the RTC.
func InstallMainService(cfg config.Config, binaryPath string) error {
	gpioUnitName := filepath.Base(cfg.OSServicePath)

	unit := fmt.Sprintf(`[Unit]
Description=Frost relay heating controller
After=%s
Requires=%s

[Service]
Type=simple
ExecStart=%s -config-file %s
AmbientCapabilities=CAP_SYS_TIME
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`, gpioUnitName, gpioUnitName, binaryPath, cfg.ConfigFile)

	return os.WriteFile(cfg.MainServicePath, []byte(unit), 0644)
}
