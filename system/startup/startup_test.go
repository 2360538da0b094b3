package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/frost-relay/internal/config"
)

func testConfig(t *testing.T, activeHigh bool) config.Config {
	dir := t.TempDir()
	pin := 26
	return config.Config{
		ConfigFile:         "/etc/frost-relay/config.json",
		RelayPin:           &pin,
		RelayActiveHigh:    &activeHigh,
		BootScriptFilePath: filepath.Join(dir, "frost-relay-gpio.sh"),
		OSServicePath:      filepath.Join(dir, "frost-relay-gpio.service"),
		MainServicePath:    filepath.Join(dir, "frost-relay.service"),
	}
}

func TestWriteStartupScript(t *testing.T) {
	cfg := testConfig(t, true)
	require.NoError(t, WriteStartupScript(cfg))

	data, err := os.ReadFile(cfg.BootScriptFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#!/bin/bash")
	assert.Contains(t, string(data), "pinctrl set 26 op pn dl")

	info, err := os.Stat(cfg.BootScriptFilePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestWriteStartupScript_ActiveLow(t *testing.T) {
	cfg := testConfig(t, false)
	require.NoError(t, WriteStartupScript(cfg))

	data, err := os.ReadFile(cfg.BootScriptFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pinctrl set 26 op pn dh")
}

func TestInstallServices(t *testing.T) {
	cfg := testConfig(t, true)
	require.NoError(t, InstallStartupService(cfg))
	require.NoError(t, InstallMainService(cfg, "/usr/local/bin/frost-relay"))

	gpioUnit, err := os.ReadFile(cfg.OSServicePath)
	require.NoError(t, err)
	assert.Contains(t, string(gpioUnit), "ExecStart="+cfg.BootScriptFilePath)

	mainUnit, err := os.ReadFile(cfg.MainServicePath)
	require.NoError(t, err)
	assert.Contains(t, string(mainUnit), "Requires=frost-relay-gpio.service")
	assert.Contains(t, string(mainUnit), "ExecStart=/usr/local/bin/frost-relay -config-file /etc/frost-relay/config.json")
	assert.Contains(t, string(mainUnit), "CAP_SYS_TIME")
}

func TestRunStartupScript(t *testing.T) {
	if _, err := os.Stat("/bin/bash"); err != nil {
		t.Skip("bash not available")
	}
	cfg := testConfig(t, true)
	marker := filepath.Join(t.TempDir(), "ran")
	require.NoError(t, os.WriteFile(cfg.BootScriptFilePath, []byte("#!/bin/bash\ntouch "+marker+"\n"), 0755))

	require.NoError(t, RunStartupScript(cfg))

	_, err := os.Stat(marker)
	assert.NoError(t, err)
}

func TestRunStartupScript_Failure(t *testing.T) {
	if _, err := os.Stat("/bin/bash"); err != nil {
		t.Skip("bash not available")
	}
	cfg := testConfig(t, true)
	require.NoError(t, os.WriteFile(cfg.BootScriptFilePath, []byte("#!/bin/bash\nexit 3\n"), 0755))

	assert.Error(t, RunStartupScript(cfg))
}
