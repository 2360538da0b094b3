package temperature

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/frost-relay/internal/model"
)

const goodSlave = "72 01 4b 46 7f ff 0e 10 57 : crc=57 YES\n72 01 4b 46 7f ff 0e 10 57 t=23125\n"

func noSleep(t *testing.T) *[]time.Duration {
	var slept []time.Duration
	orig := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = orig })
	return &slept
}

func writeDevice(t *testing.T, dir, id, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, id), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, id, "w1_slave"), []byte(contents), 0644))
}

func TestParseW1Slave(t *testing.T) {
	temp, err := parseW1Slave(goodSlave)
	require.NoError(t, err)
	assert.InDelta(t, 23.125, temp, 1e-9)

	temp, err = parseW1Slave("50 05 4b 46 7f ff 0c 10 1c : crc=1c YES\n50 05 4b 46 7f ff 0c 10 1c t=-4062\n")
	require.NoError(t, err)
	assert.InDelta(t, -4.062, temp, 1e-9)
}

func TestParseW1Slave_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"crc":       "72 01 4b 46 7f ff 0e 10 57 : crc=57 NO\n72 01 4b 46 7f ff 0e 10 57 t=23125\n",
		"no t=":     "72 01 : crc=57 YES\n72 01 4b 46\n",
		"not a num": "72 01 : crc=57 YES\n72 01 t=abc\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseW1Slave(data)
			assert.Error(t, err)
		})
	}
}

func TestSensor_Scan(t *testing.T) {
	dir := t.TempDir()
	writeDevice(t, dir, "28-00000b", goodSlave)
	writeDevice(t, dir, "28-00000a", goodSlave)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "w1_bus_master1"), 0755))

	ids, err := NewSensor(dir, 0).Scan()

	require.NoError(t, err)
	assert.Equal(t, []string{"28-00000a", "28-00000b"}, ids)
}

func TestSensor_ReadAbsent(t *testing.T) {
	noSleep(t)

	r, err := NewSensor(t.TempDir(), 3).Read()

	require.NoError(t, err)
	assert.False(t, r.Valid)
}

func TestSensor_ReadFirstDevice(t *testing.T) {
	slept := noSleep(t)
	dir := t.TempDir()
	writeDevice(t, dir, "28-000001", goodSlave)
	writeDevice(t, dir, "28-000002", "00 : crc=00 YES\n00 t=-4000\n")
	master := filepath.Join(dir, "w1_bus_master1")
	require.NoError(t, os.MkdirAll(master, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(master, "therm_bulk_read"), nil, 0644))

	r, err := NewSensor(dir, 3).Read()

	require.NoError(t, err)
	assert.True(t, r.Valid)
	assert.InDelta(t, 23.125, r.Temperature, 1e-9)
	assert.Equal(t, []time.Duration{DefaultConversionDelay}, *slept)

	trigger, err := os.ReadFile(filepath.Join(master, "therm_bulk_read"))
	require.NoError(t, err)
	assert.Equal(t, "trigger\n", string(trigger))
}

func TestSensor_ReadRetriesThenFails(t *testing.T) {
	slept := noSleep(t)
	dir := t.TempDir()
	writeDevice(t, dir, "28-000001", "garbage")

	_, err := NewSensor(dir, 2).Read()

	assert.ErrorIs(t, err, model.ErrHardwareIO)
	assert.Equal(t, []time.Duration{DefaultConversionDelay, DefaultRetryDelay, DefaultRetryDelay}, *slept)
}

func TestNewSensor_Defaults(t *testing.T) {
	s := NewSensor("", 3)
	assert.Equal(t, DefaultDevicesDir, s.DevicesDir)
	assert.Equal(t, DefaultConversionDelay, s.ConversionDelay)
	assert.Equal(t, 3, s.Retries)
}

func TestSensor_ConvertBadPattern(t *testing.T) {
	s := NewSensor(filepath.Join(t.TempDir(), "w1["), 0)

	err := s.Convert()

	assert.ErrorIs(t, err, filepath.ErrBadPattern)
}
