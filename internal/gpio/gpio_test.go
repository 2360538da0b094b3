package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/frost-relay/internal/model"
	"github.com/thatsimonsguy/frost-relay/internal/pinctrl"
)

func mockPinctrl(t *testing.T) map[int]bool {
	levels := map[int]bool{}
	origDrive, origRead := driveOutput, readLevel
	driveOutput = func(pin int, high bool) error {
		levels[pin] = high
		return nil
	}
	readLevel = func(pin int) (bool, error) { return levels[pin], nil }
	t.Cleanup(func() {
		driveOutput = origDrive
		readLevel = origRead
	})
	return levels
}

func TestPinctrlRelay_ActiveHigh(t *testing.T) {
	levels := mockPinctrl(t)
	r := &PinctrlRelay{Pin: model.GPIOPin{Number: 26, ActiveHigh: true}}

	require.NoError(t, r.Set(true))
	assert.True(t, levels[26])
	active, err := r.Active()
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, r.Set(false))
	assert.False(t, levels[26])
}

func TestPinctrlRelay_ActiveLow(t *testing.T) {
	levels := mockPinctrl(t)
	r := &PinctrlRelay{Pin: model.GPIOPin{Number: 17, ActiveHigh: false}}

	require.NoError(t, r.Set(true))
	assert.False(t, levels[17], "active-low relay is energized by driving low")
	active, err := r.Active()
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, r.Set(false))
	assert.True(t, levels[17])
}

func TestPinctrlRelay_Error(t *testing.T) {
	origDrive := driveOutput
	defer func() { driveOutput = origDrive }()
	driveOutput = func(int, bool) error { return errors.New("pinctrl missing") }

	err := (&PinctrlRelay{Pin: model.GPIOPin{Number: 26, ActiveHigh: true}}).Set(true)

	assert.ErrorIs(t, err, model.ErrHardwareIO)
}

func TestOpen_SafeModeNeverWrites(t *testing.T) {
	origDrive := driveOutput
	defer func() { driveOutput = origDrive }()
	driveOutput = func(int, bool) error {
		t.Error("safe mode must not drive pins")
		return nil
	}

	r, err := Open(DriverPinctrl, "", model.GPIOPin{Number: 26, ActiveHigh: true}, true)
	require.NoError(t, err)
	assert.IsType(t, &SafeRelay{}, r)
	assert.NoError(t, r.Set(true))
	assert.NoError(t, r.Close())
}

func TestOpen_Drivers(t *testing.T) {
	r, err := Open(DriverPinctrl, "", model.GPIOPin{Number: 26}, false)
	require.NoError(t, err)
	assert.IsType(t, &PinctrlRelay{}, r)

	_, err = Open("sysfs", "", model.GPIOPin{Number: 26}, false)
	assert.Error(t, err)
}

func TestFakeRelay(t *testing.T) {
	f := &FakeRelay{}
	require.NoError(t, f.Set(true))
	require.NoError(t, f.Set(false))
	assert.Equal(t, []bool{true, false}, f.Writes)

	f.On = true
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
	assert.False(t, f.On)
}

func TestOpen_ChipErrorReturnsNilRelay(t *testing.T) {
	r, err := Open(DriverChip, "frost-relay-missing-chip", model.GPIOPin{Number: 26, ActiveHigh: true}, false)

	require.Error(t, err)
	assert.True(t, r == nil, "relay must be a nil interface, got %#v", r)
}

func TestStatus(t *testing.T) {
	levels := mockPinctrl(t)
	levels[17] = false
	origReadPin := readPin
	t.Cleanup(func() { readPin = origReadPin })
	readPin = func(pin int) (*pinctrl.PinState, error) {
		return &pinctrl.PinState{Pin: pin, Mode: "op", Pull: "pn", Drive: "dl", Level: "lo"}, nil
	}

	status, err := Status(model.GPIOPin{Number: 17, ActiveHigh: false})

	require.NoError(t, err)
	assert.True(t, status.Active, "active-low relay driven low is energized")
	assert.Equal(t, "op", status.Pin.Mode)
	assert.Equal(t, "dl", status.Pin.Drive)
	assert.Equal(t, 17, status.Pin.Pin)
}

func TestStatus_ReadError(t *testing.T) {
	origReadPin := readPin
	t.Cleanup(func() { readPin = origReadPin })
	readPin = func(int) (*pinctrl.PinState, error) { return nil, errors.New("pinctrl missing") }

	_, err := Status(model.GPIOPin{Number: 26, ActiveHigh: true})

	assert.ErrorContains(t, err, "pinctrl missing")
}
