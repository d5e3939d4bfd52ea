package scmd

import (
	"testing"

	"qwiic-go/i2cbus/i2ctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ready(t *testing.T, addr uint16) (*i2ctest.Bus, *i2ctest.Device) {
	t.Helper()
	bus := i2ctest.New(addr)
	dev, _ := bus.Device(addr)
	dev.Regs[regID] = idWord
	dev.Regs[regStatus1] = statusEnumDone
	return bus, dev
}

func TestDriveValue(t *testing.T) {
	for _, c := range []struct {
		speed int
		want  byte
	}{
		{0, 0x80},
		{255, 0xFF},
		{-255, 0x01},
		{1000, 0xFF},
		{-1000, 0x01},
		{100, 0x80 + 50},
	} {
		assert.Equal(t, c.want, DriveValue(c.speed), "DriveValue(%d)", c.speed)
	}
}

func TestConfigureAndDrive(t *testing.T) {
	bus, dev := ready(t, 0x60)
	dev.Regs[regMotorADrive] = 0x00
	d := New(bus, 0x60)
	require.NoError(t, d.Configure())
	assert.Equal(t, byte(driveStop), dev.Regs[regMotorADrive], "Configure stops channel A")
	assert.Equal(t, byte(driveStop), dev.Regs[regMotorBDrive], "Configure stops channel B")

	require.NoError(t, d.Enable(true))
	assert.Equal(t, byte(1), dev.Regs[regDriverEnable])

	require.NoError(t, d.Drive(1, -100))
	assert.Equal(t, byte(0x80-50), dev.Regs[regMotorBDrive])

	require.NoError(t, d.Invert(1, true))
	assert.Equal(t, byte(1), dev.Regs[regMotorBInvert])

	assert.ErrorIs(t, d.Drive(2, 10), ErrBadMotor)

	require.NoError(t, d.Stop())
	assert.Equal(t, byte(driveStop), dev.Regs[regMotorBDrive])
}

func TestConfigureFailures(t *testing.T) {
	bus, dev := ready(t, Address)
	dev.Regs[regStatus1] = 0
	assert.ErrorIs(t, New(bus, 0).Configure(), ErrNotReady)
	dev.Regs[regID] = 0
	assert.ErrorIs(t, New(bus, 0).Configure(), ErrWrongID)
}
