package vcnl4040

import (
	"testing"

	"qwiic-go/i2cbus/i2ctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureChecksIDAndPowersOn(t *testing.T) {
	bus := i2ctest.New(Address)
	fake, _ := bus.Device(Address)
	fake.Regs[regID], fake.Regs[regID+1] = 0x86, 0x01
	fake.Regs[regALSConf] = alsShutdown

	require.NoError(t, New(bus).Configure())
	assert.Zero(t, fake.Regs[regALSConf]&alsShutdown, "ambient light sensor left in shutdown")
	assert.Equal(t, uint16(Address), bus.LastTx.Addr)
	assert.Equal(t, byte(regPSConf3), bus.LastTx.W[0])
}

func TestConfigureRejectsWrongID(t *testing.T) {
	assert.ErrorIs(t, New(i2ctest.New(Address)).Configure(), ErrWrongID)
}

func TestProximityLittleEndian(t *testing.T) {
	bus := i2ctest.New(Address)
	fake, _ := bus.Device(Address)
	fake.Regs[regPSData], fake.Regs[regPSData+1] = 0x34, 0x12

	got, err := New(bus).Proximity()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got)
}
