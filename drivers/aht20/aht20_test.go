package aht20

import (
	"testing"
	"time"

	"qwiic-go/i2cbus/i2ctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frame: calibrated, idle, 50 %RH, 25.0 °C.
var frame = []byte{0x1C, 0x80, 0x00, 0x06, 0x00, 0x00, 0x00}

func newFake(t *testing.T, ready bool) (*i2ctest.Bus, *i2ctest.Device) {
	t.Helper()
	bus := i2ctest.New(Address)
	dev, _ := bus.Device(Address)
	dev.Regs[cmdStatus] = statusCalibrated
	dev.OnWrite = func(w []byte) {
		if w[0] != cmdTrigger {
			return
		}
		f := append([]byte(nil), frame...)
		if !ready {
			f[0] |= statusBusy
		}
		copy(dev.Regs[cmdTrigger:], f)
	}
	return bus, dev
}

func TestReadConvertsFixedPoint(t *testing.T) {
	bus, _ := newFake(t, true)
	d := New(bus, 0)
	assert.Equal(t, uint16(Address), d.Address(), "default address")
	require.NoError(t, d.Configure(Config{}))

	s, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, 500, int(s.DeciRelHumidity()))
	assert.Equal(t, 250, int(s.DeciCelsius()))
}

func TestReadTimesOutWhileBusy(t *testing.T) {
	bus, _ := newFake(t, false)
	d := New(bus, Address)
	_ = d.Configure(Config{PollInterval: time.Millisecond, CollectTimeout: 5 * time.Millisecond})
	_, err := d.Read()
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestConfigureInitialisesUncalibrated(t *testing.T) {
	bus, dev := newFake(t, true)
	dev.Regs[cmdStatus] = 0
	d := New(bus, Address)
	require.NoError(t, d.Configure(Config{}))

	w := bus.LastTx.W
	require.Len(t, w, 3, "initialise command")
	assert.Equal(t, byte(cmdInitialize), w[0])
}

func TestBusErrorsPassThrough(t *testing.T) {
	d := New(i2ctest.New(), Address)
	assert.ErrorIs(t, d.Configure(Config{}), i2ctest.ErrNack)
	_, err := d.Collect()
	assert.ErrorIs(t, err, i2ctest.ErrNack)
}
