// Package aht20dev registers the Qwiic AHT20 temperature/humidity sensor.
package aht20dev

import (
	"time"

	"qwiic-go/drivers/aht20"
	"qwiic-go/i2cbus"
	"qwiic-go/registry"
	"qwiic-go/x/mathx"

	"tinygo.org/x/drivers"
)

const (
	Name = "Qwiic AHT20"
	Type = "aht20"
)

var Addresses = []i2cbus.Addr{aht20.Address}

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is one AHT20 bound to an address.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  *aht20.Device
}

// New binds an AHT20 at addr; the bus is not touched.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	return &Device{bus: bus, addr: addr, drv: aht20.New(bus, uint16(addr))}, nil
}

func (d *Device) Address() i2cbus.Addr  { return d.addr }
func (d *Device) IsConnected() bool     { return i2cbus.Connected(d.bus, d.addr) }
func (d *Device) Driver() *aht20.Device { return d.drv }

func (d *Device) Begin() error {
	return d.drv.Configure(aht20.Config{
		PollInterval:   15 * time.Millisecond,
		CollectTimeout: 250 * time.Millisecond,
	})
}

// Sample runs one blocking measurement (~80 ms).
func (d *Device) Sample() ([]registry.Reading, error) {
	s, err := d.drv.Read()
	if err != nil {
		return nil, err
	}
	decic := mathx.Clamp(s.DeciCelsius(), -32768, 32767)
	rhx100 := mathx.Clamp(s.DeciRelHumidity()*10, 0, 10000)
	return []registry.Reading{
		{Kind: "temperature", Value: int16(decic), Unit: "deci_c"},
		{Kind: "humidity", Value: uint16(rhx100), Unit: "rh_x100"},
	}, nil
}
