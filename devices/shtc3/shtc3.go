// Package shtc3dev registers the SHTC3 temperature/humidity sensor on top
// of the TinyGo shtc3 driver.
package shtc3dev

import (
	"qwiic-go/i2cbus"
	"qwiic-go/registry"
	"qwiic-go/x/mathx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/shtc3"
)

const (
	Name = "Qwiic SHTC3"
	Type = "shtc3"
)

var Addresses = []i2cbus.Addr{0x70}

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is the SHTC3 at its fixed address.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  shtc3.Device
}

// New binds the sensor; the bus is not touched.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	return &Device{bus: bus, addr: addr, drv: shtc3.New(bus)}, nil
}

func (d *Device) Address() i2cbus.Addr { return d.addr }
func (d *Device) IsConnected() bool    { return i2cbus.Connected(d.bus, d.addr) }

// Sample wakes the sensor, measures and puts it back to sleep.
func (d *Device) Sample() ([]registry.Reading, error) {
	_ = d.drv.WakeUp()
	defer func() { _ = d.drv.Sleep() }()

	tmc, rhx100, err := d.drv.ReadTemperatureHumidity()
	if err != nil {
		return nil, err
	}
	decic := mathx.Clamp(tmc/100, -32768, 32767)
	rhx100 = mathx.Clamp(rhx100, 0, 10000)
	return []registry.Reading{
		{Kind: "temperature", Value: int16(decic), Unit: "deci_c"},
		{Kind: "humidity", Value: uint16(rhx100), Unit: "rh_x100"},
	}, nil
}
