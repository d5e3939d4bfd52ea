// Package ccs811dev registers the Qwiic CCS811 air quality sensor.
package ccs811dev

import (
	"qwiic-go/drivers/ccs811"
	"qwiic-go/i2cbus"
	"qwiic-go/registry"

	"tinygo.org/x/drivers"
)

const (
	Name = "Qwiic CCS811"
	Type = "ccs811"
)

var Addresses = []i2cbus.Addr{ccs811.Address, ccs811.AddressAlt}

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is one CCS811 air quality sensor.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  *ccs811.Device
}

// New binds a CCS811 at addr; the bus is not touched.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	return &Device{bus: bus, addr: addr, drv: ccs811.New(bus, uint16(addr))}, nil
}

func (d *Device) Address() i2cbus.Addr   { return d.addr }
func (d *Device) IsConnected() bool      { return i2cbus.Connected(d.bus, d.addr) }
func (d *Device) Driver() *ccs811.Device { return d.drv }

// Begin starts the sensor application in 1 s drive mode.
func (d *Device) Begin() error { return d.drv.Configure(ccs811.Mode1s) }

func (d *Device) Sample() ([]registry.Reading, error) {
	eco2, tvoc, err := d.drv.Read()
	if err != nil {
		return nil, err
	}
	return []registry.Reading{
		{Kind: "eco2", Value: eco2, Unit: "ppm"},
		{Kind: "tvoc", Value: tvoc, Unit: "ppb"},
	}, nil
}
