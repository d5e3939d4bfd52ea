// Package scmddev registers the Qwiic Serial Control Motor Driver.
package scmddev

import (
	"qwiic-go/drivers/scmd"
	"qwiic-go/i2cbus"
	"qwiic-go/registry"

	"tinygo.org/x/drivers"
)

const (
	Name = "Qwiic Serial Control Motor Driver"
	Type = "scmd"
)

// Addresses are the ten jumper-selectable addresses. 0x5A/0x5B are shared
// with the CCS811 and 0x60 with the VCNL4040.
var Addresses = []i2cbus.Addr{0x58, 0x59, 0x5A, 0x5B, 0x5C, 0x5D, 0x5E, 0x5F, 0x60, 0x61}

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is one serial motor driver bound to a jumper address.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  *scmd.Device
}

// New binds a motor driver at addr; the bus is not touched.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	return &Device{bus: bus, addr: addr, drv: scmd.New(bus, uint16(addr))}, nil
}

func (d *Device) Address() i2cbus.Addr { return d.addr }
func (d *Device) IsConnected() bool    { return i2cbus.Connected(d.bus, d.addr) }
func (d *Device) Driver() *scmd.Device { return d.drv }

// Begin verifies the board and stops both channels.
func (d *Device) Begin() error { return d.drv.Configure() }

func (d *Device) Sample() ([]registry.Reading, error) {
	fid, err := d.drv.Firmware()
	if err != nil {
		return nil, err
	}
	return []registry.Reading{{Kind: "firmware", Value: fid, Unit: "version"}}, nil
}
