// Package proximitydev registers the Qwiic Proximity Sensor (VCNL4040).
package proximitydev

import (
	"qwiic-go/drivers/vcnl4040"
	"qwiic-go/i2cbus"
	"qwiic-go/registry"

	"tinygo.org/x/drivers"
)

const (
	Name = "Qwiic Proximity Sensor"
	Type = "proximity"
)

var Addresses = []i2cbus.Addr{vcnl4040.Address}

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is one VCNL4040 proximity sensor.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  *vcnl4040.Device
}

// New binds a proximity sensor at addr; the bus is not touched.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	return &Device{bus: bus, addr: addr, drv: vcnl4040.New(bus)}, nil
}

func (d *Device) Address() i2cbus.Addr       { return d.addr }
func (d *Device) IsConnected() bool          { return i2cbus.Connected(d.bus, d.addr) }
func (d *Device) Driver() *vcnl4040.Device   { return d.drv }
func (d *Device) Begin() error               { return d.drv.Configure() }
func (d *Device) Proximity() (uint16, error) { return d.drv.Proximity() }

func (d *Device) Sample() ([]registry.Reading, error) {
	prox, err := d.drv.Proximity()
	if err != nil {
		return nil, err
	}
	amb, err := d.drv.Ambient()
	if err != nil {
		return nil, err
	}
	return []registry.Reading{
		{Kind: "proximity", Value: prox, Unit: "counts"},
		{Kind: "ambient_light", Value: amb, Unit: "counts"},
	}, nil
}
