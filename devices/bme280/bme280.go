// Package bme280dev registers the Qwiic BME280 environmental sensor on top
// of the TinyGo bme280 driver.
package bme280dev

import (
	"errors"

	"qwiic-go/i2cbus"
	"qwiic-go/registry"
	"qwiic-go/x/mathx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/bme280"
)

const (
	Name = "Qwiic BME280"
	Type = "bme280"
)

var Addresses = []i2cbus.Addr{0x77, 0x76}

// ErrNotFound is returned by Begin when the chip ID does not match.
var ErrNotFound = errors.New("bme280: chip id mismatch")

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is one BME280 bound to one of its strap addresses.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  bme280.Device
}

// New binds a BME280 at addr. Calibration is loaded by Begin.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	d := &Device{bus: bus, addr: addr, drv: bme280.New(bus)}
	d.drv.Address = uint16(addr)
	return d, nil
}

func (d *Device) Address() i2cbus.Addr { return d.addr }
func (d *Device) IsConnected() bool    { return i2cbus.Connected(d.bus, d.addr) }

// Begin checks the chip ID and loads calibration.
func (d *Device) Begin() error {
	if !d.drv.Connected() {
		return ErrNotFound
	}
	d.drv.Configure()
	return nil
}

func (d *Device) Sample() ([]registry.Reading, error) {
	tmc, err := d.drv.ReadTemperature() // milli-°C
	if err != nil {
		return nil, err
	}
	rhx100, err := d.drv.ReadHumidity() // hundredths of %RH
	if err != nil {
		return nil, err
	}
	mpa, err := d.drv.ReadPressure() // milli-Pa
	if err != nil {
		return nil, err
	}
	return []registry.Reading{
		{Kind: "temperature", Value: int16(mathx.Clamp(tmc/100, -32768, 32767)), Unit: "deci_c"},
		{Kind: "humidity", Value: uint16(mathx.Clamp(rhx100, 0, 10000)), Unit: "rh_x100"},
		{Kind: "pressure", Value: mpa / 1000, Unit: "pa"},
	}, nil
}
