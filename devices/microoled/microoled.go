// Package microoleddev registers the Qwiic Micro OLED, a 64x48 SSD1306
// panel wired to controller columns 32..95.
package microoleddev

import (
	"qwiic-go/drivers/ssd1306"
	"qwiic-go/i2cbus"
	"qwiic-go/registry"

	"tinygo.org/x/drivers"
)

const (
	Name = "Qwiic Micro OLED"
	Type = "microoled"

	Width  = 64
	Height = 48
)

var Addresses = []i2cbus.Addr{ssd1306.Address, ssd1306.AddressAlt}

func init() {
	registry.MustRegister(registry.Descriptor{Name: Name, Type: Type, Addresses: Addresses, New: New})
}

// Device is one Micro OLED bound to an address.
type Device struct {
	bus  drivers.I2C
	addr i2cbus.Addr
	drv  *ssd1306.Device
}

// New binds a display at addr; the bus is not touched.
func New(bus drivers.I2C, addr i2cbus.Addr) (registry.Device, error) {
	if err := registry.CheckAddress(Type, Addresses, addr); err != nil {
		return nil, err
	}
	return &Device{bus: bus, addr: addr, drv: ssd1306.New(bus, uint16(addr))}, nil
}

func (d *Device) Address() i2cbus.Addr    { return d.addr }
func (d *Device) IsConnected() bool       { return i2cbus.Connected(d.bus, d.addr) }
func (d *Device) Driver() *ssd1306.Device { return d.drv }

// Begin runs the controller init sequence and blanks the panel.
func (d *Device) Begin() error {
	if err := d.drv.Configure(ssd1306.Config{Width: Width, Height: Height, ColumnOffset: 32}); err != nil {
		return err
	}
	d.drv.Clear()
	return d.drv.Display()
}

// Set lights or clears one pixel in the frame buffer.
func (d *Device) Set(x, y int16, on bool) { d.drv.SetPixel(x, y, on) }

// Show pushes the frame buffer to the panel.
func (d *Device) Show() error { return d.drv.Display() }
