// Package ssd1306 drives an SSD1306 OLED controller over I²C with a local
// monochrome frame buffer.
//
// Every transfer starts with a control byte: 0x00 for a command stream,
// 0x40 for display RAM data.
package ssd1306

import (
	"errors"

	"tinygo.org/x/drivers"
)

const (
	Address    = 0x3D
	AddressAlt = 0x3C
)

const (
	ctrlCommand = 0x00
	ctrlData    = 0x40

	cmdDisplayOff     = 0xAE
	cmdDisplayOn      = 0xAF
	cmdClockDiv       = 0xD5
	cmdMultiplex      = 0xA8
	cmdDisplayOffset  = 0xD3
	cmdStartLine      = 0x40
	cmdChargePump     = 0x8D
	cmdMemoryMode     = 0x20
	cmdSegRemap       = 0xA1
	cmdCOMScanDec     = 0xC8
	cmdCOMPins        = 0xDA
	cmdContrast       = 0x81
	cmdPrecharge      = 0xD9
	cmdVCOMDetect     = 0xDB
	cmdDisplayResume  = 0xA4
	cmdNormalDisplay  = 0xA6
	cmdInvertDisplay  = 0xA7
	cmdColumnAddr     = 0x21
	cmdPageAddr       = 0x22
	chunk             = 16 // data bytes per transfer
	controllerColumns = 128
)

var ErrBadSize = errors.New("ssd1306: width/height out of range")

// Config describes the panel. Zero fields take 128x64 with no offset.
type Config struct {
	Width  int16
	Height int16 // multiple of 8
	// ColumnOffset is the first controller column wired to the panel.
	ColumnOffset uint8
}

// Device is one SSD1306 on a bus.
type Device struct {
	bus    drivers.I2C
	addr   uint16
	width  int16
	height int16
	colOff uint8
	buf    []byte // one bit per pixel, page-major
	tx     [chunk + 1]byte
}

// New binds a device at addr without touching the bus.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{bus: bus, addr: addr}
}

// Configure sizes the frame buffer and runs the power-on command sequence.
func (d *Device) Configure(cfg Config) error {
	if cfg.Width == 0 {
		cfg.Width = 128
	}
	if cfg.Height == 0 {
		cfg.Height = 64
	}
	if cfg.Width < 0 || cfg.Height <= 0 || cfg.Height > 64 || cfg.Height%8 != 0 ||
		int(cfg.ColumnOffset)+int(cfg.Width) > controllerColumns {
		return ErrBadSize
	}
	d.width, d.height, d.colOff = cfg.Width, cfg.Height, cfg.ColumnOffset
	d.buf = make([]byte, int(d.width)*int(d.height)/8)

	comPins := byte(0x12)
	if d.height == 32 {
		comPins = 0x02
	}
	return d.Command(
		cmdDisplayOff,
		cmdClockDiv, 0x80,
		cmdMultiplex, byte(d.height-1),
		cmdDisplayOffset, 0x00,
		cmdStartLine|0x00,
		cmdChargePump, 0x14,
		cmdMemoryMode, 0x00, // horizontal addressing
		cmdSegRemap,
		cmdCOMScanDec,
		cmdCOMPins, comPins,
		cmdContrast, 0x8F,
		cmdPrecharge, 0xF1,
		cmdVCOMDetect, 0x40,
		cmdDisplayResume,
		cmdNormalDisplay,
		cmdDisplayOn,
	)
}

// Command sends one command stream.
func (d *Device) Command(cmds ...byte) error {
	w := make([]byte, 0, len(cmds)+1)
	w = append(w, ctrlCommand)
	return d.bus.Tx(d.addr, append(w, cmds...), nil)
}

// Size returns the configured panel size.
func (d *Device) Size() (w, h int16) { return d.width, d.height }

// Invert toggles inverse video.
func (d *Device) Invert(on bool) error {
	if on {
		return d.Command(cmdInvertDisplay)
	}
	return d.Command(cmdNormalDisplay)
}

// Clear blanks the frame buffer; call Display to push it.
func (d *Device) Clear() {
	for i := range d.buf {
		d.buf[i] = 0
	}
}

// SetPixel sets one pixel. Coordinates outside the panel are ignored.
func (d *Device) SetPixel(x, y int16, on bool) {
	i, bit, ok := d.index(x, y)
	if !ok {
		return
	}
	if on {
		d.buf[i] |= bit
	} else {
		d.buf[i] &^= bit
	}
}

// Pixel reports one pixel of the frame buffer.
func (d *Device) Pixel(x, y int16) bool {
	i, bit, ok := d.index(x, y)
	return ok && d.buf[i]&bit != 0
}

func (d *Device) index(x, y int16) (int, byte, bool) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return 0, 0, false
	}
	return int(y/8)*int(d.width) + int(x), 1 << uint(y%8), true
}

// Display writes the whole frame buffer to display RAM.
func (d *Device) Display() error {
	if err := d.Command(
		cmdColumnAddr, d.colOff, d.colOff+byte(d.width-1),
		cmdPageAddr, 0, byte(d.height/8-1),
	); err != nil {
		return err
	}
	d.tx[0] = ctrlData
	for off := 0; off < len(d.buf); off += chunk {
		n := copy(d.tx[1:], d.buf[off:])
		if err := d.bus.Tx(d.addr, d.tx[:n+1], nil); err != nil {
			return err
		}
	}
	return nil
}
