// Package vcnl4040 drives the VCNL4040 proximity and ambient light sensor.
//
// All registers are 16-bit words addressed by a command code, transferred
// low byte first.
package vcnl4040

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Address is fixed in silicon.
const Address = 0x60

const (
	regALSConf  = 0x00 // L: ALS_CONF
	regPSConf12 = 0x03 // L: PS_CONF1, H: PS_CONF2
	regPSConf3  = 0x04 // L: PS_CONF3, H: PS_MS
	regPSData   = 0x08
	regALSData  = 0x09
	regWhite    = 0x0A
	regID       = 0x0C

	deviceID = 0x0186

	alsShutdown = 1 << 0 // ALS_CONF
	psShutdown  = 1 << 0 // PS_CONF1
	psHD        = 1 << 3 // PS_CONF2: 16-bit proximity output
	whiteDis    = 1 << 7 // PS_MS
)

var ErrWrongID = errors.New("vcnl4040: unexpected device id")

// Device is one VCNL4040 on a bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	w    [3]byte
	r    [2]byte
}

// New binds a device to bus without touching it.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Configure verifies the ID and powers on proximity (16-bit), ambient light
// and the white channel.
func (d *Device) Configure() error {
	id, err := d.ID()
	if err != nil {
		return err
	}
	if id != deviceID {
		return ErrWrongID
	}
	if err := d.update(regPSConf12, psShutdown|psHD<<8, psHD<<8); err != nil {
		return err
	}
	if err := d.update(regALSConf, alsShutdown, 0); err != nil {
		return err
	}
	return d.update(regPSConf3, whiteDis<<8, 0)
}

// ID returns the device ID word (0x0186).
func (d *Device) ID() (uint16, error) { return d.readWord(regID) }

// Proximity returns the raw proximity count; larger is closer.
func (d *Device) Proximity() (uint16, error) { return d.readWord(regPSData) }

// Ambient returns the raw ambient light count.
func (d *Device) Ambient() (uint16, error) { return d.readWord(regALSData) }

// White returns the raw white channel count.
func (d *Device) White() (uint16, error) { return d.readWord(regWhite) }

// update clears mask bits of a register word, then sets val bits.
func (d *Device) update(reg byte, mask, val uint16) error {
	cur, err := d.readWord(reg)
	if err != nil {
		return err
	}
	return d.writeWord(reg, cur&^mask|val)
}

func (d *Device) readWord(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:]); err != nil {
		return 0, err
	}
	return uint16(d.r[0]) | uint16(d.r[1])<<8, nil
}

func (d *Device) writeWord(reg byte, v uint16) error {
	d.w[0] = reg
	d.w[1] = byte(v)
	d.w[2] = byte(v >> 8)
	return d.bus.Tx(d.addr, d.w[:3], nil)
}
