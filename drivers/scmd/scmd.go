// Package scmd drives the Serial Controlled Motor Driver (two brushed DC
// motor channels) over I²C.
package scmd

import (
	"errors"

	"qwiic-go/x/mathx"

	"tinygo.org/x/drivers"
)

// Address is the factory default; jumpers select 0x58..0x61.
const Address = 0x5D

const (
	regFID          = 0x00
	regID           = 0x01
	regMotorAInvert = 0x12
	regMotorBInvert = 0x13
	regMotorADrive  = 0x20
	regMotorBDrive  = 0x21
	regDriverEnable = 0x70
	regStatus1      = 0x77

	idWord         = 0xA9
	statusEnumDone = 0x01
	driveStop      = 0x80
)

var (
	ErrWrongID  = errors.New("scmd: unexpected id")
	ErrNotReady = errors.New("scmd: enumeration not complete")
	ErrBadMotor = errors.New("scmd: motor must be 0 or 1")
)

// Device is one SCMD on a bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	w    [2]byte
	r    [1]byte
}

// New binds a device at addr without touching the bus.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{bus: bus, addr: addr}
}

// Configure checks the ID and that the board finished enumeration, then
// stops both channels. Outputs stay disabled until Enable.
func (d *Device) Configure() error {
	id, err := d.readReg(regID)
	if err != nil {
		return err
	}
	if id != idWord {
		return ErrWrongID
	}
	st, err := d.readReg(regStatus1)
	if err != nil {
		return err
	}
	if st&statusEnumDone == 0 {
		return ErrNotReady
	}
	if err := d.writeReg(regMotorADrive, driveStop); err != nil {
		return err
	}
	return d.writeReg(regMotorBDrive, driveStop)
}

// Firmware returns the firmware version byte.
func (d *Device) Firmware() (byte, error) { return d.readReg(regFID) }

// Enable turns the output drivers on or off.
func (d *Device) Enable(on bool) error {
	var v byte
	if on {
		v = 1
	}
	return d.writeReg(regDriverEnable, v)
}

// Invert flips the direction sense of one motor channel.
func (d *Device) Invert(motor int, on bool) error {
	reg := byte(regMotorAInvert)
	switch motor {
	case 0:
	case 1:
		reg = regMotorBInvert
	default:
		return ErrBadMotor
	}
	var v byte
	if on {
		v = 1
	}
	return d.writeReg(reg, v)
}

// Drive sets motor (0 or 1) to speed in [-255, 255]; 0 stops. Values
// outside the range are clamped.
func (d *Device) Drive(motor int, speed int) error {
	if motor != 0 && motor != 1 {
		return ErrBadMotor
	}
	v := DriveValue(speed)
	return d.writeReg(byte(regMotorADrive+motor), v)
}

// DriveValue maps a signed speed onto the register's 0x80-centred scale.
func DriveValue(speed int) byte {
	speed = mathx.Clamp(speed, -255, 255)
	return byte(mathx.Clamp(driveStop+speed/2, 0, 255))
}

// Stop halts both channels.
func (d *Device) Stop() error {
	if err := d.Drive(0, 0); err != nil {
		return err
	}
	return d.Drive(1, 0)
}

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, v byte) error {
	d.w[0], d.w[1] = reg, v
	return d.bus.Tx(d.addr, d.w[:2], nil)
}
