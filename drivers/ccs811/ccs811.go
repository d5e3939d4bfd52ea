// Package ccs811 drives the CCS811 air quality sensor (eCO2 and TVOC).
package ccs811

import (
	"errors"
	"strconv"
	"time"

	"tinygo.org/x/drivers"
)

const (
	Address    = 0x5B
	AddressAlt = 0x5A
)

const (
	regStatus    = 0x00
	regMeasMode  = 0x01
	regAlgResult = 0x02
	regHWID      = 0x20
	regErrorID   = 0xE0
	regAppStart  = 0xF4
	regSWReset   = 0xFF

	hwID = 0x81

	statusError     = 1 << 0
	statusDataReady = 1 << 3
	statusAppValid  = 1 << 4
	statusFWMode    = 1 << 7
)

// DriveMode selects the measurement interval.
type DriveMode byte

const (
	ModeIdle  DriveMode = 0
	Mode1s    DriveMode = 1
	Mode10s   DriveMode = 2
	Mode60s   DriveMode = 3
	Mode250ms DriveMode = 4
)

var (
	ErrWrongID    = errors.New("ccs811: unexpected hardware id")
	ErrNoApp      = errors.New("ccs811: no valid application firmware")
	ErrNotRunning = errors.New("ccs811: application did not start")
	ErrNotReady   = errors.New("ccs811: no new data")
)

// SensorError carries the ERROR_ID register when STATUS.ERROR is set.
type SensorError struct{ ID byte }

func (e SensorError) Error() string {
	return "ccs811: sensor error 0x" + strconv.FormatUint(uint64(e.ID), 16)
}

// Device is one CCS811 on a bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	buf  [8]byte
}

// New binds a device at addr without touching the bus.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{bus: bus, addr: addr}
}

// Configure checks the hardware ID, starts the application firmware and
// selects drive mode m.
func (d *Device) Configure(m DriveMode) error {
	id, err := d.readReg(regHWID)
	if err != nil {
		return err
	}
	if id != hwID {
		return ErrWrongID
	}
	st, err := d.Status()
	if err != nil {
		return err
	}
	if st&statusAppValid == 0 {
		return ErrNoApp
	}
	if err := d.bus.Tx(d.addr, []byte{regAppStart}, nil); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if st, err = d.Status(); err != nil {
		return err
	}
	if st&statusFWMode == 0 {
		return ErrNotRunning
	}
	return d.bus.Tx(d.addr, []byte{regMeasMode, byte(m&0x07) << 4}, nil)
}

// Reset issues the software reset sequence.
func (d *Device) Reset() error {
	return d.bus.Tx(d.addr, []byte{regSWReset, 0x11, 0xE5, 0x72, 0x8A}, nil)
}

// Status returns the STATUS register, turning STATUS.ERROR into a
// SensorError.
func (d *Device) Status() (byte, error) {
	st, err := d.readReg(regStatus)
	if err != nil {
		return 0, err
	}
	if st&statusError != 0 {
		id, err := d.readReg(regErrorID)
		if err != nil {
			return st, err
		}
		return st, SensorError{ID: id}
	}
	return st, nil
}

// Read returns eCO2 (ppm) and TVOC (ppb), or ErrNotReady when no new sample
// is waiting.
func (d *Device) Read() (eco2, tvoc uint16, err error) {
	st, err := d.Status()
	if err != nil {
		return 0, 0, err
	}
	if st&statusDataReady == 0 {
		return 0, 0, ErrNotReady
	}
	r := d.buf[:4]
	if err := d.bus.Tx(d.addr, []byte{regAlgResult}, r); err != nil {
		return 0, 0, err
	}
	return uint16(r[0])<<8 | uint16(r[1]), uint16(r[2])<<8 | uint16(r[3]), nil
}

func (d *Device) readReg(reg byte) (byte, error) {
	r := d.buf[:1]
	if err := d.bus.Tx(d.addr, []byte{reg}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}
