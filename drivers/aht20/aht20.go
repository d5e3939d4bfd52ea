// Package aht20 drives the AHT20 temperature/humidity sensor.
//
// Measurement is two-phase:
//
//	d.Trigger()            // start a conversion (fast)
//	s, err := d.Collect()  // ErrNotReady while the sensor is busy
//
// Read performs trigger plus bounded polling. Conversions are fixed-point:
// tenths of °C and tenths of %RH.
//
// I2C.Tx MUST perform a write followed by a repeated-start read when both w
// and r are provided.
package aht20

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Address is the only address the part answers on.
const Address = 0x38

const (
	cmdTrigger    = 0xAC
	cmdInitialize = 0xBE
	cmdSoftReset  = 0xBA
	cmdStatus     = 0x71

	statusBusy       = 0x80
	statusCalibrated = 0x08
)

var (
	ErrTimeout  = errors.New("aht20: timeout")
	ErrNotReady = errors.New("aht20: not ready")
)

// Config tunes Read. Zero fields take defaults.
type Config struct {
	PollInterval   time.Duration // default 15 ms
	CollectTimeout time.Duration // default 250 ms
}

// Device is one AHT20 on a bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	cfg  Config
	buf  [7]byte
}

// New binds a device to bus at addr without touching the bus.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{
		bus:  bus,
		addr: addr,
		cfg:  Config{PollInterval: 15 * time.Millisecond, CollectTimeout: 250 * time.Millisecond},
	}
}

func (d *Device) Address() uint16 { return d.addr }

// Configure applies cfg and calibrates the sensor if it reports uncalibrated.
func (d *Device) Configure(cfg Config) error {
	if cfg.PollInterval > 0 {
		d.cfg.PollInterval = cfg.PollInterval
	}
	if cfg.CollectTimeout > 0 {
		d.cfg.CollectTimeout = cfg.CollectTimeout
	}
	st, err := d.Status()
	if err != nil {
		return err
	}
	if st&statusCalibrated != 0 {
		return nil
	}
	if err := d.bus.Tx(d.addr, []byte{cmdInitialize, 0x08, 0x00}, nil); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

// Reset issues a soft reset. Allow ~20 ms before the next command.
func (d *Device) Reset() error {
	return d.bus.Tx(d.addr, []byte{cmdSoftReset}, nil)
}

// Status returns the status byte.
func (d *Device) Status() (byte, error) {
	var r [1]byte
	if err := d.bus.Tx(d.addr, []byte{cmdStatus}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// Trigger starts a conversion; it does not block. Conversion takes ~80 ms.
func (d *Device) Trigger() error {
	return d.bus.Tx(d.addr, []byte{cmdTrigger, 0x33, 0x00}, nil)
}

// Collect fetches a finished conversion, or ErrNotReady while busy.
func (d *Device) Collect() (Sample, error) {
	data := d.buf[:]
	if err := d.bus.Tx(d.addr, nil, data); err != nil {
		return Sample{}, err
	}
	if data[0]&statusCalibrated == 0 || data[0]&statusBusy != 0 {
		return Sample{}, ErrNotReady
	}
	return Sample{
		RawHumidity: uint32(data[1])<<12 | uint32(data[2])<<4 | uint32(data[3])>>4,
		RawTemp:     uint32(data[3]&0x0F)<<16 | uint32(data[4])<<8 | uint32(data[5]),
	}, nil
}

// Read triggers and polls Collect until a sample is ready or the collect
// timeout elapses.
func (d *Device) Read() (Sample, error) {
	if err := d.Trigger(); err != nil {
		return Sample{}, err
	}
	deadline := time.Now().Add(d.cfg.CollectTimeout)
	for {
		s, err := d.Collect()
		if !errors.Is(err, ErrNotReady) {
			return s, err
		}
		if time.Now().After(deadline) {
			return Sample{}, ErrTimeout
		}
		time.Sleep(d.cfg.PollInterval)
	}
}

// Sample holds one raw 20-bit humidity/temperature pair.
type Sample struct {
	RawHumidity uint32
	RawTemp     uint32
}

// DeciRelHumidity returns tenths of %RH.
func (s Sample) DeciRelHumidity() int32 {
	return int32(int64(s.RawHumidity) * 1000 / 0x100000)
}

// DeciCelsius returns tenths of °C.
func (s Sample) DeciCelsius() int32 {
	return int32(int64(s.RawTemp)*2000/0x100000) - 500
}
