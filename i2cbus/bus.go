// Package i2cbus is the I²C transport consumed by the registry and the
// resolution engine. It wraps any tinygo drivers.I2C (periph.io buses and
// TinyGo machine.I2C share the Tx shape) and adds scanning, probing and
// single-byte register helpers.
//
// Bus performs no locking. The underlying transport is the sole arbiter of
// bus access; callers sharing a Bus across goroutines rely on it.
package i2cbus

import (
	"io"

	"qwiic-go/errcode"

	log "github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"
)

// Bus is one opened I²C transport.
type Bus struct {
	i2c    drivers.I2C
	closer io.Closer // optional
	name   string
}

// New adapts an already configured drivers.I2C.
func New(i2c drivers.I2C) *Bus { return &Bus{i2c: i2c} }

// Name is the platform bus name the Bus was opened with ("" for default).
func (b *Bus) Name() string { return b.name }

// Tx satisfies drivers.I2C so a Bus can be handed straight to drivers.
// Failures are wrapped as errcode.IO.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if err := b.i2c.Tx(addr, w, r); err != nil {
		return ioErr("tx", Addr(addr), err)
	}
	return nil
}

// Probe reports whether a device acknowledges a one-byte read at a.
func (b *Bus) Probe(a Addr) bool {
	var buf [1]byte
	return b.i2c.Tx(uint16(a), nil, buf[:]) == nil
}

// Scan probes every usable address and returns the responders in ascending
// order. Results are never cached.
func (b *Bus) Scan() []Addr {
	found := make([]Addr, 0, 8)
	for _, a := range All() {
		if b.Probe(a) {
			found = append(found, a)
		}
	}
	log.WithFields(log.Fields{"bus": b.name, "found": len(found)}).Debug("i2c scan complete")
	return found
}

// ReadReg reads one byte from register reg.
func (b *Bus) ReadReg(a Addr, reg byte) (byte, error) {
	var r [1]byte
	if err := b.i2c.Tx(uint16(a), []byte{reg}, r[:]); err != nil {
		return 0, ioErr("read_reg", a, err)
	}
	return r[0], nil
}

// WriteReg writes one byte to register reg.
func (b *Bus) WriteReg(a Addr, reg, v byte) error {
	if err := b.i2c.Tx(uint16(a), []byte{reg, v}, nil); err != nil {
		return ioErr("write_reg", a, err)
	}
	return nil
}

// ReadBlock fills buf starting at register reg.
func (b *Bus) ReadBlock(a Addr, reg byte, buf []byte) error {
	if err := b.i2c.Tx(uint16(a), []byte{reg}, buf); err != nil {
		return ioErr("read_block", a, err)
	}
	return nil
}

// WriteBlock writes data starting at register reg.
func (b *Bus) WriteBlock(a Addr, reg byte, data []byte) error {
	w := make([]byte, 0, len(data)+1)
	w = append(w, reg)
	w = append(w, data...)
	if err := b.i2c.Tx(uint16(a), w, nil); err != nil {
		return ioErr("write_block", a, err)
	}
	return nil
}

// WriteCommand sends a single command byte.
func (b *Bus) WriteCommand(a Addr, cmd byte) error {
	if err := b.i2c.Tx(uint16(a), []byte{cmd}, nil); err != nil {
		return ioErr("write_command", a, err)
	}
	return nil
}

// IsConnected writes the no-op command 0x00; an acknowledged write means a
// device is present.
func (b *Bus) IsConnected(a Addr) bool {
	if err := b.WriteCommand(a, 0x00); err != nil {
		log.WithField("addr", a.String()).WithError(err).Debug("device not connected")
		return false
	}
	return true
}

// Close releases the platform handle, if any.
func (b *Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Connected is IsConnected for a bare drivers.I2C, used by device instances
// that only hold the driver-facing bus.
func Connected(i2c drivers.I2C, a Addr) bool {
	return i2c.Tx(uint16(a), []byte{0x00}, nil) == nil
}

func ioErr(op string, a Addr, err error) error {
	return &errcode.E{C: errcode.IO, Op: op + " " + a.String(), Msg: err.Error(), Err: err}
}
