// Package i2ctest provides an in-memory I²C bus for host-side tests.
//
// Each attached device has a 256-byte register file. A write stores bytes
// starting at the register named by w[0]; a write followed by a read returns
// bytes starting at w[0]; a bare read continues from the last register
// pointer. Transactions to unattached addresses fail with ErrNack.
package i2ctest

import (
	"errors"
	"sync"
)

// ErrNack is returned for addresses with no attached device.
var ErrNack = errors.New("i2ctest: nack")

// Device is one simulated peripheral.
type Device struct {
	Regs [256]byte
	ptr  byte

	// Fail, when set, is returned for every transaction to the device.
	Fail error
	// OnWrite, when set, observes every write after it is applied. It runs
	// with the bus locked and must not call back into the bus.
	OnWrite func(w []byte)
}

// Bus implements tinygo drivers.I2C.
type Bus struct {
	mu      sync.Mutex
	devices map[uint16]*Device
	txs     int
	LastTx  struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

// New returns a bus with devices attached at addrs.
func New(addrs ...uint16) *Bus {
	b := &Bus{devices: make(map[uint16]*Device)}
	for _, a := range addrs {
		b.Attach(a)
	}
	return b
}

// Attach adds (or returns the existing) device at addr.
func (b *Bus) Attach(addr uint16) *Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d, ok := b.devices[addr]; ok {
		return d
	}
	d := &Device{}
	b.devices[addr] = d
	return d
}

// Detach removes the device at addr.
func (b *Bus) Detach(addr uint16) {
	b.mu.Lock()
	delete(b.devices, addr)
	b.mu.Unlock()
}

// Device returns the device attached at addr.
func (b *Bus) Device(addr uint16) (*Device, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.devices[addr]
	return d, ok
}

// Transactions counts every Tx call, acknowledged or not.
func (b *Bus) Transactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txs++
	b.LastTx.Addr = addr
	b.LastTx.W = append([]byte(nil), w...)
	b.LastTx.Rn = len(r)

	d, ok := b.devices[addr]
	if !ok {
		return ErrNack
	}
	if d.Fail != nil {
		return d.Fail
	}
	if len(w) > 0 {
		d.ptr = w[0]
		for i, v := range w[1:] {
			d.Regs[byte(int(w[0])+i)] = v
		}
		if d.OnWrite != nil {
			d.OnWrite(w)
		}
	}
	for i := range r {
		r[i] = d.Regs[byte(int(d.ptr)+i)]
	}
	return nil
}
