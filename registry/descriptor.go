package registry

import (
	"qwiic-go/errcode"
	"qwiic-go/i2cbus"

	"tinygo.org/x/drivers"
)

// Device is a driver instance bound to exactly one bus address for its
// lifetime. The caller that created it owns it.
type Device interface {
	Address() i2cbus.Addr
	IsConnected() bool
}

// Constructor builds a Device on bus at addr. It should not assume the
// device is present; construction failures are returned to the caller
// unchanged by the resolution engine.
type Constructor func(bus drivers.I2C, addr i2cbus.Addr) (Device, error)

// Descriptor is the static metadata of one driver type.
type Descriptor struct {
	Name      string        // human readable, e.g. "Qwiic Proximity Sensor"
	Type      string        // unique driver type name, e.g. "proximity"
	Addresses []i2cbus.Addr // candidate addresses, non-empty
	New       Constructor
}

// Has reports whether a is one of d's candidate addresses.
func (d *Descriptor) Has(a i2cbus.Addr) bool {
	for _, x := range d.Addresses {
		if x == a {
			return true
		}
	}
	return false
}

// CheckAddress is the constructor-side guard: a must be one of addrs.
func CheckAddress(typ string, addrs []i2cbus.Addr, a i2cbus.Addr) error {
	for _, x := range addrs {
		if x == a {
			return nil
		}
	}
	return &errcode.E{C: errcode.InvalidAddress, Op: "new " + typ, Msg: a.String() + " is not a " + typ + " address"}
}

// Reading is one datum produced by a Sampler.
type Reading struct {
	Kind  string `json:"kind" yaml:"kind"`   // e.g. "temperature", "humidity", "proximity"
	Value any    `json:"value" yaml:"value"` // fixed-point or integer value in Unit
	Unit  string `json:"unit" yaml:"unit"`   // e.g. "deci_c", "rh_x100", "counts"
}

// Sampler is an optional Device capability for drivers that can measure.
type Sampler interface {
	Sample() ([]Reading, error)
}

// Initializer is an optional Device capability for drivers that need a
// bus-touching setup step after construction.
type Initializer interface {
	Begin() error
}
