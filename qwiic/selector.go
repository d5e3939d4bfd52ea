package qwiic

import (
	"strconv"
	"strings"

	"qwiic-go/errcode"
	"qwiic-go/i2cbus"
)

// Selector identifies which connected driver to instantiate.
type Selector interface {
	Matches(e Entry) bool
	String() string
}

// At selects by bus address.
func At(a i2cbus.Addr) Selector { return addrSelector(a) }

// Named selects by device name or driver type name.
func Named(name string) Selector { return nameSelector(name) }

// Exact selects one (address, name) pair. The name is compared with the
// device name and, as well, with the driver type name, so 0x60:proximity and
// (0x60, "Qwiic Proximity Sensor") select the same entry. A name that is
// one entry's Name and another's Type at the same address resolves as
// ambiguous, never as a silent pick.
func Exact(a i2cbus.Addr, name string) Selector { return pairSelector{addr: a, name: name} }

type addrSelector i2cbus.Addr

func (s addrSelector) Matches(e Entry) bool { return e.Addr == i2cbus.Addr(s) }
func (s addrSelector) String() string       { return i2cbus.Addr(s).String() }

type nameSelector string

func (s nameSelector) Matches(e Entry) bool {
	return e.Name == string(s) || e.Type == string(s)
}
func (s nameSelector) String() string { return strconv.Quote(string(s)) }

type pairSelector struct {
	addr i2cbus.Addr
	name string
}

func (s pairSelector) Matches(e Entry) bool {
	return e.Addr == s.addr && (e.Name == s.name || e.Type == s.name)
}
func (s pairSelector) String() string { return "(" + s.addr.String() + ", " + strconv.Quote(s.name) + ")" }

// ParseSelector reads the textual selector forms:
//
//	0x60 | 96          address
//	0x76:bme280        address and name
//	Qwiic BME280       name or type
//
// Text that does not start with a digit is always a name, so a device name
// can never be mistaken for an address.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &errcode.E{C: errcode.InvalidSelector, Op: "parse", Msg: "empty selector"}
	}
	if s[0] < '0' || s[0] > '9' {
		return Named(s), nil
	}
	addrPart, name, pair := strings.Cut(s, ":")
	a, err := i2cbus.ParseAddr(addrPart)
	if err != nil {
		return nil, &errcode.E{C: errcode.InvalidSelector, Op: "parse", Msg: strconv.Quote(s), Err: err}
	}
	if !pair {
		return At(a), nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &errcode.E{C: errcode.InvalidSelector, Op: "parse", Msg: "missing name after ':' in " + strconv.Quote(s)}
	}
	return Exact(a, name), nil
}
