package i2cbus

import (
	"strconv"
	"strings"

	"qwiic-go/errcode"
)

// Addr is a 7-bit I²C device address.
type Addr uint16

// Usable address window; 0x00..0x07 and 0x78..0x7F are reserved.
const (
	MinAddr Addr = 0x08
	MaxAddr Addr = 0x77
)

// Valid reports whether a lies in the usable window.
func (a Addr) Valid() bool { return a >= MinAddr && a <= MaxAddr }

func (a Addr) String() string {
	s := strconv.FormatUint(uint64(a), 16)
	if len(s) < 2 {
		s = "0" + s
	}
	return "0x" + strings.ToUpper(s)
}

// All returns every usable address in ascending order.
func All() []Addr {
	out := make([]Addr, 0, int(MaxAddr-MinAddr)+1)
	for a := MinAddr; a <= MaxAddr; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAddr accepts decimal ("96"), hex ("0x60") or binary ("0b1100000").
func ParseAddr(s string) (Addr, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return 0, &errcode.E{C: errcode.InvalidAddress, Op: "parse", Msg: strconv.Quote(s), Err: err}
	}
	a := Addr(n)
	if !a.Valid() {
		return 0, &errcode.E{C: errcode.InvalidAddress, Op: "parse", Msg: a.String() + " outside " + MinAddr.String() + ".." + MaxAddr.String()}
	}
	return a, nil
}

// MarshalText encodes a as its hex form so JSON and YAML output matches the
// table view.
func (a Addr) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Addr) UnmarshalText(b []byte) error {
	v, err := ParseAddr(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
