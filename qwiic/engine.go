// Package qwiic resolves live I²C bus addresses to registered driver types
// and instantiates drivers on request.
//
// A typical session:
//
//	eng := qwiic.Default()
//	for _, e := range eng.ListConnected() {
//		fmt.Println(e)
//	}
//	dev, err := eng.Create(qwiic.Exact(0x60, "proximity"))
//
// Every Create runs a fresh scan. There are no internal retries: a stale
// scan is never re-run behind the caller's back.
package qwiic

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"qwiic-go/errcode"
	"qwiic-go/i2cbus"
	"qwiic-go/registry"

	log "github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"
)

// Transport is what the engine needs from the bus: scanning, and a Tx path
// handed to driver constructors. *i2cbus.Bus satisfies it.
type Transport interface {
	drivers.I2C
	Scan() []i2cbus.Addr
	IsConnected(a i2cbus.Addr) bool
}

// Entry is one (address, driver type) match.
type Entry struct {
	Addr i2cbus.Addr `json:"addr" yaml:"addr"`
	Name string      `json:"name" yaml:"name"`
	Type string      `json:"type" yaml:"type"`

	desc *registry.Descriptor
}

func (e Entry) String() string {
	return fmt.Sprintf("(%s, %q, %s)", e.Addr, e.Name, e.Type)
}

// Engine combines a registry with a transport. A nil transport is the
// degraded "no platform bus" state: every scan is empty.
type Engine struct {
	reg *registry.Registry
	bus Transport
}

// New returns an engine over reg and bus. bus may be nil.
func New(reg *registry.Registry, bus Transport) *Engine {
	return &Engine{reg: reg, bus: bus}
}

var (
	defOnce   sync.Once
	defEngine *Engine
)

// Default returns the process engine over registry.Default and
// i2cbus.Default, built on first use.
func Default() *Engine {
	defOnce.Do(func() {
		b, err := i2cbus.Default()
		if err != nil {
			log.WithError(err).Warn("no I2C transport available; scans will be empty")
			defEngine = New(registry.Default(), nil)
			return
		}
		defEngine = New(registry.Default(), b)
	})
	return defEngine
}

// Registry returns the registry the engine resolves against.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Scan returns the addresses currently responding, ascending.
func (e *Engine) Scan() []i2cbus.Addr {
	if e.bus == nil {
		return []i2cbus.Addr{}
	}
	return e.bus.Scan()
}

// IsConnected reports whether a device acknowledges at a.
func (e *Engine) IsConnected(a i2cbus.Addr) bool {
	if e.bus == nil {
		return false
	}
	return e.bus.IsConnected(a)
}

// ListConnected scans the bus and returns one Entry per (live address,
// matching driver type), in scan order then registration order.
func (e *Engine) ListConnected() []Entry {
	return e.match(e.Scan())
}

// ListAvailable reports what the registry would match at addrs without
// touching the bus. With no addrs, the whole usable range is used.
// Addresses are visited ascending, each once.
func (e *Engine) ListAvailable(addrs ...i2cbus.Addr) []Entry {
	if len(addrs) == 0 {
		return e.match(i2cbus.All())
	}
	uniq := append([]i2cbus.Addr(nil), addrs...)
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	n := 0
	for i, a := range uniq {
		if i == 0 || a != uniq[n-1] {
			uniq[n] = a
			n++
		}
	}
	return e.match(uniq[:n])
}

func (e *Engine) match(addrs []i2cbus.Addr) []Entry {
	out := []Entry{}
	for _, a := range addrs {
		for _, d := range e.reg.Lookup(a) {
			out = append(out, Entry{Addr: a, Name: d.Name, Type: d.Type, desc: d})
		}
	}
	return out
}

// Create scans, filters the connected entries by sel and instantiates the
// single match. It fails with *NoMatchingDeviceError on zero matches and
// *AmbiguousSelectorError on several. Constructor errors are returned as-is.
func (e *Engine) Create(sel Selector) (registry.Device, error) {
	if sel == nil {
		return nil, &errcode.E{C: errcode.InvalidSelector, Op: "create", Msg: "nil selector"}
	}
	connected := e.ListConnected()

	var matches []Entry
	for _, c := range connected {
		if sel.Matches(c) {
			matches = append(matches, c)
		}
	}
	logger := log.WithFields(log.Fields{"selector": sel.String(), "connected": len(connected), "matches": len(matches)})

	switch len(matches) {
	case 0:
		logger.Debug("selector matched nothing")
		return nil, &NoMatchingDeviceError{Selector: sel}
	case 1:
		m := matches[0]
		logger.WithField("type", m.Type).Debug("selector resolved")
		return m.desc.New(e.bus, m.Addr)
	default:
		logger.Debug("selector ambiguous")
		return nil, &AmbiguousSelectorError{Selector: sel, Candidates: matches}
	}
}

// CreateConnected instantiates every connected device whose address has a
// single candidate type. Ambiguous addresses and constructor failures are
// not guessed around; they are joined into the returned error alongside the
// devices that were built.
func (e *Engine) CreateConnected() ([]registry.Device, error) {
	connected := e.ListConnected()

	var (
		devs []registry.Device
		errs []error
	)
	for i := 0; i < len(connected); {
		j := i + 1
		for j < len(connected) && connected[j].Addr == connected[i].Addr {
			j++
		}
		group := connected[i:j]
		i = j

		if len(group) > 1 {
			errs = append(errs, &AmbiguousSelectorError{Selector: At(group[0].Addr), Candidates: group})
			continue
		}
		m := group[0]
		d, err := m.desc.New(e.bus, m.Addr)
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", m, err))
			continue
		}
		devs = append(devs, d)
	}
	return devs, errors.Join(errs...)
}
