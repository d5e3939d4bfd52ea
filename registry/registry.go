// Package registry maps I²C addresses to the driver types that may live
// there. Driver packages register descriptors from init(); the address table
// is populated once, on first use, and never cleared.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"qwiic-go/errcode"
	"qwiic-go/i2cbus"

	log "github.com/sirupsen/logrus"
)

// Policy controls how overlapping addresses are handled at registration.
type Policy uint8

const (
	// PolicyShared records overlaps for later disambiguation.
	PolicyShared Policy = iota
	// PolicyStrict rejects a descriptor claiming an address already claimed.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "shared"
}

// Slot is one address and its candidates in registration order.
type Slot struct {
	Addr        i2cbus.Addr
	Descriptors []*Descriptor
}

// Registry holds registered driver types and the address table built from
// them. The zero value is not usable; call New.
type Registry struct {
	policy Policy

	mu       sync.Mutex
	types    []*Descriptor
	byType   map[string]*Descriptor
	claimed  map[i2cbus.Addr]string // strict policy only
	rejected []error                // refused by MustRegister
	sealed   bool

	once    sync.Once
	slots   []Slot // sorted by Addr
	index   map[i2cbus.Addr]int
	loaded  []*Descriptor
	skipped []error
}

// New returns an empty registry.
func New(p Policy) *Registry {
	return &Registry{
		policy:  p,
		byType:  map[string]*Descriptor{},
		claimed: map[i2cbus.Addr]string{},
	}
}

func (r *Registry) Policy() Policy { return r.policy }

// Register adds a driver type. Descriptors are copied; the caller's slice is
// not retained. Metadata is validated at population, not here.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return &errcode.E{C: errcode.RegistrySealed, Op: "register", Msg: d.Type}
	}
	if d.Type != "" {
		if _, dup := r.byType[d.Type]; dup {
			return &errcode.E{C: errcode.DuplicateType, Op: "register", Msg: d.Type}
		}
	}
	if r.policy == PolicyStrict {
		for _, a := range d.Addresses {
			if owner, taken := r.claimed[a]; taken {
				return &errcode.E{
					C:   errcode.DuplicateAddress,
					Op:  "register",
					Msg: fmt.Sprintf("%s claims %s already owned by %s", d.Type, a, owner),
				}
			}
		}
		for _, a := range d.Addresses {
			r.claimed[a] = d.Type
		}
	}

	cp := d
	cp.Addresses = append([]i2cbus.Addr(nil), d.Addresses...)
	r.types = append(r.types, &cp)
	if d.Type != "" {
		r.byType[d.Type] = &cp
	}
	return nil
}

// MustRegister is Register for init() use. Registering into a sealed
// registry panics; any other rejection (duplicate type, strict-policy
// overlap) skips the type with a DriverLoad diagnostic reported by Skipped.
func (r *Registry) MustRegister(d Descriptor) {
	err := r.Register(d)
	if err == nil {
		return
	}
	if errors.Is(err, errcode.RegistrySealed) {
		panic(err)
	}
	log.WithField("type", d.Type).WithError(err).Warn("skipping driver type")
	r.mu.Lock()
	r.rejected = append(r.rejected, &errcode.E{C: errcode.DriverLoad, Op: "load " + d.Type, Msg: err.Error(), Err: err})
	r.mu.Unlock()
}

// populate validates every registered type and builds the address table.
// Runs at most once; later registrations are refused.
func (r *Registry) populate() {
	r.once.Do(func() {
		r.mu.Lock()
		r.sealed = true
		types := r.types
		r.skipped = append(r.skipped, r.rejected...)
		r.mu.Unlock()

		byAddr := map[i2cbus.Addr][]*Descriptor{}
		for _, d := range types {
			if err := validate(d); err != nil {
				log.WithField("type", d.Type).WithError(err).Warn("skipping driver type")
				r.skipped = append(r.skipped, err)
				continue
			}
			r.loaded = append(r.loaded, d)
			seen := map[i2cbus.Addr]bool{}
			for _, a := range d.Addresses {
				if seen[a] {
					continue
				}
				seen[a] = true
				byAddr[a] = append(byAddr[a], d)
			}
		}

		addrs := make([]i2cbus.Addr, 0, len(byAddr))
		for a := range byAddr {
			addrs = append(addrs, a)
		}
		sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

		r.slots = make([]Slot, len(addrs))
		r.index = make(map[i2cbus.Addr]int, len(addrs))
		for i, a := range addrs {
			r.slots[i] = Slot{Addr: a, Descriptors: byAddr[a]}
			r.index[a] = i
		}
		log.WithFields(log.Fields{
			"types":     len(r.loaded),
			"addresses": len(r.slots),
			"skipped":   len(r.skipped),
		}).Debug("driver registry populated")
	})
}

func validate(d *Descriptor) error {
	fail := func(msg string) error {
		return &errcode.E{C: errcode.DriverLoad, Op: "load " + d.Type, Msg: msg}
	}
	switch {
	case d.Type == "":
		return fail("missing type name")
	case d.Name == "":
		return fail("missing device name")
	case len(d.Addresses) == 0:
		return fail("no candidate addresses")
	case d.New == nil:
		return fail("missing constructor")
	}
	for _, a := range d.Addresses {
		if !a.Valid() {
			return fail("address " + a.String() + " outside usable range")
		}
	}
	return nil
}

// Available returns the whole address table sorted by address. The first
// call populates the registry. Slots and descriptor pointers are shared with
// the registry and must not be modified.
func (r *Registry) Available() []Slot {
	r.populate()
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Lookup returns the candidates at a in registration order.
func (r *Registry) Lookup(a i2cbus.Addr) []*Descriptor {
	r.populate()
	i, ok := r.index[a]
	if !ok {
		return nil
	}
	return append([]*Descriptor(nil), r.slots[i].Descriptors...)
}

// Types returns every successfully loaded driver type in registration order.
func (r *Registry) Types() []*Descriptor {
	r.populate()
	return append([]*Descriptor(nil), r.loaded...)
}

// Skipped returns the driver-load diagnostics recorded during population.
func (r *Registry) Skipped() []error {
	r.populate()
	return append([]error(nil), r.skipped...)
}

// ---- Process-wide registry ----

var std = New(PolicyShared)

// Default is the registry driver packages register into from init().
func Default() *Registry { return std }

// Register adds d to the default registry.
func Register(d Descriptor) error { return std.Register(d) }

// MustRegister adds d to the default registry and panics on error.
func MustRegister(d Descriptor) { std.MustRegister(d) }
