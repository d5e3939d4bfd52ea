package main

import (
	"fmt"
	"io"
	"strconv"

	"qwiic-go/errcode"
	"qwiic-go/i2cbus"
	"qwiic-go/internal/render"
	"qwiic-go/qwiic"
	"qwiic-go/registry"

	log "github.com/sirupsen/logrus"
)

// app holds what every command handler needs. The cobra commands and the
// shell both dispatch into it.
type app struct {
	eng    *qwiic.Engine
	out    io.Writer
	format string
}

func (a *app) write(t render.Table) error { return render.Write(a.out, a.format, t) }

func (a *app) scan([]string) error {
	addrs := a.eng.Scan()
	t := render.Table{Header: []string{"ADDR"}, Data: addrs}
	for _, ad := range addrs {
		t.Rows = append(t.Rows, []string{ad.String()})
	}
	return a.write(t)
}

func entryTable(es []qwiic.Entry) render.Table {
	t := render.Table{Header: []string{"ADDR", "TYPE", "NAME"}, Data: es}
	for _, e := range es {
		t.Rows = append(t.Rows, []string{e.Addr.String(), e.Type, e.Name})
	}
	return t
}

func (a *app) list([]string) error { return a.write(entryTable(a.eng.ListConnected())) }

func (a *app) available(args []string) error {
	addrs := make([]i2cbus.Addr, 0, len(args))
	for _, s := range args {
		ad, err := i2cbus.ParseAddr(s)
		if err != nil {
			return err
		}
		addrs = append(addrs, ad)
	}
	return a.write(entryTable(a.eng.ListAvailable(addrs...)))
}

type probeResult struct {
	Addr      i2cbus.Addr `json:"addr" yaml:"addr"`
	Connected bool        `json:"connected" yaml:"connected"`
}

func (a *app) probe(args []string) error {
	ad, err := i2cbus.ParseAddr(args[0])
	if err != nil {
		return err
	}
	r := probeResult{Addr: ad, Connected: a.eng.IsConnected(ad)}
	return a.write(render.Table{
		Header: []string{"ADDR", "CONNECTED"},
		Rows:   [][]string{{ad.String(), strconv.FormatBool(r.Connected)}},
		Data:   r,
	})
}

func (a *app) create(args []string, read bool) error {
	sel, err := qwiic.ParseSelector(args[0])
	if err != nil {
		return err
	}
	dev, err := a.eng.Create(sel)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"selector": sel.String(), "addr": dev.Address()}).Debug("device created")
	if !read {
		r := probeResult{Addr: dev.Address(), Connected: dev.IsConnected()}
		return a.write(render.Table{
			Header: []string{"ADDR", "CONNECTED"},
			Rows:   [][]string{{r.Addr.String(), strconv.FormatBool(r.Connected)}},
			Data:   r,
		})
	}

	if in, ok := dev.(registry.Initializer); ok {
		if err := in.Begin(); err != nil {
			return deviceErr("begin", dev, err)
		}
	}
	s, ok := dev.(registry.Sampler)
	if !ok {
		return &errcode.E{C: errcode.Unsupported, Op: "read", Msg: "device at " + dev.Address().String() + " has no readings"}
	}
	rs, err := s.Sample()
	if err != nil {
		return deviceErr("sample", dev, err)
	}
	t := render.Table{Header: []string{"KIND", "VALUE", "UNIT"}, Data: rs}
	for _, r := range rs {
		t.Rows = append(t.Rows, []string{r.Kind, fmt.Sprint(r.Value), r.Unit})
	}
	return a.write(t)
}

// deviceErr adds the device address to a coded failure. Driver errors with
// no code (wrong chip ID, no data yet) are returned as they are.
func deviceErr(op string, dev registry.Device, err error) error {
	if c := errcode.Of(err); c != errcode.Error {
		return errcode.Wrap(c, op+" "+dev.Address().String(), err)
	}
	return err
}
