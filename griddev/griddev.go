package griddev

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/lvlroute/device"
)

// wireRec is the per-wire record: static data plus current binding.
type wireRec struct {
	name     string
	delay    device.Delay
	x, y     int
	grid     bool // coordinates are valid
	downhill []device.Pip
	excl     []device.Wire // mutual-exclusion partners

	net     device.Net // NoNet when unbound
	binding device.Binding
}

// pipRec is the per-pip record.
type pipRec struct {
	src, dst device.Wire
	delay    device.Delay

	net device.Net // NoNet when unbound
}

// sinkRec is one sink of a net.
type sinkRec struct {
	wire   device.Wire
	budget device.Delay
}

// netRec is the per-net record, including the wires-of-net map.
type netRec struct {
	name   string
	global bool
	src    device.Wire // NoWire for driverless nets
	sinks  []sinkRec
	wires  map[device.Wire]device.Binding
}

// Device is an in-memory routing fabric implementing device.Device.
// Construction (AddWire, AddPip, AddNet, ...) is not safe for concurrent
// use; routing-time access is serialised by Lock/Unlock.
type Device struct {
	mu  sync.Mutex
	opt Options

	wires  []wireRec
	pips   []pipRec
	nets   []netRec
	byName map[string]device.Wire

	gridW, gridH int

	rng uint32
}

// New creates an empty reference device.
func New(opts ...Option) *Device {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		opt:    cfg,
		byName: make(map[string]device.Wire),
		rng:    cfg.Seed,
	}
}

// AddWire adds a wire with the given name and delay. The wire has no
// coordinates, so delay estimates involving it are zero.
func (d *Device) AddWire(name string, delay device.Delay) (device.Wire, error) {
	return d.addWire(name, delay, 0, 0, false)
}

// AddWireAt adds a wire with coordinates, enabling the Manhattan estimator.
func (d *Device) AddWireAt(name string, delay device.Delay, x, y int) (device.Wire, error) {
	return d.addWire(name, delay, x, y, true)
}

func (d *Device) addWire(name string, delay device.Delay, x, y int, grid bool) (device.Wire, error) {
	if _, ok := d.byName[name]; ok {
		return device.NoWire, fmt.Errorf("%w: %q", ErrWireExists, name)
	}

	w := device.Wire(len(d.wires))
	d.wires = append(d.wires, wireRec{
		name:    name,
		delay:   delay,
		x:       x,
		y:       y,
		grid:    grid,
		net:     device.NoNet,
		binding: device.Binding{Pip: device.NoPip},
	})
	d.byName[name] = w

	return w, nil
}

// AddPip adds a directional switch from src to dst with the given delay.
func (d *Device) AddPip(src, dst device.Wire, delay device.Delay) (device.Pip, error) {
	if !d.validWire(src) {
		return device.NoPip, fmt.Errorf("%w: pip source %d", ErrUnknownWire, src)
	}
	if !d.validWire(dst) {
		return device.NoPip, fmt.Errorf("%w: pip destination %d", ErrUnknownWire, dst)
	}

	p := device.Pip(len(d.pips))
	d.pips = append(d.pips, pipRec{src: src, dst: dst, delay: delay, net: device.NoNet})
	d.wires[src].downhill = append(d.wires[src].downhill, p)

	return p, nil
}

// AddNet registers a net driven from src. Pass device.NoWire for a
// driverless net (the router skips those).
func (d *Device) AddNet(name string, src device.Wire) (device.Net, error) {
	if src != device.NoWire && !d.validWire(src) {
		return device.NoNet, fmt.Errorf("%w: net source %d", ErrUnknownWire, src)
	}

	n := device.Net(len(d.nets))
	d.nets = append(d.nets, netRec{
		name:  name,
		src:   src,
		wires: make(map[device.Wire]device.Binding),
	})

	return n, nil
}

// AddSink appends a sink with a timing budget to net n.
func (d *Device) AddSink(n device.Net, w device.Wire, budget device.Delay) error {
	if !d.validNet(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNet, n)
	}
	if !d.validWire(w) {
		return fmt.Errorf("%w: sink wire %d", ErrUnknownWire, w)
	}

	d.nets[n].sinks = append(d.nets[n].sinks, sinkRec{wire: w, budget: budget})

	return nil
}

// SetGlobal flags n as an architecture-global net the router must skip.
func (d *Device) SetGlobal(n device.Net) error {
	if !d.validNet(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNet, n)
	}
	d.nets[n].global = true

	return nil
}

// ExcludeWires declares the given wires mutually exclusive: while one is
// bound, the others are unavailable and report the bound one as their
// conflicting wire.
func (d *Device) ExcludeWires(wires ...device.Wire) error {
	for _, w := range wires {
		if !d.validWire(w) {
			return fmt.Errorf("%w: %d", ErrUnknownWire, w)
		}
	}
	for _, w := range wires {
		for _, v := range wires {
			if v != w {
				d.wires[w].excl = append(d.wires[w].excl, v)
			}
		}
	}

	return nil
}

// WireByName resolves a wire name to its handle.
func (d *Device) WireByName(name string) (device.Wire, bool) {
	w, ok := d.byName[name]

	return w, ok
}

// PipBetween returns the pip from src to dst, if one exists.
func (d *Device) PipBetween(src, dst device.Wire) (device.Pip, bool) {
	if !d.validWire(src) {
		return device.NoPip, false
	}
	for _, p := range d.wires[src].downhill {
		if d.pips[p].dst == dst {
			return p, true
		}
	}

	return device.NoPip, false
}

func (d *Device) validWire(w device.Wire) bool { return w >= 0 && int(w) < len(d.wires) }
func (d *Device) validPip(p device.Pip) bool   { return p >= 0 && int(p) < len(d.pips) }
func (d *Device) validNet(n device.Net) bool   { return n >= 0 && int(n) < len(d.nets) }
