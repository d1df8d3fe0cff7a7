package griddev

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/katalvlaran/lvlroute/device"
)

// This file implements the device.Device interface on *Device.

var _ device.Device = (*Device)(nil)

// Nets returns every registered net handle.
func (d *Device) Nets() []device.Net {
	out := make([]device.Net, len(d.nets))
	for i := range d.nets {
		out[i] = device.Net(i)
	}

	return out
}

// NetName returns the name given to AddNet.
func (d *Device) NetName(n device.Net) string {
	if !d.validNet(n) {
		return fmt.Sprintf("<net:%d>", n)
	}

	return d.nets[n].name
}

// NetIsGlobal reports the SetGlobal flag.
func (d *Device) NetIsGlobal(n device.Net) bool {
	return d.validNet(n) && d.nets[n].global
}

// NetHasDriver reports whether the net was registered with a source wire.
func (d *Device) NetHasDriver(n device.Net) bool {
	return d.validNet(n) && d.nets[n].src != device.NoWire
}

// SinkCount returns the number of sinks of n.
func (d *Device) SinkCount(n device.Net) int {
	if !d.validNet(n) {
		return 0
	}

	return len(d.nets[n].sinks)
}

// SinkName names sink idx for diagnostics.
func (d *Device) SinkName(n device.Net, idx int) string {
	if !d.validNet(n) || idx < 0 || idx >= len(d.nets[n].sinks) {
		return fmt.Sprintf("<sink:%d/%d>", n, idx)
	}

	return d.WireName(d.nets[n].sinks[idx].wire)
}

// SinkBudget returns the timing budget of sink idx.
func (d *Device) SinkBudget(n device.Net, idx int) device.Delay {
	if !d.validNet(n) || idx < 0 || idx >= len(d.nets[n].sinks) {
		return 0
	}

	return d.nets[n].sinks[idx].budget
}

// SourceWire returns the driver wire of n, or NoWire.
func (d *Device) SourceWire(n device.Net) device.Wire {
	if !d.validNet(n) {
		return device.NoWire
	}

	return d.nets[n].src
}

// SinkWire returns the wire of sink idx, or NoWire.
func (d *Device) SinkWire(n device.Net, idx int) device.Wire {
	if !d.validNet(n) || idx < 0 || idx >= len(d.nets[n].sinks) {
		return device.NoWire
	}

	return d.nets[n].sinks[idx].wire
}

// NetWires returns a sorted snapshot of the wires bound to n. Sorting keeps
// iteration deterministic, so rip-up order does not depend on Go map order.
func (d *Device) NetWires(n device.Net) []device.Wire {
	if !d.validNet(n) {
		return nil
	}
	out := make([]device.Wire, 0, len(d.nets[n].wires))
	for w := range d.nets[n].wires {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// NetBinding returns w's entry in n's wires-of-net map.
func (d *Device) NetBinding(n device.Net, w device.Wire) (device.Binding, bool) {
	if !d.validNet(n) {
		return device.Binding{Pip: device.NoPip}, false
	}
	b, ok := d.nets[n].wires[w]

	return b, ok
}

// NetWireCount returns the number of wires bound to n.
func (d *Device) NetWireCount(n device.Net) int {
	if !d.validNet(n) {
		return 0
	}

	return len(d.nets[n].wires)
}

// EstimateDelay returns the Manhattan-distance estimate between two grid
// wires, or zero if either wire has no coordinates. One grid step costs one
// pip plus one wire delay, which never overestimates the true path delay.
func (d *Device) EstimateDelay(src, dst device.Wire) device.Delay {
	if !d.validWire(src) || !d.validWire(dst) {
		return 0
	}
	sw, dw := &d.wires[src], &d.wires[dst]
	if !sw.grid || !dw.grid {
		return 0
	}
	dx, dy := sw.x-dw.x, sw.y-dw.y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	return device.Delay(dx+dy) * (d.opt.WireDelay + d.opt.PipDelay)
}

// WireDelay returns the delay of w.
func (d *Device) WireDelay(w device.Wire) device.Delay {
	if !d.validWire(w) {
		return 0
	}

	return d.wires[w].delay
}

// PipDelay returns the delay of p.
func (d *Device) PipDelay(p device.Pip) device.Delay {
	if !d.validPip(p) {
		return 0
	}

	return d.pips[p].delay
}

// DelayEpsilon returns the configured epsilon.
func (d *Device) DelayEpsilon() device.Delay { return d.opt.DelayEpsilon }

// RipupDelayPenalty returns the configured base penalty scalar.
func (d *Device) RipupDelayPenalty() device.Delay { return d.opt.RipupDelayPenalty }

// DownhillPips returns the pips leaving w.
func (d *Device) DownhillPips(w device.Wire) []device.Pip {
	if !d.validWire(w) {
		return nil
	}

	return d.wires[w].downhill
}

// PipSrc returns the source wire of p.
func (d *Device) PipSrc(p device.Pip) device.Wire {
	if !d.validPip(p) {
		return device.NoWire
	}

	return d.pips[p].src
}

// PipDst returns the destination wire of p.
func (d *Device) PipDst(p device.Pip) device.Wire {
	if !d.validPip(p) {
		return device.NoWire
	}

	return d.pips[p].dst
}

// CheckWireAvail reports whether w is unbound and no exclusion partner is
// bound.
func (d *Device) CheckWireAvail(w device.Wire) bool {
	if !d.validWire(w) {
		return false
	}
	if d.wires[w].net != device.NoNet {
		return false
	}
	for _, v := range d.wires[w].excl {
		if d.wires[v].net != device.NoNet {
			return false
		}
	}

	return true
}

// CheckPipAvail reports whether p and its destination wire are both unbound.
func (d *Device) CheckPipAvail(p device.Pip) bool {
	if !d.validPip(p) {
		return false
	}

	return d.pips[p].net == device.NoNet && d.wires[d.pips[p].dst].net == device.NoNet
}

// ConflictingWireWire returns the bound exclusion partner blocking w, or
// NoWire when w itself is bound (a net-level conflict) or not blocked.
func (d *Device) ConflictingWireWire(w device.Wire) device.Wire {
	if !d.validWire(w) || d.wires[w].net != device.NoNet {
		return device.NoWire
	}
	for _, v := range d.wires[w].excl {
		if d.wires[v].net != device.NoNet {
			return v
		}
	}

	return device.NoWire
}

// ConflictingWireNet returns the net bound to w, or NoNet.
func (d *Device) ConflictingWireNet(w device.Wire) device.Net {
	if !d.validWire(w) {
		return device.NoNet
	}

	return d.wires[w].net
}

// ConflictingPipWire returns p's destination wire when that wire (and not p
// itself) carries the blocking binding, or NoWire.
func (d *Device) ConflictingPipWire(p device.Pip) device.Wire {
	if !d.validPip(p) || d.pips[p].net != device.NoNet {
		return device.NoWire
	}
	if d.wires[d.pips[p].dst].net != device.NoNet {
		return d.pips[p].dst
	}

	return device.NoWire
}

// ConflictingPipNet returns the net bound to p, or NoNet.
func (d *Device) ConflictingPipNet(p device.Pip) device.Net {
	if !d.validPip(p) {
		return device.NoNet
	}

	return d.pips[p].net
}

// BindWire adds w to n's wires-of-net map with no incoming pip.
func (d *Device) BindWire(w device.Wire, n device.Net, s device.Strength) error {
	if !d.validWire(w) {
		return fmt.Errorf("%w: %d", ErrUnknownWire, w)
	}
	if !d.validNet(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNet, n)
	}
	if d.wires[w].net != device.NoNet {
		return fmt.Errorf("%w: wire %s is bound to net %s", ErrBound, d.wires[w].name, d.NetName(d.wires[w].net))
	}

	b := device.Binding{Pip: device.NoPip, Strength: s}
	d.wires[w].net = n
	d.wires[w].binding = b
	d.nets[n].wires[w] = b

	return nil
}

// BindPip binds p and its destination wire to n.
func (d *Device) BindPip(p device.Pip, n device.Net, s device.Strength) error {
	if !d.validPip(p) {
		return fmt.Errorf("%w: %d", ErrUnknownPip, p)
	}
	if !d.validNet(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNet, n)
	}
	if d.pips[p].net != device.NoNet {
		return fmt.Errorf("%w: pip %s is bound to net %s", ErrBound, d.PipName(p), d.NetName(d.pips[p].net))
	}
	dst := d.pips[p].dst
	if d.wires[dst].net != device.NoNet {
		return fmt.Errorf("%w: wire %s is bound to net %s", ErrBound, d.wires[dst].name, d.NetName(d.wires[dst].net))
	}

	b := device.Binding{Pip: p, Strength: s}
	d.pips[p].net = n
	d.wires[dst].net = n
	d.wires[dst].binding = b
	d.nets[n].wires[dst] = b

	return nil
}

// UnbindWire releases w and the pip that was driving it.
func (d *Device) UnbindWire(w device.Wire) error {
	if !d.validWire(w) {
		return fmt.Errorf("%w: %d", ErrUnknownWire, w)
	}
	rec := &d.wires[w]
	if rec.net == device.NoNet {
		return fmt.Errorf("%w: %s", ErrNotBound, rec.name)
	}
	if rec.binding.Strength >= device.StrengthLocked {
		return fmt.Errorf("%w: %s", ErrLocked, rec.name)
	}

	delete(d.nets[rec.net].wires, w)
	if rec.binding.Pip != device.NoPip {
		d.pips[rec.binding.Pip].net = device.NoNet
	}
	rec.net = device.NoNet
	rec.binding = device.Binding{Pip: device.NoPip}

	return nil
}

// WireName returns the name given at AddWire time.
func (d *Device) WireName(w device.Wire) string {
	if !d.validWire(w) {
		return fmt.Sprintf("<wire:%d>", w)
	}

	return d.wires[w].name
}

// PipName renders a pip as "src->dst" for diagnostics.
func (d *Device) PipName(p device.Pip) string {
	if !d.validPip(p) {
		return fmt.Sprintf("<pip:%d>", p)
	}

	return d.wires[d.pips[p].src].name + "->" + d.wires[d.pips[p].dst].name
}

// Rand returns the next xorshift32 value (or the pinned constant).
func (d *Device) Rand() int32 {
	if d.opt.useConstRand {
		return d.opt.constRand
	}
	x := d.rng
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	d.rng = x

	return int32(x & 0x7fffffff)
}

// Checksum digests the binding state with FNV-1a, iterating wires and pips
// in handle order so the digest is deterministic.
func (d *Device) Checksum() uint32 {
	h := fnv.New32a()
	buf := make([]byte, 4)
	put := func(v int32) {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		h.Write(buf)
	}
	for i := range d.wires {
		if d.wires[i].net == device.NoNet {
			continue
		}
		put(int32(i))
		put(int32(d.wires[i].net))
		put(int32(d.wires[i].binding.Pip))
		put(int32(d.wires[i].binding.Strength))
	}
	for i := range d.pips {
		if d.pips[i].net == device.NoNet {
			continue
		}
		put(int32(i))
		put(int32(d.pips[i].net))
	}

	return h.Sum32()
}

// Lock acquires the device mutex.
func (d *Device) Lock() { d.mu.Lock() }

// Unlock releases the device mutex.
func (d *Device) Unlock() { d.mu.Unlock() }
