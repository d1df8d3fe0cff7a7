package router

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/device"
)

// skipNet reports whether the router must leave n alone: driverless nets
// and architecture-global nets are not routed.
func (r *router) skipNet(n device.Net) bool {
	return r.dev.NetIsGlobal(n) || !r.dev.NetHasDriver(n)
}

// setup ingests any routing already present in the device and enqueues
// every arc that is not yet fully routed from driver to sink.
//
// It also enforces the netlist topology rules: every net needs a source
// wire, no two nets may share a source wire, no wire may serve as source of
// one net and sink of another, and no sink wire may be claimed by two
// different nets. Two sinks of the same net on the same wire are treated as
// duplicates of one arc.
func (r *router) setup() error {
	dev := r.dev

	srcToNet := make(map[device.Wire]device.Net)
	dstToArc := make(map[device.Wire]Arc)

	for _, n := range dev.Nets() {
		if r.skipNet(n) {
			continue
		}

		srcWire := dev.SourceWire(n)
		if srcWire == device.NoWire {
			return fmt.Errorf("%w: no source wire for net %s", ErrTopology, dev.NetName(n))
		}
		if prev, ok := srcToNet[srcWire]; ok {
			return fmt.Errorf("%w: nets %s and %s share source wire %s",
				ErrTopology, dev.NetName(n), dev.NetName(prev), dev.WireName(srcWire))
		}
		if prev, ok := dstToArc[srcWire]; ok {
			return fmt.Errorf("%w: wire %s is source of net %s and sink %d of net %s",
				ErrTopology, dev.WireName(srcWire), dev.NetName(n), prev.Sink, dev.NetName(prev.Net))
		}

		for idx := 0; idx < dev.SinkCount(n); idx++ {
			dstWire := dev.SinkWire(n, idx)
			if dstWire == device.NoWire {
				return fmt.Errorf("%w: no wire for sink %d (%s) of net %s",
					ErrTopology, idx, dev.SinkName(n, idx), dev.NetName(n))
			}

			if prev, ok := dstToArc[dstWire]; ok {
				if prev.Net == n {
					// Duplicate sink within the same net; one arc covers both.
					continue
				}

				return fmt.Errorf("%w: sink wire %s claimed by net %s (sink %d) and net %s (sink %d)",
					ErrTopology, dev.WireName(dstWire), dev.NetName(n), idx, dev.NetName(prev.Net), prev.Sink)
			}
			if prev, ok := srcToNet[dstWire]; ok {
				return fmt.Errorf("%w: wire %s is source of net %s and sink %d of net %s",
					ErrTopology, dev.WireName(dstWire), dev.NetName(prev), idx, dev.NetName(n))
			}

			arc := Arc{Net: n, Sink: idx}
			dstToArc[dstWire] = arc

			if _, bound := dev.NetBinding(n, srcWire); !bound {
				// No binding at the source yet: nothing to ingest.
				r.queue.insertWires(dev, arc, srcWire, dstWire)

				continue
			}

			// Walk backwards from the sink along the recorded pips,
			// populating the book. Falling off the existing route before
			// the source discards the partial info and enqueues the arc.
			cursor := dstWire
			r.book.bind(arc, cursor)

			for steps := 0; cursor != srcWire; steps++ {
				if steps > dev.NetWireCount(n) {
					return fmt.Errorf("%w: cycle in pre-routed binding of net %s",
						ErrContract, dev.NetName(n))
				}
				binding, ok := dev.NetBinding(n, cursor)
				if !ok {
					r.book.releaseArc(arc)
					r.queue.insertWires(dev, arc, srcWire, dstWire)

					break
				}
				if binding.Pip == device.NoPip {
					return fmt.Errorf("%w: wire %s of net %s is bound without a driving pip",
						ErrContract, dev.WireName(cursor), dev.NetName(n))
				}

				cursor = dev.PipSrc(binding.Pip)
				r.book.bind(arc, cursor)
			}
		}

		srcToNet[srcWire] = n

		// Soft bindings that no arc ended up referencing are dead routing;
		// release them now.
		for _, w := range dev.NetWires(n) {
			binding, _ := dev.NetBinding(n, w)
			if binding.Strength < device.StrengthLocked && len(r.book.wireToArcs[w]) == 0 {
				if err := dev.UnbindWire(w); err != nil {
					return fmt.Errorf("%w: unbind dead wire %s: %v", ErrContract, dev.WireName(w), err)
				}
			}
		}
	}

	return nil
}
