package router

import (
	"sort"

	"github.com/katalvlaran/lvlroute/device"
)

// arcBook is the bidirectional index of currently bound wires per arc and
// currently bound arcs per wire. The two maps are maintained as strict
// inverses: w ∈ arcToWires[a] ⇔ a ∈ wireToArcs[w] after every operation.
//
// The book owns neither handles nor bindings; releasing the device binding
// of a wire whose arc set drained is the caller's job.
type arcBook struct {
	wireToArcs map[device.Wire]map[Arc]struct{}
	arcToWires map[Arc]map[device.Wire]struct{}
}

func newArcBook() arcBook {
	return arcBook{
		wireToArcs: make(map[device.Wire]map[Arc]struct{}),
		arcToWires: make(map[Arc]map[device.Wire]struct{}),
	}
}

// bind inserts the (arc, wire) pair symmetrically into both maps.
func (b *arcBook) bind(a Arc, w device.Wire) {
	arcs := b.wireToArcs[w]
	if arcs == nil {
		arcs = make(map[Arc]struct{})
		b.wireToArcs[w] = arcs
	}
	arcs[a] = struct{}{}

	wires := b.arcToWires[a]
	if wires == nil {
		wires = make(map[device.Wire]struct{})
		b.arcToWires[a] = wires
	}
	wires[w] = struct{}{}
}

// unbind removes the pair symmetrically. It reports whether the wire's arc
// set became empty, in which case the caller must release the device
// binding of w.
func (b *arcBook) unbind(a Arc, w device.Wire) (freed bool) {
	if wires := b.arcToWires[a]; wires != nil {
		delete(wires, w)
		if len(wires) == 0 {
			delete(b.arcToWires, a)
		}
	}
	arcs := b.wireToArcs[w]
	if arcs == nil {
		return false
	}
	delete(arcs, a)
	if len(arcs) == 0 {
		delete(b.wireToArcs, w)

		return true
	}

	return false
}

// releaseArc removes every (a, wire) pair and returns the wires whose arc
// set drained — the wires a held exclusively. Used by the search preamble:
// the arc about to be rerouted must not self-conflict, while wires it shares
// with sibling arcs of the same net stay bound.
func (b *arcBook) releaseArc(a Arc) (freed []device.Wire) {
	wires := b.arcToWires[a]
	delete(b.arcToWires, a)

	for w := range wires {
		arcs := b.wireToArcs[w]
		delete(arcs, a)
		if len(arcs) == 0 {
			delete(b.wireToArcs, w)
			freed = append(freed, w)
		}
	}
	sort.Slice(freed, func(i, j int) bool { return freed[i] < freed[j] })

	return freed
}

// detachWire removes w from every arc that references it, clears w's arc
// set, and returns the affected arcs so the caller can re-queue them.
func (b *arcBook) detachWire(w device.Wire) (displaced []Arc) {
	arcs := b.wireToArcs[w]
	delete(b.wireToArcs, w)

	for a := range arcs {
		wires := b.arcToWires[a]
		delete(wires, w)
		if len(wires) == 0 {
			delete(b.arcToWires, a)
		}
		displaced = append(displaced, a)
	}
	sort.Slice(displaced, func(i, j int) bool {
		if displaced[i].Net != displaced[j].Net {
			return displaced[i].Net < displaced[j].Net
		}

		return displaced[i].Sink < displaced[j].Sink
	})

	return displaced
}

// wiresOf returns an iteration snapshot of the wires bound to a.
func (b *arcBook) wiresOf(a Arc) []device.Wire {
	out := make([]device.Wire, 0, len(b.arcToWires[a]))
	for w := range b.arcToWires[a] {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// arcsOf returns an iteration snapshot of the arcs referencing w.
func (b *arcBook) arcsOf(w device.Wire) []Arc {
	out := make([]Arc, 0, len(b.wireToArcs[w]))
	for a := range b.wireToArcs[w] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Net != out[j].Net {
			return out[i].Net < out[j].Net
		}

		return out[i].Sink < out[j].Sink
	})

	return out
}

// holdsWire reports whether a currently references w.
func (b *arcBook) holdsWire(a Arc, w device.Wire) bool {
	_, ok := b.arcToWires[a][w]

	return ok
}
