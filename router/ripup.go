package router

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/device"
)

// ripupWireBinding releases one bound wire: every arc referencing it loses
// the reference and goes back on the queue, the device binding is dropped,
// and the wire's contention score is bumped.
func (r *router) ripupWireBinding(w device.Wire) error {
	for _, a := range r.book.detachWire(w) {
		r.queue.insert(r.dev, a)
	}

	if err := r.dev.UnbindWire(w); err != nil {
		return fmt.Errorf("%w: unbind wire %s: %v", ErrContract, r.dev.WireName(w), err)
	}
	r.scores.wire[w]++

	return nil
}

// ripupNet releases every wire currently bound to n, re-queuing all
// displaced arcs and bumping n's contention score.
func (r *router) ripupNet(n device.Net) error {
	r.scores.net[n]++

	for _, w := range r.dev.NetWires(n) {
		if err := r.ripupWireBinding(w); err != nil {
			return err
		}
	}
	r.ripupFlag = true

	return nil
}

// ripupWire frees the resource blocking wire: either the distinct wire that
// owns it, or the whole conflicting net.
func (r *router) ripupWire(wire device.Wire) error {
	if w := r.dev.ConflictingWireWire(wire); w != device.NoWire {
		if err := r.ripupWireBinding(w); err != nil {
			return err
		}
		r.ripupFlag = true

		return nil
	}

	if n := r.dev.ConflictingWireNet(wire); n != device.NoNet {
		if err := r.ripupNet(n); err != nil {
			return err
		}
	}
	r.ripupFlag = true

	return nil
}

// ripupPip frees the resource blocking pip, same shape as ripupWire.
func (r *router) ripupPip(pip device.Pip) error {
	if w := r.dev.ConflictingPipWire(pip); w != device.NoWire {
		if err := r.ripupWireBinding(w); err != nil {
			return err
		}
		r.ripupFlag = true

		return nil
	}

	if n := r.dev.ConflictingPipNet(pip); n != device.NoNet {
		if err := r.ripupNet(n); err != nil {
			return err
		}
	}
	r.ripupFlag = true

	return nil
}
