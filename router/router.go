package router

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/device"
)

// router holds the state of one routing call. It lives for the duration of
// Run and is never shared.
type router struct {
	dev  device.Device
	opts Options
	pen  penalties

	book   arcBook
	queue  arcQueue
	scores scores

	// Per-search state, reset by every routeArc call.
	visited  map[device.Wire]queuedWire
	frontier wireHeap

	arcsWithRipup    int
	arcsWithoutRipup int
	ripupFlag        bool
}

func newRouter(dev device.Device, opts Options) *router {
	return &router{
		dev:    dev,
		opts:   opts,
		pen:    derivePenalties(dev),
		book:   newArcBook(),
		queue:  newArcQueue(),
		scores: newScores(),
	}
}

func (r *router) logf(format string, args ...any) {
	if r.opts.Log != nil {
		r.opts.Log(format, args...)
	}
}

// Run routes every pending arc of the design on dev. It acquires the device
// lock for the whole call.
//
// The returned error is nil on success; otherwise it wraps one of the
// sentinel errors (ErrTopology, ErrUnroutable, ErrIterLimit, ErrContract,
// ErrInvariant) with net and wire names for diagnostics.
func Run(dev device.Device, opts ...Option) (*Result, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	dev.Lock()
	defer dev.Unlock()

	r := newRouter(dev, cfg)

	r.logf("Routing..\n")
	r.logf("Setting up routing queue.\n")

	if err := r.setup(); err != nil {
		return nil, err
	}
	if cfg.InvariantChecks {
		if err := r.check(); err != nil {
			return nil, err
		}
	}

	r.logf("Routing %d arcs.\n", r.queue.len())
	r.logf("           |   (re-)routed arcs  |   delta    | remaining\n")
	r.logf("   IterCnt |  w/ripup   wo/ripup |  w/r  wo/r |      arcs\n")

	iterCnt := 0
	lastWithRipup := 0
	lastWithoutRipup := 0

	for r.queue.len() > 0 {
		if cfg.MaxIterCnt > 0 && iterCnt >= cfg.MaxIterCnt {
			return nil, fmt.Errorf("%w: %d iterations, %d arcs remaining",
				ErrIterLimit, iterCnt, r.queue.len())
		}
		iterCnt++

		if iterCnt%1000 == 0 {
			r.logf("%10d | %8d %10d | %4d %5d | %9d\n",
				iterCnt, r.arcsWithRipup, r.arcsWithoutRipup,
				r.arcsWithRipup-lastWithRipup, r.arcsWithoutRipup-lastWithoutRipup,
				r.queue.len())
			lastWithRipup = r.arcsWithRipup
			lastWithoutRipup = r.arcsWithoutRipup

			if cfg.InvariantChecks {
				if err := r.check(); err != nil {
					return nil, err
				}
			}
		}

		arc := r.queue.pop()

		routed, err := r.routeArc(arc, true)
		if err != nil {
			return nil, err
		}
		if !routed {
			r.logf("Failed to find a route for arc %d of net %s.\n",
				arc.Sink, dev.NetName(arc.Net))

			return nil, fmt.Errorf("%w: arc %d of net %s",
				ErrUnroutable, arc.Sink, dev.NetName(arc.Net))
		}
	}

	r.logf("%10d | %8d %10d | %4d %5d | %9d\n",
		iterCnt, r.arcsWithRipup, r.arcsWithoutRipup,
		r.arcsWithRipup-lastWithRipup, r.arcsWithoutRipup-lastWithoutRipup,
		r.queue.len())
	r.logf("Routing complete.\n")

	if cfg.InvariantChecks {
		if err := r.check(); err != nil {
			return nil, err
		}
	}

	checksum := dev.Checksum()
	r.logf("Checksum: 0x%08x\n", checksum)

	return &Result{
		Iterations:       iterCnt,
		ArcsWithRipup:    r.arcsWithRipup,
		ArcsWithoutRipup: r.arcsWithoutRipup,
		Checksum:         checksum,
	}, nil
}

// check verifies the arc-book invariants against the device binding state:
// both maps are strict inverses, every booked wire is bound to its arc's
// net, every non-locked bound wire of a net is referenced by at least one
// of the net's arcs, and no stale arcs linger in the book.
func (r *router) check() error {
	dev := r.dev
	validArcs := make(map[Arc]struct{})

	for _, n := range dev.Nets() {
		if r.skipNet(n) {
			continue
		}

		validWiresForNet := make(map[device.Wire]struct{})

		for idx := 0; idx < dev.SinkCount(n); idx++ {
			arc := Arc{Net: n, Sink: idx}
			validArcs[arc] = struct{}{}

			for _, w := range r.book.wiresOf(arc) {
				validWiresForNet[w] = struct{}{}
				if _, ok := r.book.wireToArcs[w][arc]; !ok {
					return fmt.Errorf("%w: wire %s missing reverse entry for arc %d of net %s",
						ErrInvariant, dev.WireName(w), idx, dev.NetName(n))
				}
				if _, bound := dev.NetBinding(n, w); !bound {
					return fmt.Errorf("%w: booked wire %s of net %s is not bound in the device",
						ErrInvariant, dev.WireName(w), dev.NetName(n))
				}
			}
		}

		for _, w := range dev.NetWires(n) {
			binding, _ := dev.NetBinding(n, w)
			if binding.Strength >= device.StrengthLocked {
				continue
			}
			if _, ok := validWiresForNet[w]; !ok {
				return fmt.Errorf("%w: bound wire %s of net %s is referenced by no arc",
					ErrInvariant, dev.WireName(w), dev.NetName(n))
			}
		}
	}

	for w, arcs := range r.book.wireToArcs {
		for a := range arcs {
			if _, ok := validArcs[a]; !ok {
				return fmt.Errorf("%w: stale arc %d of net %s on wire %s",
					ErrInvariant, a.Sink, dev.NetName(a.Net), dev.WireName(w))
			}
			if _, ok := r.book.arcToWires[a][w]; !ok {
				return fmt.Errorf("%w: arc %d of net %s missing reverse entry for wire %s",
					ErrInvariant, a.Sink, dev.NetName(a.Net), dev.WireName(w))
			}
		}
	}
	for a := range r.book.arcToWires {
		if _, ok := validArcs[a]; !ok {
			return fmt.Errorf("%w: stale arc %d of net %s in the book",
				ErrInvariant, a.Sink, dev.NetName(a.Net))
		}
	}

	if len(r.queue.queued) != r.queue.len() {
		return fmt.Errorf("%w: queue membership set (%d) out of sync with heap (%d)",
			ErrInvariant, len(r.queue.queued), r.queue.len())
	}

	return nil
}
