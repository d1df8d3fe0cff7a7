package router

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlroute/device"
)

// queuedWire is one search-frontier entry: a wire, the pip it was reached
// through, and the cost components accumulated on the way.
//
// The heap key is delay + penalty + togo − bonus. The visited check compares
// delay + penalty; pruning against the best terminal score uses
// delay + penalty − bonus.
type queuedWire struct {
	wire device.Wire
	pip  device.Pip

	delay   device.Delay
	penalty device.Delay
	bonus   device.Delay
	togo    device.Delay

	randtag int32
}

func (qw queuedWire) key() device.Delay {
	return qw.delay + qw.penalty + qw.togo - qw.bonus
}

// wireHeap is the min-heap frontier. The smaller key wins; ties break by
// the larger random tag, drawn from the device RNG, so equal-cost
// expansions are deterministic per seed.
type wireHeap []queuedWire

func (h wireHeap) Len() int { return len(h) }
func (h wireHeap) Less(i, j int) bool {
	ki, kj := h[i].key(), h[j].key()
	if ki != kj {
		return ki < kj
	}

	return h[i].randtag > h[j].randtag
}
func (h wireHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *wireHeap) Push(x interface{}) { *h = append(*h, x.(queuedWire)) }
func (h *wireHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// routeArc searches a path from the arc's source wire to its sink wire and
// binds it. It returns (false, nil) when the search exhausted the graph —
// the arc is unrouteable — and a non-nil error only for device contract
// violations. On success the route is bound in the device and mirrored in
// the arc book, and the with/without-rip-up counters are updated.
func (r *router) routeArc(arc Arc, allowRipup bool) (bool, error) {
	dev := r.dev
	srcWire := dev.SourceWire(arc.Net)
	dstWire := dev.SinkWire(arc.Net, arc.Sink)
	r.ripupFlag = false

	// Unbind wires currently used exclusively by this arc, so the search
	// cannot conflict with the arc's own previous route. Wires shared with
	// sibling arcs of the same net stay bound.
	for _, w := range r.book.releaseArc(arc) {
		if err := dev.UnbindWire(w); err != nil {
			return false, fmt.Errorf("%w: release wire %s: %v", ErrContract, dev.WireName(w), err)
		}
	}

	// Fresh per-search state.
	r.frontier = r.frontier[:0]
	r.visited = make(map[device.Wire]queuedWire)

	visitCnt := 0
	maxVisitCnt := math.MaxInt
	var bestEst device.Delay
	bestScore := device.Delay(-1)

	qw := queuedWire{
		wire:  srcWire,
		pip:   device.NoPip,
		delay: dev.WireDelay(srcWire),
	}
	if r.opts.UseEstimate {
		qw.togo = dev.EstimateDelay(srcWire, dstWire)
		bestEst = qw.delay + qw.togo
	}
	qw.randtag = dev.Rand()

	heap.Push(&r.frontier, qw)
	r.visited[qw.wire] = qw

	for visitCnt < maxVisitCnt && r.frontier.Len() > 0 {
		visitCnt++
		qw = heap.Pop(&r.frontier).(queuedWire)

		for _, pip := range dev.DownhillPips(qw.wire) {
			nextWire := dev.PipDst(pip)
			nextDelay := qw.delay + dev.PipDelay(pip) + dev.WireDelay(nextWire)
			nextPenalty := qw.penalty
			nextBonus := qw.bonus

			conflictWireWire, conflictPipWire := device.NoWire, device.NoWire
			conflictWireNet, conflictPipNet := device.NoNet, device.NoNet

			binding, wireReuse := dev.NetBinding(arc.Net, nextWire)
			pipReuse := wireReuse && binding.Pip == pip

			if !dev.CheckWireAvail(nextWire) && !wireReuse {
				if !allowRipup {
					continue
				}
				conflictWireWire = dev.ConflictingWireWire(nextWire)
				if conflictWireWire == device.NoWire {
					conflictWireNet = dev.ConflictingWireNet(nextWire)
					if conflictWireNet == device.NoNet {
						continue
					}
				}
			}

			if !dev.CheckPipAvail(pip) && !pipReuse {
				if !allowRipup {
					continue
				}
				conflictPipWire = dev.ConflictingPipWire(pip)
				if conflictPipWire == device.NoWire {
					conflictPipNet = dev.ConflictingPipNet(pip)
					if conflictPipNet == device.NoNet {
						continue
					}
				}
			}

			// The two conflict reports may describe the same resource;
			// deconflict so nothing is penalised (or ripped up) twice.
			if conflictWireNet != device.NoNet && conflictPipWire != device.NoWire {
				if _, ok := dev.NetBinding(conflictWireNet, conflictPipWire); ok {
					conflictPipWire = device.NoWire
				}
			}
			if conflictPipNet != device.NoNet && conflictWireWire != device.NoWire {
				if _, ok := dev.NetBinding(conflictPipNet, conflictWireWire); ok {
					conflictWireWire = device.NoWire
				}
			}
			if conflictWireWire == conflictPipWire {
				conflictWireWire = device.NoWire
			}
			if conflictWireNet == conflictPipNet {
				conflictWireNet = device.NoNet
			}

			if wireReuse {
				nextBonus += r.pen.wireReuseBonus
			}
			if pipReuse {
				nextBonus += r.pen.pipReuseBonus
			}

			if conflictWireWire != device.NoWire {
				nextPenalty += r.pen.wireRipup * device.Delay(1+r.scores.wire[conflictWireWire])
			}
			if conflictPipWire != device.NoWire {
				nextPenalty += r.pen.wireRipup * device.Delay(1+r.scores.wire[conflictPipWire])
			}
			if conflictWireNet != device.NoNet {
				nextPenalty += r.pen.netRipup * device.Delay(1+r.scores.net[conflictWireNet])
				nextPenalty += r.pen.wireRipup * device.Delay(dev.NetWireCount(conflictWireNet))
			}
			if conflictPipNet != device.NoNet {
				nextPenalty += r.pen.netRipup * device.Delay(1+r.scores.net[conflictPipNet])
				nextPenalty += r.pen.wireRipup * device.Delay(dev.NetWireCount(conflictPipNet))
			}

			nextScore := nextDelay + nextPenalty

			// Prune against the best terminal score seen so far.
			if bestScore >= 0 && nextScore-nextBonus-r.pen.estimatePrecision > bestScore {
				continue
			}

			// First arrival wins unless strictly improved (no decrease-key).
			if old, ok := r.visited[nextWire]; ok {
				if nextScore+dev.DelayEpsilon() >= old.delay+old.penalty {
					continue
				}
			}

			next := queuedWire{
				wire:    nextWire,
				pip:     pip,
				delay:   nextDelay,
				penalty: nextPenalty,
				bonus:   nextBonus,
			}
			if r.opts.UseEstimate {
				next.togo = dev.EstimateDelay(nextWire, dstWire)
				thisEst := next.delay + next.togo
				// The half-factor lets the frontier overshoot the best
				// estimator value while still bounding stalls.
				if thisEst/2-r.pen.estimatePrecision > bestEst {
					continue
				}
				if bestEst > thisEst {
					bestEst = thisEst
				}
			}
			next.randtag = dev.Rand()

			r.visited[next.wire] = next
			heap.Push(&r.frontier, next)

			if nextWire == dstWire {
				if maxVisitCnt == math.MaxInt {
					maxVisitCnt = 2 * visitCnt
				}
				bestScore = nextScore - nextBonus
			}
		}
	}

	if _, ok := r.visited[dstWire]; !ok {
		return false, nil
	}

	// Walk from the sink back to the source along the recorded pips,
	// binding every wire and pip that is not already part of the net.
	// Binding may itself trigger rip-ups, which re-queue displaced arcs.
	cursor := dstWire
	for {
		pip := r.visited[cursor].pip

		if pip == device.NoPip && cursor != srcWire {
			return false, fmt.Errorf("%w: backtrack reached %s without a pip, source is %s",
				ErrContract, dev.WireName(cursor), dev.WireName(srcWire))
		}

		binding, bound := dev.NetBinding(arc.Net, cursor)
		if !bound || binding.Pip != pip {
			if !dev.CheckWireAvail(cursor) {
				if err := r.ripupWire(cursor); err != nil {
					return false, err
				}
				if !dev.CheckWireAvail(cursor) {
					return false, fmt.Errorf("%w: wire %s still unavailable after rip-up",
						ErrContract, dev.WireName(cursor))
				}
			}

			if pip != device.NoPip && !dev.CheckPipAvail(pip) {
				if err := r.ripupPip(pip); err != nil {
					return false, err
				}
				if !dev.CheckPipAvail(pip) {
					return false, fmt.Errorf("%w: pip to %s still unavailable after rip-up",
						ErrContract, dev.WireName(cursor))
				}
			}

			if pip == device.NoPip {
				if err := dev.BindWire(cursor, arc.Net, device.StrengthWeak); err != nil {
					return false, fmt.Errorf("%w: bind wire %s: %v", ErrContract, dev.WireName(cursor), err)
				}
			} else {
				if err := dev.BindPip(pip, arc.Net, device.StrengthWeak); err != nil {
					return false, fmt.Errorf("%w: bind pip to %s: %v", ErrContract, dev.WireName(cursor), err)
				}
			}
		}

		r.book.bind(arc, cursor)

		if pip == device.NoPip {
			break
		}
		cursor = dev.PipSrc(pip)
	}

	if r.ripupFlag {
		r.arcsWithRipup++
	} else {
		r.arcsWithoutRipup++
	}

	return true, nil
}
