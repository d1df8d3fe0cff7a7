package router

import (
	"container/heap"

	"github.com/katalvlaran/lvlroute/device"
)

// arcEntry pairs a pending arc with its priority: the estimated
// source→sink delay minus the sink's timing budget. The smallest value pops
// first, so an arc whose budget most exceeds its estimate routes earliest.
type arcEntry struct {
	arc Arc
	pri device.Delay
}

// arcHeap is a min-heap of arcEntry ordered by pri ascending. Ties are
// broken arbitrarily; the outer loop does not depend on the tie order.
type arcHeap []arcEntry

func (h arcHeap) Len() int            { return len(h) }
func (h arcHeap) Less(i, j int) bool  { return h[i].pri < h[j].pri }
func (h arcHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *arcHeap) Push(x interface{}) { *h = append(*h, x.(arcEntry)) }
func (h *arcHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// arcQueue is the outer priority queue of arcs awaiting (re)routing. The
// companion queued set suppresses duplicates: each arc sits in the heap at
// most once, and membership mirrors heap contents exactly.
type arcQueue struct {
	heap   arcHeap
	queued map[Arc]struct{}
}

func newArcQueue() arcQueue {
	return arcQueue{queued: make(map[Arc]struct{})}
}

// insert enqueues a, resolving its source and sink wires from the device.
func (q *arcQueue) insert(dev device.Device, a Arc) {
	if _, ok := q.queued[a]; ok {
		return
	}
	src := dev.SourceWire(a.Net)
	dst := dev.SinkWire(a.Net, a.Sink)
	q.insertWires(dev, a, src, dst)
}

// insertWires enqueues a with pre-resolved wires, for callers holding wires
// the device state does not yet reflect.
func (q *arcQueue) insertWires(dev device.Device, a Arc, src, dst device.Wire) {
	if _, ok := q.queued[a]; ok {
		return
	}

	pri := dev.EstimateDelay(src, dst) - dev.SinkBudget(a.Net, a.Sink)

	heap.Push(&q.heap, arcEntry{arc: a, pri: pri})
	q.queued[a] = struct{}{}
}

// pop removes and returns the arc with the smallest priority.
func (q *arcQueue) pop() Arc {
	entry := heap.Pop(&q.heap).(arcEntry)
	delete(q.queued, entry.arc)

	return entry.arc
}

func (q *arcQueue) len() int { return len(q.heap) }
