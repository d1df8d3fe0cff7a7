// Package router implements a negotiated-congestion detail router for
// placed netlists over a device.Device routing fabric.
//
// Each (net, sink) pair — an arc — is routed independently by an A*-style
// search over the implicit wire/pip graph, with a cost function that folds
// together accumulated delay, penalties for resources that would have to be
// ripped up, a bonus for reusing wires already carrying the same net, and an
// admissible delay estimate to the sink. An outer loop drains a priority
// queue of pending arcs, ordered by estimated delay minus timing budget,
// smallest first.
//
// When the best path runs through occupied resources, the router rips them
// up: the displaced arcs are re-queued and per-resource scores are bumped,
// which escalates the penalty every time the same wire or net is contested
// again. Previously cheap conflicts grow progressively unattractive, and the
// negotiation converges.
//
// Entry points:
//
//   - Run(dev, opts...) — set up, drain the queue, return counters and the
//     binding checksum.
//   - Validate(dev)     — structural check of the final binding: no loops,
//     no stubs, no dangling wires, no unrouted sinks.
//   - RouteDelay(dev, net, sink) — post-routing delay of one bound arc.
//
// Complexity:
//
//   - One arc search visits each wire at most a handful of times; the
//     frontier uses a lazy min-heap ("first arrival wins unless strictly
//     improved" — no decrease-key).
//   - The outer loop has no fixed iteration bound by default: every clean
//     route removes an arc, and score escalation bounds repeated rip-up of
//     the same resource. WithMaxIterations adds a hard cap.
//
// The whole routing call holds the device lock; all router state
// (the wire↔arc book, scores, queues, per-search visited map) is private to
// the call. Determinism depends only on the device RNG used for search
// tie-breaking; Go map iteration order never reaches a routing decision.
package router
