// Package lvlroute is a negotiated-congestion detail router for placed
// netlists over FPGA-like routing fabrics.
//
// 🚀 What is lvlroute?
//
//	A small, deterministic routing engine that brings together:
//		• device/  — value-typed Wire/Pip/Net handles and the narrow Device
//		  interface the router consumes
//		• griddev/ — an in-memory reference fabric: arbitrary wires and pips
//		  or a generated 2D grid, with binding state, conflict queries,
//		  a seeded RNG and a binding checksum
//		• router/  — the core: per-arc A* search with delay, rip-up
//		  penalties, reuse bonuses and an admissible estimate; an outer
//		  rip-up-and-reroute loop keyed by timing slack; a structural
//		  validator and a post-routing delay query
//		• netlist/ — a declarative net description parser
//		• cmd/lvlroute — a CLI front-end
//
// ✨ Why lvlroute?
//
//   - Implicit graphs – wires and pips are opaque handles; successors come
//     from the device, nothing is materialised
//   - Negotiated congestion – contested resources accumulate scores, so
//     repeated conflicts grow progressively more expensive until routing
//     converges
//   - Reproducible – all tie-breaking flows from the device's seeded RNG
//
// Quick start:
//
//	dev, _ := griddev.NewGrid(8, 8)
//	src, _ := dev.GridWire(0, 0)
//	dst, _ := dev.GridWire(7, 7)
//	n, _ := dev.AddNet("sig", src)
//	_ = dev.AddSink(n, dst, 100)
//
//	res, err := router.Run(dev)
//	if err == nil {
//	    err = router.Validate(dev)
//	}
//
// Dive into the package docs for the cost model and the validator's
// structural rules.
package lvlroute
