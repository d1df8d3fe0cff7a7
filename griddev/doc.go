// Package griddev provides an in-memory reference implementation of the
// device.Device interface: a small routing fabric built either wire-by-wire
// or as a regular 2D grid of segments joined by directional pips.
//
// It is the device the test suites, examples and the lvlroute CLI run
// against. The implementation keeps the full binding state (wire→net,
// pip→net, per-net wires-of-net maps), answers availability and conflict
// queries against it, and digests the state into a checksum.
//
// Construction is builder-style:
//
//	d := griddev.New()
//	a, _ := d.AddWire("A", 10)
//	b, _ := d.AddWire("B", 10)
//	p, _ := d.AddPip(a, b, 5)
//	n, _ := d.AddNet("sig", a)
//	_ = d.AddSink(n, b, 100)
//
// or via the grid generator:
//
//	d, _ := griddev.NewGrid(8, 8)
//	w, _ := d.GridWire(3, 5) // wire named "X3Y5"
//
// Grid wires carry coordinates, which back an admissible Manhattan-distance
// delay estimator. Wires added with AddWire have no coordinates and estimate
// as zero.
//
// ExcludeWires declares a mutual-exclusion group: binding one member makes
// the others unavailable, and ConflictingWireWire names the bound member.
// This models architectures where distinct wires share physical metal.
//
// The RNG is a seeded xorshift32 (WithSeed), so routing runs are
// reproducible; WithConstRand pins it to a constant for order-independence
// tests.
package griddev
