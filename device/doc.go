// Package device defines the value-typed handles and the Device interface
// through which the router observes and mutates an FPGA routing fabric.
//
// The routing graph itself is never materialised: wires and pips are opaque
// handles, and each wire's successors come from a Device call
// (DownhillPips). The router owns no netlist data; everything it needs —
// driver and sink wires, per-sink timing budgets, delays, availability and
// conflict queries, binding mutations — goes through this interface.
//
// Handles:
//
//   - Wire — a physical routing segment.
//   - Pip  — a directional switch from one wire to another
//     ("programmable interconnect point").
//   - Net  — a logical signal with one driver and one or more sinks.
//
// All three are small value types with a sentinel "none" value (NoWire,
// NoPip, NoNet). They are safe to use as map keys and to copy freely;
// long-lived router state never holds pointers into the device database.
//
// Binding state:
//
// A Device maintains, per net, a wires-of-net map Wire → Binding. A Binding
// records the pip driving that wire (NoPip for the net's source wire) and a
// Strength. Bindings at StrengthLocked are immutable to the router; weaker
// bindings may be ripped up and rerouted.
package device
