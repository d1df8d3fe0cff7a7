// Package router defines the Arc unit of work, sentinel errors, functional
// options and the Result type for the negotiated-congestion router.
package router

import (
	"errors"

	"github.com/katalvlaran/lvlroute/device"
)

// Sentinel errors for routing operations.
var (
	// ErrNilDevice indicates a nil device was passed to Run or Validate.
	ErrNilDevice = errors.New("router: device is nil")

	// ErrTopology indicates a malformed netlist: a missing source or sink
	// wire, two nets sharing a source wire, a wire used as both source and
	// sink, or one sink wire claimed by two different nets.
	ErrTopology = errors.New("router: netlist topology error")

	// ErrUnroutable indicates the search exhausted the device graph without
	// reaching an arc's sink.
	ErrUnroutable = errors.New("router: arc cannot be routed")

	// ErrIterLimit indicates the outer loop hit the configured iteration cap
	// with arcs still pending.
	ErrIterLimit = errors.New("router: iteration limit exhausted")

	// ErrContract indicates the device broke the interface contract, e.g. a
	// resource still unavailable after its conflicts were ripped up.
	ErrContract = errors.New("router: device interface contract violation")

	// ErrInvariant indicates internal router bookkeeping went out of sync
	// (reported by the optional invariant checker).
	ErrInvariant = errors.New("router: internal invariant violated")

	// Validator findings.

	// ErrUnrouted indicates a net whose source or one of whose sinks is not
	// bound.
	ErrUnrouted = errors.New("router: unrouted sink or source")
	// ErrLoop indicates a cycle in a net's bound routing tree.
	ErrLoop = errors.New("router: routing loop")
	// ErrStub indicates a leaf wire that is not a declared sink.
	ErrStub = errors.New("router: routing stub")
	// ErrDangling indicates bound wires unreachable from the net's source.
	ErrDangling = errors.New("router: dangling wires")
)

// Arc is the unit of routing work: one sink of one net.
type Arc struct {
	Net  device.Net
	Sink int
}

// Logf is the signature of the progress/log hook.
type Logf func(format string, args ...any)

// Options configures a routing run.
//
// MaxIterCnt caps the number of outer-loop iterations (arc pops); zero means
// unbounded, relying on natural termination. CleanupReroute and
// FullCleanupReroute are recognised but currently gate nothing; they are
// kept so option files round-trip. UseEstimate enables the A* heuristic term
// and its pruning; disabling it degrades the search to uniform-cost.
type Options struct {
	MaxIterCnt         int
	CleanupReroute     bool
	FullCleanupReroute bool
	UseEstimate        bool

	// InvariantChecks enables the internal consistency checker after setup
	// and every 1,000 iterations. Independent of build flags.
	InvariantChecks bool

	// Log receives the progress table, warnings and the final checksum
	// line. Nil means silent.
	Log Logf
}

// Option is a functional option for configuring Run.
type Option func(*Options)

// WithMaxIterations caps the outer loop at n arc pops; exhausting the cap
// returns ErrIterLimit. Panics if n is negative.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("router: WithMaxIterations requires n >= 0")
		}
		o.MaxIterCnt = n
	}
}

// WithoutEstimate disables the A* heuristic term and its pruning.
func WithoutEstimate() Option {
	return func(o *Options) { o.UseEstimate = false }
}

// WithoutCleanupReroute clears CleanupReroute and FullCleanupReroute. Both
// are reserved knobs; no routing behaviour depends on them.
func WithoutCleanupReroute() Option {
	return func(o *Options) {
		o.CleanupReroute = false
		o.FullCleanupReroute = false
	}
}

// WithInvariantChecks enables the internal consistency checker.
func WithInvariantChecks() Option {
	return func(o *Options) { o.InvariantChecks = true }
}

// WithLogf installs the progress/log hook.
func WithLogf(fn Logf) Option {
	return func(o *Options) { o.Log = fn }
}

// DefaultOptions returns the defaults: no iteration cap, cleanup reroutes
// allowed, estimate enabled, invariant checks off, silent.
func DefaultOptions() Options {
	return Options{
		MaxIterCnt:         0,
		CleanupReroute:     true,
		FullCleanupReroute: true,
		UseEstimate:        true,
	}
}

// Result reports the outcome of a successful routing run.
type Result struct {
	// Iterations is the number of outer-loop arc pops performed.
	Iterations int
	// ArcsWithRipup counts arcs whose routing displaced other resources.
	ArcsWithRipup int
	// ArcsWithoutRipup counts arcs routed without any rip-up.
	ArcsWithoutRipup int
	// Checksum is the device binding-state digest after routing.
	Checksum uint32
}

// penalties holds the cost-model scalars, all derived from the device's
// RipupDelayPenalty.
type penalties struct {
	wireRipup         device.Delay
	netRipup          device.Delay
	wireReuseBonus    device.Delay
	pipReuseBonus     device.Delay
	estimatePrecision device.Delay
}

func derivePenalties(dev device.Device) penalties {
	base := dev.RipupDelayPenalty()

	return penalties{
		wireRipup:         base,
		netRipup:          10 * base,
		wireReuseBonus:    base / 8,
		pipReuseBonus:     base / 2,
		estimatePrecision: 100 * base,
	}
}
