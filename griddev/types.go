// Package griddev defines sentinel errors and construction options for the
// in-memory reference device.
package griddev

import (
	"errors"

	"github.com/katalvlaran/lvlroute/device"
)

// Sentinel errors for griddev operations.
var (
	// ErrEmptyGrid indicates a grid dimension of zero or less.
	ErrEmptyGrid = errors.New("griddev: grid must have at least one column and one row")
	// ErrWireExists indicates a duplicate wire name.
	ErrWireExists = errors.New("griddev: wire name already exists")
	// ErrUnknownWire indicates a wire handle or name that is not part of the device.
	ErrUnknownWire = errors.New("griddev: unknown wire")
	// ErrUnknownPip indicates a pip handle that is not part of the device.
	ErrUnknownPip = errors.New("griddev: unknown pip")
	// ErrUnknownNet indicates a net handle that is not part of the device.
	ErrUnknownNet = errors.New("griddev: unknown net")
	// ErrBound indicates a bind attempt on an already-bound resource.
	ErrBound = errors.New("griddev: resource already bound")
	// ErrNotBound indicates an unbind attempt on an unbound wire.
	ErrNotBound = errors.New("griddev: wire not bound")
	// ErrLocked indicates an unbind attempt on a StrengthLocked binding.
	ErrLocked = errors.New("griddev: binding is locked")
)

// Options contains tunable parameters for a reference device.
//
// WireDelay and PipDelay are the defaults applied by the grid generator;
// wires and pips added individually carry their own delays.
type Options struct {
	// Seed initialises the xorshift32 RNG (must be non-zero).
	Seed uint32
	// WireDelay is the per-segment delay used by NewGrid.
	WireDelay device.Delay
	// PipDelay is the per-switch delay used by NewGrid.
	PipDelay device.Delay
	// DelayEpsilon is the smallest meaningful delay difference.
	DelayEpsilon device.Delay
	// RipupDelayPenalty is the base penalty scalar reported to the router.
	RipupDelayPenalty device.Delay

	constRand    int32
	useConstRand bool
}

// Option is a functional option for configuring a reference device.
type Option func(*Options)

// WithSeed sets the RNG seed. Zero is replaced by the default seed.
func WithSeed(seed uint32) Option {
	return func(o *Options) {
		if seed != 0 {
			o.Seed = seed
		}
	}
}

// WithWireDelay sets the default per-wire delay used by the grid generator.
func WithWireDelay(d device.Delay) Option {
	return func(o *Options) { o.WireDelay = d }
}

// WithPipDelay sets the default per-pip delay used by the grid generator.
func WithPipDelay(d device.Delay) Option {
	return func(o *Options) { o.PipDelay = d }
}

// WithRipupDelayPenalty sets the base rip-up penalty scalar.
func WithRipupDelayPenalty(d device.Delay) Option {
	return func(o *Options) { o.RipupDelayPenalty = d }
}

// WithConstRand pins the RNG to a constant value. Every Rand call returns v,
// which removes random tie-breaking from the search.
func WithConstRand(v int32) Option {
	return func(o *Options) {
		o.constRand = v
		o.useConstRand = true
	}
}

// DefaultOptions returns the Options used when none are supplied:
// Seed=1, WireDelay=10, PipDelay=5, DelayEpsilon=1, RipupDelayPenalty=100.
func DefaultOptions() Options {
	return Options{
		Seed:              1,
		WireDelay:         10,
		PipDelay:          5,
		DelayEpsilon:      1,
		RipupDelayPenalty: 100,
	}
}
