package router

import "github.com/katalvlaran/lvlroute/device"

// scores holds the per-wire and per-net rip-up counters. Both only ever
// increase across a run; the search multiplies them into conflict penalties
// so repeatedly contested resources grow progressively more expensive.
type scores struct {
	wire map[device.Wire]int
	net  map[device.Net]int
}

func newScores() scores {
	return scores{
		wire: make(map[device.Wire]int),
		net:  make(map[device.Net]int),
	}
}
