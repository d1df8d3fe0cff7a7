package router

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/device"
)

// Validate structurally checks the device's current binding state, net by
// net: the source and every sink must be bound, the bound wires must form a
// tree rooted at the source (no loops), every leaf must be a declared sink
// (no stubs), and no wire that drives another bound wire through a pip may
// be unreachable from the source (no dangling). A bound wire with no
// incoming pip and no children, other than the source, is not reported.
// Driverless and global nets are skipped, as in routing.
//
// Validate only reads the binding state; re-running it on an unchanged
// binding returns the same result.
func Validate(dev device.Device) error {
	if dev == nil {
		return ErrNilDevice
	}

	for _, n := range dev.Nets() {
		if dev.NetIsGlobal(n) || !dev.NetHasDriver(n) {
			continue
		}
		if err := validateNet(dev, n); err != nil {
			return err
		}
	}

	return nil
}

func validateNet(dev device.Device, n device.Net) error {
	name := dev.NetName(n)

	if dev.SinkCount(n) == 0 {
		if dev.NetWireCount(n) != 0 {
			return fmt.Errorf("%w: net %s has no sinks but %d bound wires",
				ErrDangling, name, dev.NetWireCount(n))
		}

		return nil
	}

	srcWire := dev.SourceWire(n)
	if srcWire == device.NoWire {
		return fmt.Errorf("%w: no source wire for net %s", ErrTopology, name)
	}

	// Child map: each wire bound through a pip is a child of the pip's
	// source wire.
	netWires := dev.NetWires(n)
	children := make(map[device.Wire][]device.Wire, len(netWires))
	for _, w := range netWires {
		binding, _ := dev.NetBinding(n, w)
		if binding.Pip == device.NoPip {
			continue
		}
		if dev.PipDst(binding.Pip) != w {
			return fmt.Errorf("%w: wire %s of net %s bound through a pip that does not drive it",
				ErrContract, dev.WireName(w), name)
		}
		parent := dev.PipSrc(binding.Pip)
		children[parent] = append(children[parent], w)
	}

	unrouted := false
	if _, ok := dev.NetBinding(n, srcWire); !ok {
		unrouted = true
	}

	sinks := make(map[device.Wire]int, dev.SinkCount(n))
	for idx := 0; idx < dev.SinkCount(n); idx++ {
		dstWire := dev.SinkWire(n, idx)
		if dstWire == device.NoWire {
			return fmt.Errorf("%w: no wire for sink %d of net %s", ErrTopology, idx, name)
		}
		sinks[dstWire] = idx
		if _, ok := dev.NetBinding(n, dstWire); !ok {
			unrouted = true
		}
	}

	// DFS from the source, labelling each reached wire with an increasing
	// order number. Revisiting a labelled wire is a loop; a leaf that is
	// not a declared sink is a stub.
	orderNum := make(map[device.Wire]int)
	loop := false
	stub := false

	var walk func(w device.Wire, num int)
	walk = func(w device.Wire, num int) {
		if orderNum[w] != 0 {
			loop = true

			return
		}
		orderNum[w] = num

		kids := children[w]
		for _, child := range kids {
			walk(child, num+1)
		}
		if len(kids) == 0 {
			if _, isSink := sinks[w]; !isSink {
				stub = true
			}
		}
	}
	walk(srcWire, 1)

	// Any parent in the child map that never got a label is unreachable
	// from the source.
	dangling := false
	for parent := range children {
		if orderNum[parent] == 0 {
			dangling = true
		}
	}

	switch {
	case unrouted:
		return fmt.Errorf("%w: net %s", ErrUnrouted, name)
	case loop:
		return fmt.Errorf("%w: net %s", ErrLoop, name)
	case stub:
		return fmt.Errorf("%w: net %s", ErrStub, name)
	case dangling:
		return fmt.Errorf("%w: net %s", ErrDangling, name)
	}

	return nil
}
