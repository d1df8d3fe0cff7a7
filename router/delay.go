package router

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/device"
)

// RouteDelay computes the actual delay of one routed arc by walking the
// bound path from the sink back to the source, summing wire and pip delays.
// It requires a complete binding for the arc (ErrUnrouted otherwise) and
// rejects cyclic bindings (ErrLoop).
func RouteDelay(dev device.Device, n device.Net, sinkIdx int) (device.Delay, error) {
	if dev == nil {
		return 0, ErrNilDevice
	}
	srcWire := dev.SourceWire(n)
	dstWire := dev.SinkWire(n, sinkIdx)
	if srcWire == device.NoWire || dstWire == device.NoWire {
		return 0, fmt.Errorf("%w: arc %d of net %s has no endpoint wires",
			ErrTopology, sinkIdx, dev.NetName(n))
	}

	var total device.Delay
	cursor := dstWire
	for steps := 0; ; steps++ {
		if steps > dev.NetWireCount(n) {
			return 0, fmt.Errorf("%w: net %s", ErrLoop, dev.NetName(n))
		}

		binding, ok := dev.NetBinding(n, cursor)
		if !ok {
			return 0, fmt.Errorf("%w: wire %s of arc %d of net %s is not bound",
				ErrUnrouted, dev.WireName(cursor), sinkIdx, dev.NetName(n))
		}
		total += dev.WireDelay(cursor)

		if binding.Pip == device.NoPip {
			if cursor != srcWire {
				return 0, fmt.Errorf("%w: walk from sink %d of net %s ended at %s, not the source",
					ErrContract, sinkIdx, dev.NetName(n), dev.WireName(cursor))
			}

			return total, nil
		}
		total += dev.PipDelay(binding.Pip)
		cursor = dev.PipSrc(binding.Pip)
	}
}
