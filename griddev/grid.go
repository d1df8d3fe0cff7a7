package griddev

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/device"
)

// NewGrid builds a device with width×height wires named "X<x>Y<y>" and
// directional pips in both directions between orthogonal neighbours. Wire
// and pip delays come from the options (WithWireDelay / WithPipDelay).
func NewGrid(width, height int, opts ...Option) (*Device, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}

	d := New(opts...)
	d.gridW, d.gridH = width, height

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if _, err := d.AddWireAt(gridWireName(x, y), d.opt.WireDelay, x, y); err != nil {
				return nil, err
			}
		}
	}

	// Orthogonal pips, one per direction.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			w, _ := d.GridWire(x, y)
			if x+1 < width {
				e, _ := d.GridWire(x+1, y)
				if _, err := d.AddPip(w, e, d.opt.PipDelay); err != nil {
					return nil, err
				}
				if _, err := d.AddPip(e, w, d.opt.PipDelay); err != nil {
					return nil, err
				}
			}
			if y+1 < height {
				s, _ := d.GridWire(x, y+1)
				if _, err := d.AddPip(w, s, d.opt.PipDelay); err != nil {
					return nil, err
				}
				if _, err := d.AddPip(s, w, d.opt.PipDelay); err != nil {
					return nil, err
				}
			}
		}
	}

	return d, nil
}

// GridWire resolves grid coordinates to the wire handle.
func (d *Device) GridWire(x, y int) (device.Wire, error) {
	if x < 0 || y < 0 || x >= d.gridW || y >= d.gridH {
		return device.NoWire, fmt.Errorf("%w: no grid wire at (%d,%d)", ErrUnknownWire, x, y)
	}
	w, ok := d.byName[gridWireName(x, y)]
	if !ok {
		return device.NoWire, fmt.Errorf("%w: no grid wire at (%d,%d)", ErrUnknownWire, x, y)
	}

	return w, nil
}

func gridWireName(x, y int) string { return fmt.Sprintf("X%dY%d", x, y) }
