package griddev_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lvlroute/device"
	"github.com/katalvlaran/lvlroute/griddev"
)

func TestNewGrid_Errors(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"ZeroWidth", 0, 3},
		{"ZeroHeight", 3, 0},
		{"Negative", -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := griddev.NewGrid(tc.w, tc.h); !errors.Is(err, griddev.ErrEmptyGrid) {
				t.Errorf("NewGrid(%d,%d) error = %v; want ErrEmptyGrid", tc.w, tc.h, err)
			}
		})
	}
}

func TestNewGrid_Topology(t *testing.T) {
	dev, err := griddev.NewGrid(3, 2)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	w, err := dev.GridWire(1, 1)
	if err != nil {
		t.Fatalf("GridWire error: %v", err)
	}
	if got := dev.WireName(w); got != "X1Y1" {
		t.Errorf("WireName = %q; want X1Y1", got)
	}

	// Interior-row wire (1,1) has neighbours (0,1), (2,1), (1,0).
	if got := len(dev.DownhillPips(w)); got != 3 {
		t.Errorf("DownhillPips(X1Y1) = %d pips; want 3", got)
	}

	if _, err = dev.GridWire(3, 0); !errors.Is(err, griddev.ErrUnknownWire) {
		t.Errorf("GridWire(3,0) error = %v; want ErrUnknownWire", err)
	}
}

func TestEstimateDelay_Manhattan(t *testing.T) {
	dev, err := griddev.NewGrid(4, 4)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	a, _ := dev.GridWire(0, 0)
	b, _ := dev.GridWire(3, 2)

	// 5 steps at (wire 10 + pip 5) each.
	if got := dev.EstimateDelay(a, b); got != 75 {
		t.Errorf("EstimateDelay = %d; want 75", got)
	}
	if got := dev.EstimateDelay(a, a); got != 0 {
		t.Errorf("EstimateDelay(self) = %d; want 0", got)
	}

	// Wires without coordinates estimate as zero.
	iso, _ := dev.AddWire("iso", 10)
	if got := dev.EstimateDelay(a, iso); got != 0 {
		t.Errorf("EstimateDelay(grid, coordless) = %d; want 0", got)
	}
}

func TestBindWire_Lifecycle(t *testing.T) {
	dev := griddev.New()
	w, _ := dev.AddWire("W", 10)
	n, _ := dev.AddNet("n", w)

	if !dev.CheckWireAvail(w) {
		t.Fatal("fresh wire must be available")
	}
	if err := dev.BindWire(w, n, device.StrengthWeak); err != nil {
		t.Fatalf("BindWire error: %v", err)
	}
	if dev.CheckWireAvail(w) {
		t.Error("bound wire must be unavailable")
	}
	if got := dev.ConflictingWireNet(w); got != n {
		t.Errorf("ConflictingWireNet = %v; want %v", got, n)
	}
	if err := dev.BindWire(w, n, device.StrengthWeak); !errors.Is(err, griddev.ErrBound) {
		t.Errorf("double bind error = %v; want ErrBound", err)
	}

	if err := dev.UnbindWire(w); err != nil {
		t.Fatalf("UnbindWire error: %v", err)
	}
	if !dev.CheckWireAvail(w) {
		t.Error("unbound wire must be available again")
	}
	if err := dev.UnbindWire(w); !errors.Is(err, griddev.ErrNotBound) {
		t.Errorf("double unbind error = %v; want ErrNotBound", err)
	}
}

func TestBindPip_BindsDestinationWire(t *testing.T) {
	dev := griddev.New()
	a, _ := dev.AddWire("A", 10)
	b, _ := dev.AddWire("B", 10)
	p, _ := dev.AddPip(a, b, 5)
	n, _ := dev.AddNet("n", a)

	if err := dev.BindPip(p, n, device.StrengthWeak); err != nil {
		t.Fatalf("BindPip error: %v", err)
	}
	binding, ok := dev.NetBinding(n, b)
	if !ok || binding.Pip != p {
		t.Fatalf("NetBinding(B) = %+v, %v; want pip %v", binding, ok, p)
	}
	if dev.CheckPipAvail(p) {
		t.Error("bound pip must be unavailable")
	}
	if got := dev.ConflictingPipNet(p); got != n {
		t.Errorf("ConflictingPipNet = %v; want %v", got, n)
	}

	// Unbinding the destination wire releases the pip too.
	if err := dev.UnbindWire(b); err != nil {
		t.Fatalf("UnbindWire error: %v", err)
	}
	if !dev.CheckPipAvail(p) {
		t.Error("pip must be available after its wire is unbound")
	}
}

func TestConflictingPipWire_ReportsBoundDestination(t *testing.T) {
	dev := griddev.New()
	a, _ := dev.AddWire("A", 10)
	b, _ := dev.AddWire("B", 10)
	c, _ := dev.AddWire("C", 10)
	pAB, _ := dev.AddPip(a, b, 5)
	pCB, _ := dev.AddPip(c, b, 5)
	n, _ := dev.AddNet("n", a)

	if err := dev.BindPip(pAB, n, device.StrengthWeak); err != nil {
		t.Fatalf("BindPip error: %v", err)
	}

	// pCB itself is unbound, but its destination carries a binding.
	if dev.CheckPipAvail(pCB) {
		t.Error("pip into a bound wire must be unavailable")
	}
	if got := dev.ConflictingPipWire(pCB); got != b {
		t.Errorf("ConflictingPipWire = %v; want %v", got, b)
	}
}

func TestExcludeWires_MutualExclusion(t *testing.T) {
	dev := griddev.New()
	a, _ := dev.AddWire("A", 10)
	b, _ := dev.AddWire("B", 10)
	if err := dev.ExcludeWires(a, b); err != nil {
		t.Fatalf("ExcludeWires error: %v", err)
	}
	n, _ := dev.AddNet("n", a)

	if err := dev.BindWire(a, n, device.StrengthWeak); err != nil {
		t.Fatalf("BindWire error: %v", err)
	}
	if dev.CheckWireAvail(b) {
		t.Error("exclusion partner of a bound wire must be unavailable")
	}
	if got := dev.ConflictingWireWire(b); got != a {
		t.Errorf("ConflictingWireWire = %v; want %v", got, a)
	}
	if got := dev.ConflictingWireNet(b); got != device.NoNet {
		t.Errorf("ConflictingWireNet = %v; want NoNet", got)
	}
}

func TestUnbindWire_Locked(t *testing.T) {
	dev := griddev.New()
	w, _ := dev.AddWire("W", 10)
	n, _ := dev.AddNet("n", w)

	if err := dev.BindWire(w, n, device.StrengthLocked); err != nil {
		t.Fatalf("BindWire error: %v", err)
	}
	if err := dev.UnbindWire(w); !errors.Is(err, griddev.ErrLocked) {
		t.Errorf("UnbindWire(locked) error = %v; want ErrLocked", err)
	}
}

func TestChecksum_TracksBindingState(t *testing.T) {
	dev := griddev.New()
	w, _ := dev.AddWire("W", 10)
	n, _ := dev.AddNet("n", w)

	empty := dev.Checksum()
	if err := dev.BindWire(w, n, device.StrengthWeak); err != nil {
		t.Fatalf("BindWire error: %v", err)
	}
	bound := dev.Checksum()
	if empty == bound {
		t.Error("checksum must change when a binding is added")
	}

	if err := dev.UnbindWire(w); err != nil {
		t.Fatalf("UnbindWire error: %v", err)
	}
	if got := dev.Checksum(); got != empty {
		t.Errorf("checksum after unbind = %#x; want %#x", got, empty)
	}
}

func TestRand_Deterministic(t *testing.T) {
	d1 := griddev.New(griddev.WithSeed(7))
	d2 := griddev.New(griddev.WithSeed(7))
	for i := 0; i < 16; i++ {
		a, b := d1.Rand(), d2.Rand()
		if a != b {
			t.Fatalf("Rand diverged at %d: %d vs %d", i, a, b)
		}
		if a < 0 {
			t.Fatalf("Rand returned negative value %d", a)
		}
	}

	pinned := griddev.New(griddev.WithConstRand(99))
	for i := 0; i < 4; i++ {
		if got := pinned.Rand(); got != 99 {
			t.Fatalf("pinned Rand = %d; want 99", got)
		}
	}
}
