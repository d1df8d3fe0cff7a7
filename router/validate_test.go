package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlroute/device"
	"github.com/katalvlaran/lvlroute/griddev"
	"github.com/katalvlaran/lvlroute/router"
)

func TestValidate_DetectsLoop(t *testing.T) {
	dev := griddev.New()
	a, err := dev.AddWire("A", 10)
	require.NoError(t, err)
	b, err := dev.AddWire("B", 10)
	require.NoError(t, err)
	pAB, err := dev.AddPip(a, b, 5)
	require.NoError(t, err)
	pBA, err := dev.AddPip(b, a, 5)
	require.NoError(t, err)

	n, err := dev.AddNet("loopy", a)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, b, 0))

	// Craft a cyclic binding: B driven from A, A driven from B. The source
	// wire ends up bound through a pip, so the walk from it re-enters
	// itself.
	require.NoError(t, dev.BindPip(pAB, n, device.StrengthWeak))
	require.NoError(t, dev.BindPip(pBA, n, device.StrengthWeak))

	err = router.Validate(dev)
	require.ErrorIs(t, err, router.ErrLoop)
	require.Contains(t, err.Error(), "loopy")
}

func TestValidate_DetectsStub(t *testing.T) {
	dev, err := griddev.NewGrid(3, 1)
	require.NoError(t, err)
	w0, _ := dev.GridWire(0, 0)
	w1, _ := dev.GridWire(1, 0)
	w2, _ := dev.GridWire(2, 0)

	n, err := dev.AddNet("stubby", w0)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, w1, 0))

	p01, _ := dev.PipBetween(w0, w1)
	p12, _ := dev.PipBetween(w1, w2)
	require.NoError(t, dev.BindWire(w0, n, device.StrengthWeak))
	require.NoError(t, dev.BindPip(p01, n, device.StrengthWeak))
	// w2 is bound but is not a declared sink: a stub leaf.
	require.NoError(t, dev.BindPip(p12, n, device.StrengthWeak))

	require.ErrorIs(t, router.Validate(dev), router.ErrStub)
}

func TestValidate_DetectsDangling(t *testing.T) {
	dev, err := griddev.NewGrid(2, 2)
	require.NoError(t, err)
	w00, _ := dev.GridWire(0, 0)
	w10, _ := dev.GridWire(1, 0)
	w01, _ := dev.GridWire(0, 1)
	w11, _ := dev.GridWire(1, 1)

	n, err := dev.AddNet("dangly", w00)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, w10, 0))

	p, _ := dev.PipBetween(w00, w10)
	require.NoError(t, dev.BindWire(w00, n, device.StrengthWeak))
	require.NoError(t, dev.BindPip(p, n, device.StrengthWeak))

	// A bound island not reachable from the source.
	pIsland, _ := dev.PipBetween(w01, w11)
	require.NoError(t, dev.BindPip(pIsland, n, device.StrengthWeak))

	require.ErrorIs(t, router.Validate(dev), router.ErrDangling)
}

func TestValidate_DetectsUnrouted(t *testing.T) {
	dev, err := griddev.NewGrid(2, 1)
	require.NoError(t, err)
	w0, _ := dev.GridWire(0, 0)
	w1, _ := dev.GridWire(1, 0)

	n, err := dev.AddNet("bare", w0)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, w1, 0))

	require.ErrorIs(t, router.Validate(dev), router.ErrUnrouted)
}

func TestValidate_Idempotent(t *testing.T) {
	dev, err := griddev.NewGrid(3, 3)
	require.NoError(t, err)
	src, _ := dev.GridWire(0, 0)
	dst, _ := dev.GridWire(2, 2)

	n, err := dev.AddNet("ok", src)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, dst, 100))

	_, err = router.Run(dev)
	require.NoError(t, err)

	before := dev.Checksum()
	require.NoError(t, router.Validate(dev))
	require.NoError(t, router.Validate(dev), "revalidation of an unchanged binding")
	require.Equal(t, before, dev.Checksum(), "validation must not mutate state")
}

func TestRouteDelay_SumsPathDelays(t *testing.T) {
	dev, err := griddev.NewGrid(4, 1)
	require.NoError(t, err)
	src, _ := dev.GridWire(0, 0)
	dst, _ := dev.GridWire(3, 0)

	n, err := dev.AddNet("path", src)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, dst, 200))

	_, err = router.Run(dev)
	require.NoError(t, err)

	// Three hops: 4 wires at 10 plus 3 pips at 5.
	d, err := router.RouteDelay(dev, n, 0)
	require.NoError(t, err)
	require.Equal(t, device.Delay(55), d)
}

func TestRouteDelay_UnroutedArc(t *testing.T) {
	dev, err := griddev.NewGrid(2, 1)
	require.NoError(t, err)
	src, _ := dev.GridWire(0, 0)
	dst, _ := dev.GridWire(1, 0)

	n, err := dev.AddNet("un", src)
	require.NoError(t, err)
	require.NoError(t, dev.AddSink(n, dst, 0))

	_, err = router.RouteDelay(dev, n, 0)
	require.ErrorIs(t, err, router.ErrUnrouted)
}
