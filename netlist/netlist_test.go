package netlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlroute/device"
	"github.com/katalvlaran/lvlroute/griddev"
	"github.com/katalvlaran/lvlroute/netlist"
	"github.com/katalvlaran/lvlroute/router"
)

const sample = `
-- two signals on a small grid
net "clk" {
  source X0Y0
  sink X2Y2 budget 100
  sink X1Y2 budget 50
}

net "gnd" {
  source X2Y0
  sink X2Y1
  global
}
`

func TestParseString(t *testing.T) {
	f, err := netlist.ParseString(sample)
	require.NoError(t, err)
	require.Len(t, f.Nets, 2)

	clk := f.Nets[0]
	require.Equal(t, "clk", clk.Name)
	require.Equal(t, "X0Y0", clk.Source)
	require.Len(t, clk.Sinks, 2)
	require.Equal(t, device.Delay(100), clk.Sinks[0].Budget)
	require.Equal(t, device.Delay(50), clk.Sinks[1].Budget)
	require.False(t, clk.Global)

	gnd := f.Nets[1]
	require.Equal(t, "gnd", gnd.Name)
	require.True(t, gnd.Global)
	require.Equal(t, device.Delay(0), gnd.Sinks[0].Budget, "budget defaults to zero")
}

func TestParseString_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"MissingBrace", `net "a" { source X0Y0 sink X1Y1`},
		{"MissingSource", `net "a" { sink X1Y1 }`},
		{"UnquotedName", `net a { source X0Y0 sink X1Y1 }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := netlist.ParseString(tc.input)
			require.ErrorIs(t, err, netlist.ErrParse)
		})
	}
}

func TestApply_ResolvesAndRoutes(t *testing.T) {
	dev, err := griddev.NewGrid(3, 3)
	require.NoError(t, err)

	f, err := netlist.ParseString(sample)
	require.NoError(t, err)
	require.NoError(t, netlist.Apply(dev, f))

	res, err := router.Run(dev)
	require.NoError(t, err)
	require.Equal(t, 2, res.ArcsWithRipup+res.ArcsWithoutRipup, "clk has two arcs, gnd is global")
	require.NoError(t, router.Validate(dev))
}

func TestApply_UnknownWire(t *testing.T) {
	dev, err := griddev.NewGrid(2, 2)
	require.NoError(t, err)

	f, err := netlist.ParseString(`net "a" { source X9Y9 sink X0Y0 }`)
	require.NoError(t, err)

	require.ErrorIs(t, netlist.Apply(dev, f), griddev.ErrUnknownWire)
}
