// Package router_test provides runnable examples for the router API.
package router_test

import (
	"fmt"

	"github.com/katalvlaran/lvlroute/griddev"
	"github.com/katalvlaran/lvlroute/router"
)

// ExampleRun routes a single diagonal net across a 3x3 grid fabric and
// validates the resulting binding.
func ExampleRun() {
	// 1) Build a 3x3 grid device: wires X0Y0..X2Y2, orthogonal pips.
	dev, err := griddev.NewGrid(3, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) Declare one net from corner to corner with a slack budget.
	src, _ := dev.GridWire(0, 0)
	dst, _ := dev.GridWire(2, 2)
	n, _ := dev.AddNet("sig", src)
	_ = dev.AddSink(n, dst, 100)

	// 3) Route every arc.
	res, err := router.Run(dev)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 4) The single arc routes cleanly, and the binding is a legal tree.
	fmt.Printf("routed=%d ripup=%d\n", res.ArcsWithoutRipup, res.ArcsWithRipup)
	fmt.Println("valid:", router.Validate(dev) == nil)
	// Output:
	// routed=1 ripup=0
	// valid: true
}

// ExampleRouteDelay reports the post-routing delay of a routed arc: four
// wires at delay 10 joined by three pips at delay 5.
func ExampleRouteDelay() {
	dev, err := griddev.NewGrid(4, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	src, _ := dev.GridWire(0, 0)
	dst, _ := dev.GridWire(3, 0)
	n, _ := dev.AddNet("row", src)
	_ = dev.AddSink(n, dst, 200)

	if _, err = router.Run(dev); err != nil {
		fmt.Println("error:", err)
		return
	}

	d, err := router.RouteDelay(dev, n, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("delay:", d)
	// Output: delay: 55
}
