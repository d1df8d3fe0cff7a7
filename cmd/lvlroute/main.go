package main

import "github.com/katalvlaran/lvlroute/cmd/lvlroute/cmd"

func main() {
	cmd.Execute()
}
