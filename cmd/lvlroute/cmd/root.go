package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lvlroute",
	Short: "lvlroute - negotiated-congestion detail router",
	Long: `lvlroute routes placed netlists over a grid routing fabric using
negotiated congestion with rip-up-and-reroute.

Examples:
  lvlroute route --width 8 --height 8 --rand-nets 10
  lvlroute route --netlist design.net --options router.yaml -v`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
