package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "waypoint",
	Short:   "Demo server for the waypoint router",
	Long: `Waypoint serves a small demo application built on the router:
plain routes, parameters, a catch-all and a WebSocket echo endpoint.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
