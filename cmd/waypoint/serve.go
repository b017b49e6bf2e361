package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint/app"
	"github.com/dmitrymomot/waypoint/core/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the demo HTTP server. Settings come from the environment and .env.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (env: SERVER_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func newApp(cmd *cobra.Command) (*app.App, error) {
	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("addr") {
		addr, _ := cmd.Flags().GetString("addr")
		cfg.Server.Addr = addr
	}

	a, err := app.NewWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	registerRoutes(a.Router())
	a.MountHealth()
	return a, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}
