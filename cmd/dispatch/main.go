package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RTradeLtd/Dispatch/config"
	"github.com/RTradeLtd/Dispatch/internal"
)

// Version denotes the version of Dispatch in use
var Version string

func init() {
	if Version == "" {
		Version = "version unknown"
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		internal.Fatal(err.Error())
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		devMode    bool
	)

	root := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch routes app requests to controllers and dynamic views",
		Long: `Dispatch is the request routing service for hosted apps. Requests that
match no registered action are reinterpreted as {app}/{controller}/{action}/{id}
and rendered through a dynamic view.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if devMode {
				println("[WARNING] dev mode enabled")
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config.json",
		"path to Dispatch configuration file (.json, .yaml or .yml)")
	root.PersistentFlags().BoolVar(&devMode, "dev", os.Getenv("MODE") == "development",
		"toggle dev mode, alternatively set using MODE=development")

	root.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "initialize configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.GenerateConfig(configPath, devMode); err != nil {
					return fmt.Errorf("failed to generate configuration: %s", err.Error())
				}
				println("dispatch configuration generated at " + configPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "daemon",
			Short: "spin up the Dispatch daemon",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				runDaemon(configPath, devMode)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "display program version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				println("Dispatch " + Version)
			},
		},
	)

	return root
}
