// Package cli wires the cobra command tree. Each subcommand builds a session
// (config, logging, step registry, engine) against the current working
// directory and runs one workflow to completion.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Execute runs the root command and exits nonzero on error.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "wheelhouse",
		Short:        "Build, verify, and publish a Python package",
		Long: "wheelhouse drives the release workflow of a Python package: it builds\n" +
			"the distribution artifacts, gates them on twine check, smoke-tests the\n" +
			"installed package, and uploads to the package index after review.\n\n" +
			"Run it from the project root (the directory with pyproject.toml).",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "alternate config file (default .wheelhouse/config.yaml)")

	cmd.AddCommand(publishCmd(&configPath))
	cmd.AddCommand(verifyCmd(&configPath))
	cmd.AddCommand(runCmd(&configPath))
	return cmd
}
