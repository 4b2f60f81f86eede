package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "soustackgw",
		Short:         "Recipe ingestion tool gateway",
		Long:          "soustackgw exposes the recipe ingestion pipeline as tools over NDJSON stdio or HTTP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the log level (debug, info, warn, error)")

	serve := newServeCmd(opts)
	root.AddCommand(
		serve,
		newServeHTTPCmd(opts),
		newToolsCmd(opts),
		newTokenCmd(opts),
	)

	// Running the bare binary serves stdio.
	root.RunE = serve.RunE
	return root
}
