package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "flashdemo",
		Short:         "Terminal demo of scoped, self-expiring flash messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.flash/config.toml)")

	cmd.AddCommand(
		newRunCommand(&configPath),
		newHistoryCommand(&configPath),
		newConfigCommand(&configPath),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
