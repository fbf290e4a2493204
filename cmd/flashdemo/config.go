package main

import (
	"fmt"

	"github.com/matheus3301/flash/internal/config"
	"github.com/matheus3301/flash/internal/paths"
	"github.com/spf13/cobra"
)

func newConfigCommand(configPath *string) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if write {
				path := *configPath
				if path == "" {
					path = paths.ConfigPath()
				}
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the effective configuration to the config file")
	return cmd
}
