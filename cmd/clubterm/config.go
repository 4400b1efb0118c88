package main

import (
	"fmt"

	"github.com/connectclub/clubterm/pkg/config"
	"github.com/spf13/cobra"
)

func configCommand() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if write {
				if err := cfg.WriteConfig(); err != nil {
					return fmt.Errorf("write config file: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfg.ConfigPath())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the configuration to the config file")
	return cmd
}
