package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dictlens/internal/cli"
)

func newCacheCommand() *cobra.Command {
	cacheCommand := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the offline cache",
	}

	output := OutputFlag(cli.OutputText)
	statusCommand := &cobra.Command{
		Use:   "status",
		Short: "List the caches and their entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			g, err := newGateway(cfg)
			if err != nil {
				return err
			}
			return cli.CacheStatus(g, cmd.OutOrStdout(), cli.OutputFormat(output))
		},
	}
	statusCommand.Flags().VarP(&output, "output", "o", "Output format. Options: text, yaml")

	cacheCommand.AddCommand(statusCommand, &cobra.Command{
		Use:   "clear",
		Short: "Delete every cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			g, err := newGateway(cfg)
			if err != nil {
				return err
			}
			return cli.CacheClear(g, cmd.OutOrStdout())
		},
	})
	return cacheCommand
}
