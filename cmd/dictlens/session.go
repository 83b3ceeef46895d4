package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dictlens/internal/cli"
	"github.com/at-ishikawa/dictlens/internal/store"
)

func newSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive lookup session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			kv, err := store.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("store.Open > %w", err)
			}
			defer func() {
				_ = kv.Close()
			}()

			client, err := newLookupClient(ctx, cfg)
			if err != nil {
				return err
			}
			session := cli.NewSession(client, kv, cmd.InOrStdin(), cmd.OutOrStdout(), searchOptions(cfg))
			return session.Run(ctx)
		},
	}
}
