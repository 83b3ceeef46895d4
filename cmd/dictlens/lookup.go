package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dictlens/internal/cli"
	"github.com/at-ishikawa/dictlens/internal/render"
)

func newLookupCommand() *cobra.Command {
	mode := ModeFlag(render.ModePlain)
	command := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look a word up once without recording it in the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			client, err := newLookupClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return cli.LookupOnce(client, cmd.OutOrStdout(), args[0], render.Mode(mode), searchOptions(cfg))
		},
	}
	command.Flags().Var(&mode, "mode", "Display mode. Options: plain, annotated")
	return command
}
