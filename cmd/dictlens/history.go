package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dictlens/internal/cli"
	"github.com/at-ishikawa/dictlens/internal/store"
)

func newHistoryCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Manage the search history",
	}

	output := OutputFlag(cli.OutputText)
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List the search history, newest first",
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
			return cli.ListHistory(ctx, kv, cmd.OutOrStdout(), cli.OutputFormat(output))
		},
	}
	listCommand.Flags().VarP(&output, "output", "o", "Output format. Options: text, yaml")

	clearCommand := &cobra.Command{
		Use:   "clear",
		Short: "Clear the search history",
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
			if err := cli.ClearHistory(ctx, kv); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	historyCommand.AddCommand(listCommand, clearCommand, newHistoryExportCommand())
	return historyCommand
}

func newHistoryExportCommand() *cobra.Command {
	format := ExportFormatFlag(cli.ExportMarkdown)
	var outputPath string
	var title string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the looked up words as a vocabulary sheet",
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

			if outputPath == "" {
				outputPath = "dictlens-" + time.Now().Format("20060102") + format.extension()
			}
			path, err := cli.ExportHistory(ctx, client, kv, cli.ExportOptions{
				Format:       cli.ExportFormat(format),
				OutputPath:   outputPath,
				TemplatePath: cfg.Templates.WordSheetTemplate,
				Title:        title,
			})
			if err != nil {
				return fmt.Errorf("cli.ExportHistory > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	flags := command.Flags()
	flags.Var(&format, "format", "Export format. Options: markdown, pdf")
	flags.StringVar(&outputPath, "output-path", "", "Path of the exported file")
	flags.StringVar(&title, "title", "", "Title of the vocabulary sheet")
	return command
}
