package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dictlens/internal/datasync"
	"github.com/at-ishikawa/dictlens/internal/store"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateImportCommand())
	migrateCmd.AddCommand(newMigrateExportCommand())

	return migrateCmd
}

func newMigrateImportCommand() *cobra.Command {
	var from string
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the history and settings of a file store into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			target, err := store.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("store.Open > %w", err)
			}
			defer func() { _ = target.Close() }()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(target, out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.Import(ctx, store.NewFileStore(from), opts)
			if err != nil {
				return fmt.Errorf("importer.Import > %w", err)
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Keys:  %d new, %d skipped, %d updated\n", result.New, result.Skipped, result.Updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Path of the file store to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the store")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Overwrite values that differ in the store")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newMigrateExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the history and settings of the configured store as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			source, err := store.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("store.Open > %w", err)
			}
			defer func() { _ = source.Close() }()

			data, err := datasync.NewExporter(source).Export(ctx)
			if err != nil {
				return fmt.Errorf("exporter.Export > %w", err)
			}
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(data); err != nil {
				return fmt.Errorf("encoder.Encode > %w", err)
			}
			return encoder.Close()
		},
	}
}
