package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dictlens/internal/history"
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/pdf"
	"github.com/at-ishikawa/dictlens/internal/render"
	"github.com/at-ishikawa/dictlens/internal/store"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
)

type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportPDF      ExportFormat = "pdf"
)

const exportConcurrency = 4

type historyDocument struct {
	Entries []string `yaml:"entries"`
	Cursor  int      `yaml:"cursor"`
}

func loadHistory(ctx context.Context, kv store.KV) (history.Snapshot, error) {
	navigator := history.NewNavigator(kv, nil)
	if err := navigator.Load(ctx); err != nil {
		return history.Snapshot{}, fmt.Errorf("navigator.Load > %w", err)
	}
	return navigator.Snapshot(), nil
}

// ListHistory writes the persisted history, newest first for text.
func ListHistory(ctx context.Context, kv store.KV, w io.Writer, format OutputFormat) error {
	snapshot, err := loadHistory(ctx, kv)
	if err != nil {
		return err
	}

	switch format {
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(historyDocument{Entries: snapshot.Entries, Cursor: snapshot.Cursor}); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
		return encoder.Close()
	case OutputText, "":
		NewTerminal(w).ShowHistory(snapshot)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func ClearHistory(ctx context.Context, kv store.KV) error {
	if err := history.NewNavigator(kv, nil).Clear(ctx); err != nil {
		return fmt.Errorf("navigator.Clear > %w", err)
	}
	return nil
}

type ExportOptions struct {
	Format       ExportFormat
	OutputPath   string
	TemplatePath string
	Title        string
	Now          func() time.Time
	Logger       *slog.Logger
}

// ExportHistory looks every distinct history word up and writes them as a vocabulary sheet.
// Words that cannot be looked up are left out. It returns the path of the written file.
func ExportHistory(ctx context.Context, client lookup.Client, kv store.KV, opts ExportOptions) (string, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "Dictionary Lens vocabulary"
	}

	snapshot, err := loadHistory(ctx, kv)
	if err != nil {
		return "", err
	}
	words := distinct(snapshot.Entries)

	models := make([]*render.DisplayModel, len(words))
	var mu sync.Mutex
	var skipped []string
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(exportConcurrency)
	for i, word := range words {
		eg.Go(func() error {
			result, err := client.Lookup(egCtx, word)
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return fmt.Errorf("client.Lookup(%s) > %w", word, ctxErr)
				}
				opts.Logger.Warn("skip a word that failed to be looked up", slog.String("word", word), slog.Any("error", err))
				mu.Lock()
				skipped = append(skipped, word)
				mu.Unlock()
				return nil
			}
			if result.Failed() {
				opts.Logger.Warn("skip a word without a definition", slog.String("word", word))
				mu.Lock()
				skipped = append(skipped, word)
				mu.Unlock()
				return nil
			}
			model, err := render.Render(word, result, render.ModePlain)
			if err != nil {
				opts.Logger.Warn("skip a word that failed to be rendered", slog.String("word", word), slog.Any("error", err))
				return nil
			}
			models[i] = &model
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	sheet := render.Sheet{Title: opts.Title, Date: opts.Now()}
	for _, model := range models {
		if model != nil {
			sheet.Words = append(sheet.Words, *model)
		}
	}
	opts.Logger.Info("export history",
		slog.Int("words", len(sheet.Words)),
		slog.Any("skipped", skipped),
	)

	var markdown bytes.Buffer
	if err := render.Markdown(&markdown, sheet, opts.TemplatePath); err != nil {
		return "", fmt.Errorf("render.Markdown > %w", err)
	}

	switch opts.Format {
	case ExportPDF:
		path, err := pdf.Write(markdown.Bytes(), opts.OutputPath)
		if err != nil {
			return "", fmt.Errorf("pdf.Write > %w", err)
		}
		return path, nil
	case ExportMarkdown, "":
		if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
			return "", fmt.Errorf("os.MkdirAll > %w", err)
		}
		if err := os.WriteFile(opts.OutputPath, markdown.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", opts.OutputPath, err)
		}
		return opts.OutputPath, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", opts.Format)
	}
}

func distinct(words []string) []string {
	seen := make(map[string]bool, len(words))
	result := make([]string, 0, len(words))
	for _, word := range words {
		if seen[word] {
			continue
		}
		seen[word] = true
		result = append(result, word)
	}
	return result
}
