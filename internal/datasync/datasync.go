// Package datasync provides import/export of the persisted client state between stores.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/dictlens/internal/history"
	"github.com/at-ishikawa/dictlens/internal/store"
)

// ErrInvalidValue is returned when a source value cannot be imported.
var ErrInvalidValue = errors.New("invalid value")

// Keys are the store keys an import carries over.
var Keys = []string{store.HistoryKey, store.NoticeKey}

// ImportResult tracks counts of the import operation.
type ImportResult struct {
	New     int
	Skipped int
	Updated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer copies keys from a source store into the target store.
type Importer struct {
	target store.KV
	writer io.Writer
}

func NewImporter(target store.KV, writer io.Writer) *Importer {
	return &Importer{
		target: target,
		writer: writer,
	}
}

// Import copies every key of Keys present in source. A key already in the target with another value
// is only overwritten with UpdateExisting. Every value is validated before anything is written.
func (imp *Importer) Import(ctx context.Context, source store.KV, opts ImportOptions) (*ImportResult, error) {
	values, err := imp.read(ctx, source)
	if err != nil {
		return nil, err
	}

	var result ImportResult
	for _, key := range Keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if value == "" {
			result.Skipped++
			fmt.Fprintf(imp.writer, "  [SKIP]  %s has no entries\n", key)
			continue
		}

		existing, err := imp.target.Get(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if !opts.DryRun {
				if err := imp.target.Set(ctx, key, value); err != nil {
					return nil, fmt.Errorf("target.Set(%s) > %w", key, err)
				}
			}
			result.New++
			fmt.Fprintf(imp.writer, "  [NEW]  %s\n", key)
		case err != nil:
			return nil, fmt.Errorf("target.Get(%s) > %w", key, err)
		case existing == value:
			result.Skipped++
		case !opts.UpdateExisting:
			result.Skipped++
			fmt.Fprintf(imp.writer, "  [SKIP]  %s differs from the target\n", key)
		default:
			if !opts.DryRun {
				if err := imp.target.Set(ctx, key, value); err != nil {
					return nil, fmt.Errorf("target.Set(%s) > %w", key, err)
				}
			}
			result.Updated++
			fmt.Fprintf(imp.writer, "  [UPDATE]  %s\n", key)
		}
	}
	return &result, nil
}

// read returns the normalized source value of each present key.
// A history without any entry is returned as an empty string.
func (imp *Importer) read(ctx context.Context, source store.KV) (map[string]string, error) {
	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		value, err := source.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("source.Get(%s) > %w", key, err)
		}

		if key == store.HistoryKey {
			entries, err := history.DecodeEntries(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s > %w", ErrInvalidValue, key, err)
			}
			if len(entries) == 0 {
				values[key] = ""
				continue
			}
			if value, err = history.EncodeEntries(entries); err != nil {
				return nil, fmt.Errorf("history.EncodeEntries > %w", err)
			}
		}
		values[key] = value
	}
	return values, nil
}

// ExportData is the persisted client state.
type ExportData struct {
	History         []string `yaml:"history"`
	Cursor          int      `yaml:"cursor"`
	NoticeDismissed bool     `yaml:"notice_dismissed"`
}

type Exporter struct {
	source store.KV
}

func NewExporter(source store.KV) *Exporter {
	return &Exporter{source: source}
}

func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	navigator := history.NewNavigator(e.source, nil)
	if err := navigator.Load(ctx); err != nil {
		return nil, fmt.Errorf("navigator.Load > %w", err)
	}
	dismissed, err := store.NoticeDismissed(ctx, e.source)
	if err != nil {
		return nil, fmt.Errorf("store.NoticeDismissed > %w", err)
	}

	snapshot := navigator.Snapshot()
	return &ExportData{
		History:         snapshot.Entries,
		Cursor:          snapshot.Cursor,
		NoticeDismissed: dismissed,
	}, nil
}
