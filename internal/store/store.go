// Package store persists small string values (search history, notice flags) across restarts.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/database"
)

const (
	HistoryKey      = "searchHistory"
	NoticeKey       = "privacyNoticeDismissed"
	noticeFlagValue = "true"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("key not found")

// KV is a durable string key-value store.
//
//go:generate mockgen -source=store.go -destination=../mocks/store/mock_store.go -package=mock_store
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is a KV owning resources that must be released.
type Store interface {
	KV
	Close() error
}

// Open builds the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Store.Path), nil
	case "sqlite":
		db, err := database.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("database.OpenSQLite > %w", err)
		}
		s := NewSQLStore(db, DialectSQLite)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("Migrate > %w", err)
		}
		return s, nil
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open > %w", err)
		}
		s := NewSQLStore(db, DialectMySQL)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("Migrate > %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// NoticeDismissed reports whether the privacy notice was dismissed. Any non-empty value counts.
func NoticeDismissed(ctx context.Context, kv KV) (bool, error) {
	value, err := kv.Get(ctx, NoticeKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("kv.Get(%s) > %w", NoticeKey, err)
	}
	return value != "", nil
}

// DismissNotice records that the privacy notice was dismissed.
func DismissNotice(ctx context.Context, kv KV) error {
	if err := kv.Set(ctx, NoticeKey, noticeFlagValue); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", NoticeKey, err)
	}
	return nil
}
