package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/dictlens/internal/database"
	"github.com/at-ishikawa/dictlens/schemas"
)

// Dialect selects the upsert statement of the SQL backend.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

const (
	selectEntryQuery = "SELECT entry_value FROM kv_entries WHERE entry_key = ?"
	deleteEntryQuery = "DELETE FROM kv_entries WHERE entry_key = ?"
)

var upsertEntryQueries = map[Dialect]string{
	DialectMySQL: "INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) " +
		"ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = CURRENT_TIMESTAMP",
	DialectSQLite: "INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) " +
		"ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = CURRENT_TIMESTAMP",
}

// SQLStore keeps entries in the kv_entries table.
type SQLStore struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLStore(db *sqlx.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Migrate applies the embedded migrations in file name order.
func (s *SQLStore) Migrate(ctx context.Context) error {
	names, err := fs.Glob(schemas.Migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob > %w", err)
	}
	sort.Strings(names)

	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, name := range names {
			content, err := fs.ReadFile(schemas.Migrations, name)
			if err != nil {
				return fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
			}
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", name, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, selectEntryQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("db.GetContext(%s) > %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query, ok := upsertEntryQueries[s.dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", s.dialect)
	}
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteEntryQuery, key); err != nil {
		return fmt.Errorf("db.ExecContext(%s) > %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
