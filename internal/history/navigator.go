// Package history keeps the log of searched words and navigates through it.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/store"
)

var ErrIndexOutOfRange = errors.New("history index out of range")

//go:generate mockgen -source=navigator.go -destination=../mocks/history/mock_navigator.go -package=mock_history
type Searcher interface {
	Fetch(word string, isNewSearch bool)
}

// Buttons is the enablement of the previous and next navigation buttons.
type Buttons struct {
	CanGoPrev bool
	CanGoNext bool
}

type Snapshot struct {
	Entries    []string
	Cursor     int
	Navigating bool
}

// Navigator owns the history log and its cursor. Cursor is -1 when the log is empty.
type Navigator struct {
	kv     store.KV
	logger *slog.Logger

	mu         sync.Mutex
	searcher   Searcher
	entries    []string
	cursor     int
	navigating bool
	listener   func(Buttons)
}

func NewNavigator(kv store.KV, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		kv:     kv,
		logger: logger,
		cursor: -1,
	}
}

// Bind sets the searcher that navigation drives.
func (n *Navigator) Bind(searcher Searcher) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.searcher = searcher
}

// OnButtonsChange registers listener, called after every mutation and every settle.
func (n *Navigator) OnButtonsChange(listener func(Buttons)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listener = listener
}

// DecodeEntries parses a persisted log. Entries are normalized, and empty entries
// and repeats of the previous entry are dropped.
func DecodeEntries(value string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}

	entries := make([]string, 0, len(raw))
	for _, entry := range raw {
		word := lookup.Normalize(entry)
		if word == "" || (len(entries) > 0 && entries[len(entries)-1] == word) {
			continue
		}
		entries = append(entries, word)
	}
	return entries, nil
}

// EncodeEntries is the persisted form of entries.
func EncodeEntries(entries []string) (string, error) {
	if entries == nil {
		entries = []string{}
	}
	value, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("json.Marshal > %w", err)
	}
	return string(value), nil
}

// Load restores the persisted log and puts the cursor on its last entry.
// A corrupt value is logged and ignored.
func (n *Navigator) Load(ctx context.Context) error {
	value, err := n.kv.Get(ctx, store.HistoryKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("kv.Get(%s) > %w", store.HistoryKey, err)
	}

	entries, err := DecodeEntries(value)
	if err != nil {
		n.logger.Error("failed to load history", slog.Any("error", err))
		return nil
	}
	if len(entries) == 0 {
		entries = nil
	}

	n.mu.Lock()
	n.entries = entries
	n.cursor = len(entries) - 1
	n.mu.Unlock()
	n.notify()
	return nil
}

// Record appends word after the cursor, dropping any entries ahead of it, and persists the log.
// It does nothing when word is empty or already at the cursor.
func (n *Navigator) Record(ctx context.Context, word string) error {
	n.mu.Lock()
	if word == "" || (n.cursor >= 0 && n.entries[n.cursor] == word) {
		n.mu.Unlock()
		return nil
	}

	entries := make([]string, n.cursor+1, n.cursor+2)
	copy(entries, n.entries[:n.cursor+1])
	n.entries = append(entries, word)
	n.cursor = len(n.entries) - 1
	err := n.persistLocked(ctx)
	n.mu.Unlock()

	n.notify()
	return err
}

func (n *Navigator) GoPrev() bool {
	return n.move(-1)
}

func (n *Navigator) GoNext() bool {
	return n.move(1)
}

func (n *Navigator) move(step int) bool {
	n.mu.Lock()
	target := n.cursor + step
	if n.navigating || n.searcher == nil || target < 0 || target >= len(n.entries) || n.cursor < 0 {
		n.logger.Debug("navigation blocked",
			slog.Int("step", step),
			slog.Int("cursor", n.cursor),
			slog.Int("length", len(n.entries)),
			slog.Bool("navigating", n.navigating),
		)
		n.mu.Unlock()
		return false
	}

	n.navigating = true
	n.cursor = target
	word := n.entries[target]
	searcher := n.searcher
	n.mu.Unlock()

	n.notify()
	n.logger.Debug("navigate", slog.String("word", word), slog.Int("cursor", target))
	searcher.Fetch(word, false)
	return true
}

// Select loads the entry at index without moving the cursor.
func (n *Navigator) Select(index int) error {
	n.mu.Lock()
	if index < 0 || index >= len(n.entries) {
		n.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	word := n.entries[index]
	searcher := n.searcher
	n.mu.Unlock()

	if searcher == nil {
		return errors.New("no searcher is bound")
	}
	searcher.Fetch(word, false)
	return nil
}

// Clear empties the log and deletes the persisted value.
func (n *Navigator) Clear(ctx context.Context) error {
	n.mu.Lock()
	n.entries = nil
	n.cursor = -1
	err := n.kv.Delete(ctx, store.HistoryKey)
	n.mu.Unlock()

	n.notify()
	if err != nil {
		return fmt.Errorf("kv.Delete(%s) > %w", store.HistoryKey, err)
	}
	return nil
}

// Settle ends the pending navigation.
func (n *Navigator) Settle() {
	n.mu.Lock()
	n.navigating = false
	n.mu.Unlock()
	n.notify()
}

func (n *Navigator) Navigating() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.navigating
}

func (n *Navigator) Buttons() Buttons {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.buttonsLocked()
}

func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Snapshot{
		Entries:    append([]string(nil), n.entries...),
		Cursor:     n.cursor,
		Navigating: n.navigating,
	}
}

func (n *Navigator) buttonsLocked() Buttons {
	return Buttons{
		CanGoPrev: n.cursor > 0 && !n.navigating,
		CanGoNext: n.cursor < len(n.entries)-1 && !n.navigating,
	}
}

func (n *Navigator) persistLocked(ctx context.Context) error {
	value, err := EncodeEntries(n.entries)
	if err != nil {
		return err
	}
	if err := n.kv.Set(ctx, store.HistoryKey, value); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", store.HistoryKey, err)
	}
	return nil
}

func (n *Navigator) notify() {
	n.mu.Lock()
	listener := n.listener
	buttons := n.buttonsLocked()
	n.mu.Unlock()

	if listener != nil {
		listener(buttons)
	}
}
