package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/at-ishikawa/dictlens/internal/history"
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/render"
	"github.com/at-ishikawa/dictlens/internal/search"
	"github.com/at-ishikawa/dictlens/internal/store"
)

var ErrLookupFailed = errors.New("lookup failed")

// LookupOnce looks word up and prints the outcome. The history is not touched.
func LookupOnce(client lookup.Client, stdout io.Writer, word string, mode render.Mode, opts search.Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	terminal := NewTerminal(stdout)
	coordinator := search.NewCoordinator(client, terminal, history.NewNavigator(store.NewMemoryStore(), opts.Logger), opts)
	defer coordinator.Close()

	if mode != coordinator.State().DisplayMode {
		coordinator.ToggleDisplayMode()
	}
	coordinator.Fetch(word, false)
	coordinator.Wait()

	if coordinator.State().LastResult == nil {
		return ErrLookupFailed
	}
	return nil
}
