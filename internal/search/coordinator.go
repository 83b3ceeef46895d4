// Package search debounces input, runs cancellable lookups and presents their outcome.
package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/render"
)

const (
	DefaultDebounce = 500 * time.Millisecond

	messageNotFound     = "Word not found or connection error occurred"
	messageFetchFailed  = "Failed to fetch word information"
	messageTimedOut     = "Request timed out. Please check your connection and try again."
	messageRenderFailed = "Error displaying word information"
)

//go:generate mockgen -source=coordinator.go -destination=../mocks/search/mock_search.go -package=mock_search
type Presenter interface {
	ShowIdle()
	ShowLoading(word string)
	ShowResult(model render.DisplayModel)
	ShowError(message string)
}

// History is the part of the history navigator the coordinator drives.
type History interface {
	Record(ctx context.Context, word string) error
	// Settle ends a navigation and recomputes the navigation buttons.
	Settle()
	Navigating() bool
}

type Options struct {
	// Debounce is the quiet window before a submitted input is fetched. 0 uses DefaultDebounce.
	Debounce time.Duration
	// LookupTimeout bounds every fetch. 0 disables it.
	LookupTimeout time.Duration
	Scheduler     Scheduler
	Logger        *slog.Logger
}

type Coordinator struct {
	client    lookup.Client
	presenter Presenter
	history   History
	scheduler Scheduler
	debounce  time.Duration
	timeout   time.Duration
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	state      State
	pending    Timer
	pendingSeq uint64
	live       *Token
	closed     bool
}

func NewCoordinator(client lookup.Client, presenter Presenter, history History, opts Options) *Coordinator {
	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		client:    client,
		presenter: presenter,
		history:   history,
		scheduler: opts.Scheduler,
		debounce:  opts.Debounce,
		timeout:   opts.LookupTimeout,
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Submit handles raw input. Non-empty input is fetched once it has been quiet for the debounce window.
func (c *Coordinator) Submit(raw string, isNewSearch bool) {
	word := lookup.Normalize(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopPendingLocked()

	if word == "" {
		if c.live != nil {
			c.live.Cancel()
		}
		c.state.CurrentQuery = ""
		c.presenter.ShowIdle()
		return
	}

	c.pendingSeq++
	seq := c.pendingSeq
	c.pending = c.scheduler.AfterFunc(c.debounce, func() {
		c.fire(seq, word, isNewSearch)
	})
}

func (c *Coordinator) fire(seq uint64, word string, isNewSearch bool) {
	c.mu.Lock()
	if c.closed || seq != c.pendingSeq || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.mu.Unlock()

	if c.history.Navigating() {
		c.logger.Debug("skip debounced search while navigating", slog.String("word", word))
		return
	}
	c.Fetch(word, isNewSearch)
}

// Fetch looks word up immediately, cancelling the fetch in flight.
// When no fetch is started the history is settled right away.
func (c *Coordinator) Fetch(word string, isNewSearch bool) {
	word = lookup.Normalize(word)
	if word == "" {
		c.logger.Debug("skip fetch of empty word")
		c.history.Settle()
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.history.Settle()
		return
	}
	if c.live != nil {
		c.live.Cancel()
	}
	token := newToken(c.ctx, c.timeout)
	c.live = token
	c.wg.Add(1)
	c.presenter.ShowLoading(word)
	c.mu.Unlock()

	go c.run(token, word, isNewSearch)
}

func (c *Coordinator) run(token *Token, word string, isNewSearch bool) {
	defer c.wg.Done()
	defer c.settle(token)

	result, err := c.client.Lookup(token.Context(), word)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.live != token || token.State() == TokenCancelled {
		c.logger.Debug("discard superseded lookup", slog.String("word", word))
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("lookup cancelled", slog.String("word", word))
			return
		}
		c.logger.Warn("lookup failed", slog.String("word", word), slog.Any("error", err))
		c.failLocked(word, isNewSearch, failureMessage(err))
		return
	}
	if result.Failed() {
		c.logger.Info("lookup returned no definition", slog.String("word", word), slog.String("error", result.Error))
		c.failLocked(word, isNewSearch, messageNotFound)
		return
	}

	// the current query is written before history and display
	c.state.CurrentQuery = word
	if isNewSearch {
		c.recordLocked(word)
	}

	model, err := render.Render(word, result, c.state.DisplayMode)
	if err != nil {
		c.logger.Error("failed to render lookup result", slog.String("word", word), slog.Any("error", err))
		c.state.CurrentQuery = ""
		c.presenter.ShowError(messageRenderFailed)
		return
	}
	c.state.LastWord = word
	c.state.LastResult = &result
	c.presenter.ShowResult(model)
}

func (c *Coordinator) failLocked(word string, isNewSearch bool, message string) {
	c.state.CurrentQuery = ""
	c.presenter.ShowError(message)
	if isNewSearch {
		c.recordLocked(word)
	}
}

func (c *Coordinator) recordLocked(word string) {
	if err := c.history.Record(c.ctx, word); err != nil {
		c.logger.Warn("failed to record history", slog.String("word", word), slog.Any("error", err))
	}
}

// settle releases token. History is settled unless a newer fetch is already live.
func (c *Coordinator) settle(token *Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token.release()
	if c.live != nil && c.live != token {
		return
	}
	c.live = nil
	c.history.Settle()
}

func failureMessage(err error) string {
	var respErr *lookup.ResponseError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return messageTimedOut
	case errors.As(err, &respErr) && respErr.Message != "":
		return messageNotFound
	default:
		return messageFetchFailed
	}
}

// ToggleDisplayMode switches the display mode and re-renders the last successful result without fetching.
func (c *Coordinator) ToggleDisplayMode() render.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.DisplayMode = c.state.DisplayMode.Toggle()
	if c.state.CurrentQuery == "" || c.state.LastResult == nil {
		return c.state.DisplayMode
	}
	model, err := render.Render(c.state.LastWord, *c.state.LastResult, c.state.DisplayMode)
	if err != nil {
		c.logger.Error("failed to re-render lookup result", slog.String("word", c.state.LastWord), slog.Any("error", err))
		c.presenter.ShowError(messageRenderFailed)
		return c.state.DisplayMode
	}
	c.presenter.ShowResult(model)
	return c.state.DisplayMode
}

// SelectWord looks up a clicked word as a new search unless it is already displayed or a navigation is pending.
func (c *Coordinator) SelectWord(word string) {
	word = lookup.Normalize(word)
	if word == "" {
		return
	}
	if c.history.Navigating() {
		c.logger.Debug("ignore word selection while navigating", slog.String("word", word))
		return
	}

	c.mu.Lock()
	current := c.state.CurrentQuery
	c.mu.Unlock()
	if word == current {
		return
	}
	c.Fetch(word, true)
}

// State returns a copy of the session state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every started fetch has settled.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close stops the pending debounce, cancels the fetch in flight and waits for it to settle.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopPendingLocked()
	if c.live != nil {
		c.live.Cancel()
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Coordinator) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
