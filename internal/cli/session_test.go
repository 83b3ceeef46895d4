package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/dictlens/internal/lookup"
	mock_lookup "github.com/at-ishikawa/dictlens/internal/mocks/lookup"
	"github.com/at-ishikawa/dictlens/internal/search"
	"github.com/at-ishikawa/dictlens/internal/store"
	"github.com/at-ishikawa/dictlens/internal/testutil"
)

type manualTimer struct {
	stopped atomic.Bool
	f       func()
}

func (t *manualTimer) Stop() bool {
	return !t.stopped.Swap(true)
}

// manualScheduler runs the debounced functions only when fire is called.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) search.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &manualTimer{f: f}
	s.timers = append(s.timers, timer)
	return timer
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()
	for _, timer := range timers {
		if !timer.stopped.Swap(true) {
			timer.f()
		}
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type sessionFixture struct {
	session   *Session
	client    *mock_lookup.MockClient
	kv        *store.MemoryStore
	scheduler *manualScheduler
	out       *syncBuffer
}

func newSessionFixture(t *testing.T, stdin string, historyEntries ...string) *sessionFixture {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	ctrl := gomock.NewController(t)
	fixture := &sessionFixture{
		client:    mock_lookup.NewMockClient(ctrl),
		kv:        store.NewMemoryStore(),
		scheduler: &manualScheduler{},
		out:       &syncBuffer{},
	}
	if len(historyEntries) > 0 {
		testutil.SeedHistory(t, fixture.kv, historyEntries...)
	}
	fixture.session = NewSession(fixture.client, fixture.kv, strings.NewReader(stdin), fixture.out, search.Options{
		Scheduler: fixture.scheduler,
	})
	require.NoError(t, fixture.session.navigator.Load(context.Background()))
	return fixture
}

func (f *sessionFixture) handle(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, f.session.handle(context.Background(), line))
		f.scheduler.fire()
		f.session.Wait()
	}
}

func TestSession_Search(t *testing.T) {
	f := newSessionFixture(t, "")
	f.client.EXPECT().Lookup(gomock.Any(), "apple").Return(testutil.WordResult("apple", "pome"), nil)

	f.handle(t, "  Apple ")

	assert.Equal(t, `Looking up "apple"...

Apple  /apple/

noun
  1. The meaning of apple.
     "An example with apple."

Synonyms: pome
Images:
  No images available for "apple"

`, f.out.String())
	assert.Equal(t, []string{"apple"}, f.session.navigator.Snapshot().Entries)
	assert.Equal(t, "apple", f.session.coordinator.State().CurrentQuery)
}

func TestSession_DebounceKeepsTheLastInput(t *testing.T) {
	f := newSessionFixture(t, "")
	f.client.EXPECT().Lookup(gomock.Any(), "apple").Return(testutil.WordResult("apple"), nil)

	require.NoError(t, f.session.handle(context.Background(), "app"))
	require.NoError(t, f.session.handle(context.Background(), "appl"))
	require.NoError(t, f.session.handle(context.Background(), "apple"))
	f.scheduler.fire()
	f.session.Wait()

	assert.Equal(t, []string{"apple"}, f.session.navigator.Snapshot().Entries)
}

func TestSession_EmptyInputShowsIdle(t *testing.T) {
	f := newSessionFixture(t, "")

	f.handle(t, "   ")

	assert.Contains(t, f.out.String(), "Type a word to look it up.")
	assert.Empty(t, f.session.navigator.Snapshot().Entries)
}

func TestSession_NotFound(t *testing.T) {
	f := newSessionFixture(t, "")
	f.client.EXPECT().Lookup(gomock.Any(), "qwerty").Return(lookup.Result{}, &lookup.ResponseError{StatusCode: 404, Message: "Endpoint not found"})

	f.handle(t, "qwerty")

	assert.Contains(t, f.out.String(), "Word not found or connection error occurred")
	assert.Equal(t, []string{"qwerty"}, f.session.navigator.Snapshot().Entries)
	assert.Empty(t, f.session.coordinator.State().CurrentQuery)
}

func TestSession_Navigation(t *testing.T) {
	f := newSessionFixture(t, "", "apple", "banana", "cherry")
	gomock.InOrder(
		f.client.EXPECT().Lookup(gomock.Any(), "banana").Return(testutil.WordResult("banana"), nil),
		f.client.EXPECT().Lookup(gomock.Any(), "apple").Return(testutil.WordResult("apple"), nil),
		f.client.EXPECT().Lookup(gomock.Any(), "banana").Return(testutil.WordResult("banana"), nil),
	)

	f.handle(t, ":prev")
	assert.Equal(t, 1, f.session.navigator.Snapshot().Cursor)
	f.handle(t, ":prev")
	assert.Equal(t, 0, f.session.navigator.Snapshot().Cursor)

	f.out.Reset()
	f.handle(t, ":prev")
	assert.Contains(t, f.out.String(), "There is no previous word.")

	f.handle(t, ":next")
	snapshot := f.session.navigator.Snapshot()
	assert.Equal(t, 1, snapshot.Cursor)
	assert.False(t, snapshot.Navigating)
	// navigation does not record
	assert.Equal(t, []string{"apple", "banana", "cherry"}, snapshot.Entries)

	f.out.Reset()
	f.session.terminal.Prompt()
	assert.Equal(t, "[<] [>] > ", f.out.String())
}

func TestSession_Commands(t *testing.T) {
	tests := []struct {
		name        string
		history     []string
		setupMocks  func(m *mock_lookup.MockClient)
		lines       []string
		wantOutput  []string
		wantHistory []string
	}{
		{
			name:        "history lists newest first with the active entry marked",
			history:     []string{"apple", "banana"},
			lines:       []string{":history"},
			wantOutput:  []string{"  2  banana  *\n  1  apple\n"},
			wantHistory: []string{"apple", "banana"},
		},
		{
			name:        "empty history",
			lines:       []string{":history"},
			wantOutput:  []string{"No search history yet"},
			wantHistory: nil,
		},
		{
			name:    "open loads an entry without recording it",
			history: []string{"apple", "banana"},
			setupMocks: func(m *mock_lookup.MockClient) {
				m.EXPECT().Lookup(gomock.Any(), "apple").Return(testutil.WordResult("apple"), nil)
			},
			lines:       []string{":open 1"},
			wantOutput:  []string{"Apple  /apple/"},
			wantHistory: []string{"apple", "banana"},
		},
		{
			name:        "open out of range",
			history:     []string{"apple"},
			lines:       []string{":open 5", ":open x"},
			wantOutput:  []string{"No history entry 5.", "Usage: :open N"},
			wantHistory: []string{"apple"},
		},
		{
			name:    "word starts a new search",
			history: []string{"apple"},
			setupMocks: func(m *mock_lookup.MockClient) {
				m.EXPECT().Lookup(gomock.Any(), "pome").Return(testutil.WordResult("pome"), nil)
			},
			lines:       []string{":word Pome"},
			wantOutput:  []string{"Pome  /pome/"},
			wantHistory: []string{"apple", "pome"},
		},
		{
			name: "word alone lists the words of the annotated result",
			setupMocks: func(m *mock_lookup.MockClient) {
				m.EXPECT().Lookup(gomock.Any(), "apple").Return(testutil.WordResult("apple"), nil)
			},
			lines:       []string{"apple", ":word", ":mode", ":word"},
			wantOutput:  []string{"Usage: :word W", "Words: the, meaning, of, apple, an, example, with\n"},
			wantHistory: []string{"apple"},
		},
		{
			name: "mode re-renders the current word without fetching",
			setupMocks: func(m *mock_lookup.MockClient) {
				m.EXPECT().Lookup(gomock.Any(), "apple").Return(testutil.WordResult("apple"), nil).Times(1)
			},
			lines:       []string{"apple", ":mode", ":mode"},
			wantOutput:  []string{"Display mode: annotated", "Display mode: plain"},
			wantHistory: []string{"apple"},
		},
		{
			name:        "clear",
			history:     []string{"apple", "banana"},
			lines:       []string{":clear", ":history"},
			wantOutput:  []string{"History cleared.", "No search history yet"},
			wantHistory: nil,
		},
		{
			name:       "unknown command",
			lines:      []string{":foo"},
			wantOutput: []string{"Unknown command :foo."},
		},
		{
			name:       "help",
			lines:      []string{":help"},
			wantOutput: []string{":open N    show history entry N"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t, "", tt.history...)
			if tt.setupMocks != nil {
				tt.setupMocks(f.client)
			}

			f.handle(t, tt.lines...)

			output := f.out.String()
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
			assert.Equal(t, tt.wantHistory, f.session.navigator.Snapshot().Entries)
		})
	}
}

func TestSession_Quit(t *testing.T) {
	f := newSessionFixture(t, "")
	assert.ErrorIs(t, f.session.handle(context.Background(), ":quit"), errEnd)
}

func TestSession_Run(t *testing.T) {
	f := newSessionFixture(t, ":history\n:dismiss\n:quit\n", "apple")

	require.NoError(t, f.session.Run(context.Background()))

	output := f.out.String()
	assert.Contains(t, output, "Privacy: words you look up")
	assert.Contains(t, output, "  1  apple  *")
	assert.Contains(t, output, "Privacy notice dismissed.")
	dismissed, err := store.NoticeDismissed(context.Background(), f.kv)
	require.NoError(t, err)
	assert.True(t, dismissed)

	// the notice is not shown again, and EOF ends the session
	out := &syncBuffer{}
	second := NewSession(f.client, f.kv, strings.NewReader(":history"), out, search.Options{Scheduler: &manualScheduler{}})
	require.NoError(t, second.Run(context.Background()))
	assert.NotContains(t, out.String(), "Privacy:")
	assert.Contains(t, out.String(), "  1  apple  *")
}
