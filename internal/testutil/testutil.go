// Package testutil provides shared test helpers for config files, lookup fixtures and a fake backend.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/server"
	"github.com/at-ishikawa/dictlens/internal/store"
)

// SetupTestConfig creates a config file keeping the store and the gateway under tmpDir,
// with the client pointed at baseURL. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`client:
  base_url: %s
  debounce_ms: 0
store:
  driver: file
  path: %s
gateway:
  directory: %s
`,
		baseURL,
		filepath.Join(tmpDir, "store.json"),
		filepath.Join(tmpDir, "gateway"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WordResult returns a complete lookup result for word with one noun definition.
func WordResult(word string, synonyms ...string) lookup.Result {
	related := make([]lookup.RelatedWord, 0, len(synonyms))
	for _, synonym := range synonyms {
		related = append(related, lookup.RelatedWord{Word: synonym})
	}
	return lookup.Result{
		Definition: &lookup.Entry{
			Word:     word,
			Phonetic: "/" + word + "/",
			Meanings: []lookup.Meaning{{
				PartOfSpeech: "noun",
				Definitions: []lookup.Definition{{
					Definition: "The meaning of " + word + ".",
					Example:    "An example with " + word + ".",
				}},
			}},
		},
		Synonyms: related,
		Antonyms: []lookup.RelatedWord{},
		Images:   []string{},
	}
}

// Words answers lookups from a fixed map. Unknown words get a result without a definition.
type Words struct {
	mu      sync.Mutex
	results map[string]lookup.Result
	calls   []string
}

func NewWords(results map[string]lookup.Result) *Words {
	return &Words{results: results}
}

func (w *Words) Lookup(ctx context.Context, word string) (lookup.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, word)
	if result, ok := w.results[word]; ok {
		return result, nil
	}
	return lookup.Result{Synonyms: []lookup.RelatedWord{}, Antonyms: []lookup.RelatedWord{}, Images: []string{}}, nil
}

// Calls returns the looked up words in order.
func (w *Words) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

// NewLookupServer starts the backend API answering from words, with rate limiting disabled.
func NewLookupServer(t *testing.T, words *Words) *httptest.Server {
	t.Helper()
	s := server.New(config.ServerConfig{
		CORS:  config.CORSConfig{AllowedOrigins: []string{"*"}},
		Cache: config.CacheConfig{TTLMinutes: 30, MaxEntries: 100},
	}, words, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// SeedHistory persists entries as the search history.
func SeedHistory(t *testing.T, kv store.KV, entries ...string) {
	t.Helper()
	value, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), store.HistoryKey, string(value)))
}
