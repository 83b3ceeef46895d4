package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dictlens/internal/datasync"
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/store"
	"github.com/at-ishikawa/dictlens/internal/testutil"
)

func setupCommandTest(t *testing.T) (tmpDir string, words *testutil.Words, closeServer func()) {
	t.Helper()
	tmpDir = t.TempDir()
	words = testutil.NewWords(map[string]lookup.Result{
		"apple":  testutil.WordResult("apple", "pome"),
		"banana": testutil.WordResult("banana"),
	})
	srv := testutil.NewLookupServer(t, words)
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir, srv.URL))
	return tmpDir, words, srv.Close
}

func TestLookupCommand(t *testing.T) {
	_, _, closeServer := setupCommandTest(t)

	out, err := execute(t, "", "lookup", "Apple")
	require.NoError(t, err)
	assert.Contains(t, out, "Apple  /apple/")
	assert.Contains(t, out, "The meaning of apple.")

	// the gateway answers from the offline cache once the server is gone
	closeServer()
	out, err = execute(t, "", "lookup", "apple", "--mode", "annotated")
	require.NoError(t, err)
	assert.Contains(t, out, "Apple  /apple/")

	out, err = execute(t, "", "lookup", "banana")
	assert.Error(t, err)
	assert.Contains(t, out, "Word not found or connection error occurred")
}

func TestLookupCommand_Errors(t *testing.T) {
	tests := []struct {
		name       string
		configFile func(t *testing.T) string
		args       []string
	}{
		{
			name:       "broken config",
			configFile: setupBrokenConfigFile,
			args:       []string{"lookup", "apple"},
		},
		{
			name: "missing word",
			configFile: func(t *testing.T) string {
				return testutil.SetupTestConfig(t, t.TempDir(), "http://localhost:5000")
			},
			args: []string{"lookup"},
		},
		{
			name: "invalid mode",
			configFile: func(t *testing.T) string {
				return testutil.SetupTestConfig(t, t.TempDir(), "http://localhost:5000")
			},
			args: []string{"lookup", "apple", "--mode", "fancy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setConfigFile(t, tt.configFile(t))
			_, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSessionCommand(t *testing.T) {
	tmpDir, _, _ := setupCommandTest(t)
	testutil.SeedHistory(t, store.NewFileStore(filepath.Join(tmpDir, "store.json")), "apple", "banana")

	out, err := execute(t, ":history\n:dismiss\n:quit\n", "session")
	require.NoError(t, err)
	assert.Contains(t, out, "Privacy:")
	assert.Contains(t, out, "  2  banana  *\n  1  apple\n")

	out, err = execute(t, ":quit\n", "session")
	require.NoError(t, err)
	assert.NotContains(t, out, "Privacy:")
}

func TestHistoryCommands(t *testing.T) {
	tmpDir, words, _ := setupCommandTest(t)
	testutil.SeedHistory(t, store.NewFileStore(filepath.Join(tmpDir, "store.json")), "apple", "banana")

	out, err := execute(t, "", "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "  2  banana  *\n  1  apple\n", out)

	out, err = execute(t, "", "history", "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "cursor: 1")

	exportPath := filepath.Join(tmpDir, "words.md")
	out, err = execute(t, "", "history", "export", "--output-path", exportPath, "--title", "My words")
	require.NoError(t, err)
	assert.Equal(t, "Exported to "+exportPath+"\n", out)
	contents, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "# My words")
	assert.Contains(t, string(contents), "## Banana /banana/")
	assert.ElementsMatch(t, []string{"apple", "banana"}, words.Calls())

	out, err = execute(t, "", "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "History cleared.\n", out)

	out, err = execute(t, "", "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "No search history yet\n", out)
}

func TestCacheCommands(t *testing.T) {
	_, _, _ = setupCommandTest(t)

	_, err := execute(t, "", "lookup", "apple")
	require.NoError(t, err)

	out, err := execute(t, "", "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "dictionary-lens-offline-v1 (1 entries)")
	assert.Contains(t, out, "dictionary-lens-v1 (3 entries)")
	assert.Contains(t, out, "/api/word/apple")

	out, err = execute(t, "", "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cleared every cache.\n", out)

	out, err = execute(t, "", "cache", "status", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "No caches\n", out)
}

func TestMigrateCommands(t *testing.T) {
	tmpDir, _, _ := setupCommandTest(t)
	sourcePath := filepath.Join(tmpDir, "old-store.json")
	testutil.SeedHistory(t, store.NewFileStore(sourcePath), "apple", "banana")

	out, err := execute(t, "", "migrate", "import", "--from", sourcePath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "  [NEW]  searchHistory\n")
	assert.Contains(t, out, "(dry-run mode, no changes made)")

	out, err = execute(t, "", "migrate", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "history: []")

	out, err = execute(t, "", "migrate", "import", "--from", sourcePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Keys:  1 new, 0 skipped, 0 updated")

	out, err = execute(t, "", "migrate", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "- apple\n")
	assert.Contains(t, out, "cursor: 1")
	assert.Contains(t, out, "notice_dismissed: false")

	_, err = execute(t, "", "migrate", "import")
	assert.Error(t, err)

	brokenPath := filepath.Join(tmpDir, "broken-store.json")
	require.NoError(t, store.NewFileStore(brokenPath).Set(context.Background(), store.HistoryKey, `{"apple":1}`))
	out, err = execute(t, "", "migrate", "import", "--from", brokenPath)
	assert.ErrorIs(t, err, datasync.ErrInvalidValue)
	assert.NotContains(t, out, "[NEW]")
}
