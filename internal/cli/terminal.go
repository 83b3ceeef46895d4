package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/at-ishikawa/dictlens/internal/annotate"
	"github.com/at-ishikawa/dictlens/internal/history"
	"github.com/at-ishikawa/dictlens/internal/render"
)

const privacyNotice = "Privacy: words you look up are sent to the Dictionary Lens server and public dictionary APIs. " +
	"Your search history stays on this machine. Type :dismiss to hide this notice."

// Terminal prints the session state. It implements search.Presenter.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	buttons history.Buttons
	// words are the navigable words of the last annotated result
	words []string

	bold      *color.Color
	italic    *color.Color
	faint     *color.Color
	underline *color.Color
	heading   *color.Color
	errorText *color.Color
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:       out,
		bold:      color.New(color.Bold),
		italic:    color.New(color.Italic),
		faint:     color.New(color.Faint),
		underline: color.New(color.Underline),
		heading:   color.New(color.FgCyan, color.Bold),
		errorText: color.New(color.FgRed),
	}
}

func (t *Terminal) ShowIdle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.faint.Sprint("Type a word to look it up. :help lists the commands."))
}

func (t *Terminal) ShowLoading(word string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.faint.Sprintf("Looking up %q...", word))
}

func (t *Terminal) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.errorText.Sprint(message))
}

func (t *Terminal) ShowResult(model render.DisplayModel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.printf("\n%s", t.bold.Sprint(model.Title))
	if model.Phonetic != "" {
		t.printf("  %s", t.italic.Sprint(model.Phonetic))
	}
	t.printf("\n")

	for _, meaning := range model.Meanings {
		t.printf("\n%s\n", t.heading.Sprint(meaning.PartOfSpeech))
		for i, definition := range meaning.Definitions {
			t.printf("  %d. %s\n", i+1, t.text(definition.Text, definition.TextTokens))
			if definition.Example != "" {
				t.printf("     %s\n", t.italic.Sprintf("%q", t.text(definition.Example, definition.ExampleTokens)))
			}
		}
	}

	t.printf("\n")
	if len(model.Synonyms) > 0 {
		t.printf("%s %s\n", t.bold.Sprint("Synonyms:"), t.chips(model.Synonyms))
	}
	if len(model.Antonyms) > 0 {
		t.printf("%s %s\n", t.bold.Sprint("Antonyms:"), t.chips(model.Antonyms))
	}
	t.printf("%s\n", t.bold.Sprint("Images:"))
	if model.NoImages {
		t.printf("  %s\n", t.faint.Sprint(model.ImagePlaceholder))
	}
	for _, image := range model.Images {
		t.printf("  %s\n", image)
	}
	t.printf("\n")
	t.words = navigableWords(model)
}

// Words returns the navigable words of the last result shown in annotated mode.
func (t *Terminal) Words() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.words...)
}

// SetButtons is registered as the navigator listener.
func (t *Terminal) SetButtons(buttons history.Buttons) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buttons = buttons
}

// Prompt shows which navigation buttons are enabled.
func (t *Terminal) Prompt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, next := "[ ]", "[ ]"
	if t.buttons.CanGoPrev {
		prev = "[<]"
	}
	if t.buttons.CanGoNext {
		next = "[>]"
	}
	t.printf("%s %s > ", prev, next)
}

// ShowHistory lists the entries newest first with the 1-based index used by :open.
func (t *Terminal) ShowHistory(snapshot history.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(snapshot.Entries) == 0 {
		t.printf("%s\n", t.faint.Sprint("No search history yet"))
		return
	}
	for i := len(snapshot.Entries) - 1; i >= 0; i-- {
		line := fmt.Sprintf("%3d  %s", i+1, snapshot.Entries[i])
		if i == snapshot.Cursor {
			line = t.bold.Sprint(line + "  *")
		}
		t.printf("%s\n", line)
	}
}

func (t *Terminal) ShowNotice() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.faint.Sprint(privacyNotice))
}

// Info prints a plain line.
func (t *Terminal) Info(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf(format+"\n", args...)
}

// text joins tokens, underlining the navigable words. Without tokens it returns plain text.
func (t *Terminal) text(plain string, tokens []annotate.Token) string {
	if len(tokens) == 0 {
		return plain
	}
	var sb strings.Builder
	for _, token := range tokens {
		if token.Navigable {
			sb.WriteString(t.underline.Sprint(token.Text))
			continue
		}
		sb.WriteString(token.Text)
	}
	return sb.String()
}

func navigableWords(model render.DisplayModel) []string {
	var tokens []annotate.Token
	for _, meaning := range model.Meanings {
		for _, definition := range meaning.Definitions {
			tokens = append(tokens, definition.TextTokens...)
			tokens = append(tokens, definition.ExampleTokens...)
		}
	}
	return annotate.Words(tokens)
}

func (t *Terminal) chips(words []string) string {
	chips := make([]string, 0, len(words))
	for _, word := range words {
		chips = append(chips, t.underline.Sprint(word))
	}
	return strings.Join(chips, ", ")
}

func (t *Terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}
