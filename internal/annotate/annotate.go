// Package annotate splits display text into navigable words and pass-through text.
package annotate

import "strings"

// Token is one run of the annotated text.
type Token struct {
	Text      string
	Word      string
	Navigable bool
}

// Annotate splits text into maximal runs of ASCII letters and maximal runs of everything else.
// Letter runs are navigable and carry their lower-cased form as Word.
func Annotate(text string) []Token {
	var tokens []Token
	start := 0
	for start < len(text) {
		letters := isASCIILetter(text[start])
		end := start + 1
		for end < len(text) && isASCIILetter(text[end]) == letters {
			end++
		}

		run := text[start:end]
		if letters {
			tokens = append(tokens, Token{Text: run, Word: strings.ToLower(run), Navigable: true})
		} else {
			tokens = append(tokens, Token{Text: run})
		}
		start = end
	}
	return tokens
}

// Join concatenates the token texts back into the original string.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.Text)
	}
	return b.String()
}

// Words returns the distinct navigable words in order of first appearance.
func Words(tokens []Token) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, token := range tokens {
		if !token.Navigable {
			continue
		}
		if _, ok := seen[token.Word]; ok {
			continue
		}
		seen[token.Word] = struct{}{}
		words = append(words, token.Word)
	}
	return words
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
