package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Token
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "sentence with punctuation",
			text: "A fruit, round.",
			want: []Token{
				{Text: "A", Word: "a", Navigable: true},
				{Text: " "},
				{Text: "fruit", Word: "fruit", Navigable: true},
				{Text: ", "},
				{Text: "round", Word: "round", Navigable: true},
				{Text: "."},
			},
		},
		{
			name: "apostrophes and hyphens split words",
			text: "don't self-aware",
			want: []Token{
				{Text: "don", Word: "don", Navigable: true},
				{Text: "'"},
				{Text: "t", Word: "t", Navigable: true},
				{Text: " "},
				{Text: "self", Word: "self", Navigable: true},
				{Text: "-"},
				{Text: "aware", Word: "aware", Navigable: true},
			},
		},
		{
			name: "non-ASCII letters pass through",
			text: "café 42",
			want: []Token{
				{Text: "caf", Word: "caf", Navigable: true},
				{Text: "é 42"},
			},
		},
		{
			name: "only separators",
			text: " ... ",
			want: []Token{{Text: " ... "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annotate(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, Join(got))
		})
	}
}

func TestAnnotate_Idempotent(t *testing.T) {
	texts := []string{
		"The quick, brown fox - jumps!",
		"  leading and trailing  ",
		"naïve résumé",
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			first := Annotate(text)
			assert.Equal(t, first, Annotate(Join(first)))
		})
	}
}

func TestWords(t *testing.T) {
	got := Words(Annotate("Apple pie, apple tart."))
	assert.Equal(t, []string{"apple", "pie", "tart"}, got)
}
