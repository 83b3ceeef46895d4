// Package render turns a lookup result into a display model.
package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/dictlens/internal/annotate"
	"github.com/at-ishikawa/dictlens/internal/lookup"
)

const maxRelatedWords = 10

var ErrRenderFault = errors.New("malformed lookup result")

var validate = validator.New()

type Mode int

const (
	ModePlain Mode = iota
	ModeAnnotated
)

func (m Mode) Toggle() Mode {
	if m == ModeAnnotated {
		return ModePlain
	}
	return ModeAnnotated
}

func (m Mode) String() string {
	if m == ModeAnnotated {
		return "annotated"
	}
	return "plain"
}

type DisplayModel struct {
	Word     string
	Title    string
	Phonetic string
	Meanings []MeaningView
	Synonyms []string
	Antonyms []string
	Images   []string
	// NoImages is set with ImagePlaceholder when the result has no image.
	NoImages         bool
	ImagePlaceholder string
	Mode             Mode
}

type MeaningView struct {
	PartOfSpeech string
	Definitions  []DefinitionView
}

// DefinitionView carries tokens only in ModeAnnotated.
type DefinitionView struct {
	Text          string
	Example       string
	TextTokens    []annotate.Token
	ExampleTokens []annotate.Token
}

// Render builds the display model of a successful result. It never modifies result.
func Render(word string, result lookup.Result, mode Mode) (DisplayModel, error) {
	if result.Definition == nil {
		return DisplayModel{}, fmt.Errorf("%w: no definition", ErrRenderFault)
	}
	if err := validate.Struct(result); err != nil {
		return DisplayModel{}, fmt.Errorf("%w: %v", ErrRenderFault, err)
	}

	model := DisplayModel{
		Word:     word,
		Title:    title(word),
		Phonetic: phonetic(result.Definition),
		Synonyms: relatedWords(result.Synonyms),
		Antonyms: relatedWords(result.Antonyms),
		Mode:     mode,
	}

	for _, meaning := range result.Definition.Meanings {
		view := MeaningView{PartOfSpeech: meaning.PartOfSpeech}
		for _, definition := range meaning.Definitions {
			view.Definitions = append(view.Definitions, definitionView(definition, mode))
		}
		model.Meanings = append(model.Meanings, view)
	}

	if len(result.Images) == 0 {
		model.NoImages = true
		model.ImagePlaceholder = fmt.Sprintf("No images available for %q", word)
	} else {
		model.Images = append([]string(nil), result.Images...)
	}
	return model, nil
}

func definitionView(definition lookup.Definition, mode Mode) DefinitionView {
	view := DefinitionView{
		Text:    definition.Definition,
		Example: definition.Example,
	}
	if mode == ModeAnnotated {
		view.TextTokens = annotate.Annotate(definition.Definition)
		if definition.Example != "" {
			view.ExampleTokens = annotate.Annotate(definition.Example)
		}
	}
	return view
}

func title(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

func phonetic(entry *lookup.Entry) string {
	if entry.Phonetic != "" {
		return entry.Phonetic
	}
	if len(entry.Phonetics) > 0 {
		return entry.Phonetics[0].Text
	}
	return ""
}

func relatedWords(words []lookup.RelatedWord) []string {
	var result []string
	for i, w := range words {
		if i >= maxRelatedWords {
			break
		}
		result = append(result, w.Word)
	}
	return result
}
