package lookup

import "strings"

// Result is the body of GET /api/word/{word}.
type Result struct {
	Definition *Entry        `json:"definition" yaml:"definition,omitempty"`
	Synonyms   []RelatedWord `json:"synonyms" yaml:"synonyms,omitempty" validate:"dive"`
	Antonyms   []RelatedWord `json:"antonyms" yaml:"antonyms,omitempty" validate:"dive"`
	Images     []string      `json:"images" yaml:"images,omitempty" validate:"dive,url"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the result is an application-level error: an error marker or no definition.
func (r Result) Failed() bool {
	return r.Error != "" || r.Definition == nil
}

type Entry struct {
	Word      string     `json:"word" yaml:"word"`
	Phonetic  string     `json:"phonetic,omitempty" yaml:"phonetic,omitempty"`
	Phonetics []Phonetic `json:"phonetics,omitempty" yaml:"phonetics,omitempty"`
	Meanings  []Meaning  `json:"meanings" yaml:"meanings" validate:"dive"`
}

type Phonetic struct {
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Audio string `json:"audio,omitempty" yaml:"audio,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech" yaml:"part_of_speech" validate:"required"`
	Definitions  []Definition `json:"definitions" yaml:"definitions" validate:"dive"`
}

type Definition struct {
	Definition string `json:"definition" yaml:"definition" validate:"required"`
	Example    string `json:"example,omitempty" yaml:"example,omitempty"`
}

// RelatedWord is a synonym or antonym as returned by Datamuse.
type RelatedWord struct {
	Word  string `json:"word" yaml:"word" validate:"required"`
	Score int    `json:"score,omitempty" yaml:"score,omitempty"`
}

// Normalize turns raw input into a query: trimmed and lower-cased. The result may be empty.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
