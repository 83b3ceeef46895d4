package search

import (
	"github.com/at-ishikawa/dictlens/internal/lookup"
	"github.com/at-ishikawa/dictlens/internal/render"
)

// State is the session state owned by a Coordinator.
type State struct {
	// CurrentQuery is the word of the result on display, or empty.
	CurrentQuery string
	// LastWord and LastResult are the last successfully rendered lookup.
	LastWord    string
	LastResult  *lookup.Result
	DisplayMode render.Mode
}
