package render

import (
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/dictlens/internal/assets"
)

// Sheet is the data passed to the word sheet template.
type Sheet struct {
	Title string
	Date  time.Time
	Words []DisplayModel
}

// Markdown writes sheet as markdown using the template at templatePath or the embedded one.
func Markdown(w io.Writer, sheet Sheet, templatePath string) error {
	tmpl, err := assets.ParseWordSheetTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("assets.ParseWordSheetTemplate > %w", err)
	}
	if err := tmpl.Execute(w, sheet); err != nil {
		return fmt.Errorf("tmpl.Execute > %w", err)
	}
	return nil
}
