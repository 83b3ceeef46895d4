package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dictlens/internal/gateway"
)

// CacheStatus lists the gateway caches and their entries.
func CacheStatus(g *gateway.Gateway, w io.Writer, format OutputFormat) error {
	statuses, err := g.Status()
	if err != nil {
		return fmt.Errorf("gateway.Status > %w", err)
	}

	switch format {
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(statuses); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
		return encoder.Close()
	case OutputText, "":
		terminal := NewTerminal(w)
		if len(statuses) == 0 {
			terminal.Info("No caches")
			return nil
		}
		for _, status := range statuses {
			terminal.Info("%s (%d entries)", status.Name, len(status.Entries))
			for _, entry := range status.Entries {
				terminal.Info("  %s", entry)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func CacheClear(g *gateway.Gateway, w io.Writer) error {
	if err := g.Clear(); err != nil {
		return fmt.Errorf("gateway.Clear > %w", err)
	}
	NewTerminal(w).Info("Cleared every cache.")
	return nil
}
