package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/dictlens/internal/cli"
	"github.com/at-ishikawa/dictlens/internal/render"
)

type OutputFlag cli.OutputFormat

// Set implements pflag.Value.
func (o *OutputFlag) Set(v string) error {
	switch v {
	case string(cli.OutputText), string(cli.OutputYAML):
		*o = OutputFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, cli.OutputText, cli.OutputYAML)
	}
	return nil
}

// String implements pflag.Value.
func (o *OutputFlag) String() string {
	if o == nil {
		return ""
	}
	return string(*o)
}

// Type implements pflag.Value.
func (o *OutputFlag) Type() string {
	return "OutputFlag"
}

type ExportFormatFlag cli.ExportFormat

// Set implements pflag.Value.
func (f *ExportFormatFlag) Set(v string) error {
	switch v {
	case string(cli.ExportMarkdown), string(cli.ExportPDF):
		*f = ExportFormatFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, cli.ExportMarkdown, cli.ExportPDF)
	}
	return nil
}

// String implements pflag.Value.
func (f *ExportFormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *ExportFormatFlag) Type() string {
	return "ExportFormatFlag"
}

// extension returns the file extension of the exported file.
func (f ExportFormatFlag) extension() string {
	if cli.ExportFormat(f) == cli.ExportPDF {
		return ".pdf"
	}
	return ".md"
}

type ModeFlag render.Mode

// Set implements pflag.Value.
func (m *ModeFlag) Set(v string) error {
	switch v {
	case render.ModePlain.String():
		*m = ModeFlag(render.ModePlain)
	case render.ModeAnnotated.String():
		*m = ModeFlag(render.ModeAnnotated)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, render.ModePlain, render.ModeAnnotated)
	}
	return nil
}

// String implements pflag.Value.
func (m *ModeFlag) String() string {
	if m == nil {
		return ""
	}
	return render.Mode(*m).String()
}

// Type implements pflag.Value.
func (m *ModeFlag) Type() string {
	return "ModeFlag"
}

var (
	_ pflag.Value = (*OutputFlag)(nil)
	_ pflag.Value = (*ExportFormatFlag)(nil)
	_ pflag.Value = (*ModeFlag)(nil)
)
