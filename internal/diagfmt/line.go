package diagfmt

import (
	"fmt"

	"github.com/fatih/color"

	"kaleido/internal/diag"
	"kaleido/internal/source"
)

// LineFormatter returns a diag.WriterReporter layout.
// With a FileSet that knows the span's file the line reads
// "path:line:col: error: msg (found X)"; otherwise "error: msg (found X)",
// which is what the interactive loop prints for streamed input.
func LineFormatter(fs *source.FileSet, useColor bool) func(diag.Diagnostic) string {
	pal := newPalette(useColor)
	return func(d diag.Diagnostic) string {
		msg := d.Message
		if len(d.Notes) > 0 {
			msg = fmt.Sprintf("%s (%s)", msg, d.Notes[0].Msg)
		}
		label := pal.severity(d.Severity).Sprint(d.Severity.Label() + ":")
		if fs != nil {
			if f, ok := fs.Lookup(d.Primary.File); ok && len(f.Content) > 0 {
				start, _ := fs.Resolve(d.Primary)
				return fmt.Sprintf("%s:%d:%d: %s %s", f.FormatPath("auto", fs.BaseDir()), start.Line, start.Col, label, msg)
			}
		}
		return label + " " + msg
	}
}

// Colorize reports whether color output should be used for mode
// ("auto", "on", "off") given whether the target is a terminal.
func Colorize(mode string, isTTY bool) bool {
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTTY && !color.NoColor
	}
}
