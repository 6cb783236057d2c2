package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"kaleido/internal/source"
)

type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

type shortEntry struct {
	primary shortLine
	notes   []shortLine
}

// FormatShortDiagnostics renders one line per diagnostic,
// "<severity> <code> <path>:<line>:<col> <message>", ordered by position.
// Notes follow their diagnostic. Diagnostics in unknown files are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	entries := make([]shortEntry, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		primary, ok := shortAt(fs, d.Primary, d.Severity.Label(), d.Code, d.Message)
		if !ok {
			continue
		}
		e := shortEntry{primary: primary}
		if includeNotes {
			for _, n := range d.Notes {
				if nl, ok := shortAt(fs, n.Span, "note", d.Code, n.Msg); ok {
					e.notes = append(e.notes, nl)
				}
			}
		}
		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, func(a, b shortEntry) int {
		x, y := a.primary, b.primary
		return cmp.Or(
			cmp.Compare(x.path, y.path),
			cmp.Compare(x.line, y.line),
			cmp.Compare(x.col, y.col),
			cmp.Compare(x.code, y.code),
			cmp.Compare(x.msg, y.msg),
		)
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.primary.String())
		for _, n := range e.notes {
			lines = append(lines, n.String())
		}
	}
	return strings.Join(lines, "\n")
}

func shortAt(fs *source.FileSet, span source.Span, sev string, code Code, msg string) (shortLine, bool) {
	file, ok := fs.Lookup(span.File)
	if !ok {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return shortLine{
		sev:  sev,
		code: code.ID(),
		path: path,
		line: start.Line,
		col:  start.Col,
		msg:  oneLine(msg),
	}, true
}

// oneLine склеивает многострочное сообщение через пробелы.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
