package diagfmt

import (
	"encoding/json"
	"io"

	"kaleido/internal/diag"
	"kaleido/internal/source"
)

// PositionJSON is a 1-based line and column.
type PositionJSON struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// LocationJSON always carries byte offsets; positions and the source line
// are filled only with JSONOpts.IncludePositions.
type LocationJSON struct {
	File     string        `json:"file"`
	Start    uint32        `json:"start"`
	End      uint32        `json:"end"`
	From     *PositionJSON `json:"from,omitempty"`
	To       *PositionJSON `json:"to,omitempty"`
	LineText string        `json:"line_text,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput: корень JSON-вывода. Dropped считает и отброшенное Bag, и обрезанное Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{Start: span.Start, End: span.End}
	f, ok := l.fs.Lookup(span.File)
	if !ok {
		return loc
	}
	loc.File = f.FormatPath(l.opts.PathMode.String(), l.fs.BaseDir())
	if l.opts.IncludePositions {
		from, to := l.fs.Resolve(span)
		loc.From = &PositionJSON{Line: from.Line, Col: from.Col}
		loc.To = &PositionJSON{Line: to.Line, Col: to.Col}
		loc.LineText = f.GetLine(from.Line)
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	l := locator{fs: fs, opts: opts}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Dropped:     bag.Dropped() + bag.Len() - len(items),
	}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: l.at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: l.at(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes BuildDiagnosticsOutput indented.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}

// Short пишет одну строку на диагностику, см. diag.FormatShortDiagnostics.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
