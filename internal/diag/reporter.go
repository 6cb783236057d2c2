package diag

import (
	"fmt"
	"io"
	"sync"

	"kaleido/internal/source"
)

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), WriterReporter (строка на диагностику),
// MultiReporter (fan-out), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			Code:     code,
			Message:  msg,
			Primary:  primary,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Span: sp, Msg: msg})
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// MultiReporter forwards each diagnostic to every non-nil reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	for _, r := range m {
		if r != nil {
			r.Report(code, sev, primary, msg, notes)
		}
	}
}

// WriterReporter пишет одну строку на диагностику, по умолчанию "error: <msg>".
// Safe for concurrent use.
type WriterReporter struct {
	W io.Writer
	// Format overrides the line layout; the trailing newline is added by the reporter.
	Format func(Diagnostic) string

	mu    sync.Mutex
	count int
}

// NewWriterReporter returns a reporter writing plain lines to w.
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{W: w}
}

func (r *WriterReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	d := Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes}
	line := sev.Label() + ": " + msg
	if r.Format != nil {
		line = r.Format(d)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.W != nil {
		fmt.Fprintln(r.W, line)
	}
}

// Count returns how many diagnostics were written.
func (r *WriterReporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
