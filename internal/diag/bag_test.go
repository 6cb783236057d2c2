package diag

import (
	"bytes"
	"testing"

	"kaleido/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 4 {
		b.Add(Diagnostic{Code: SynExpectRParen, Primary: source.Span{Start: uint32(i)}})
	}
	if b.Len() != 2 || b.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d, want 2/2", b.Len(), b.Dropped())
	}
	if !NewBag(0).Add(Diagnostic{}) {
		t.Fatalf("zero limit must mean unbounded")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevError, Code: SynExpectRParen, Primary: source.Span{Start: 5, End: 6}})
	b.Add(Diagnostic{Severity: SevError, Code: SynExpectExpression, Primary: source.Span{Start: 1, End: 2}})
	b.Add(Diagnostic{Severity: SevError, Code: SynExpectRParen, Primary: source.Span{Start: 5, End: 6}})
	b.Sort()
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", b.Len())
	}
	if b.Items()[0].Code != SynExpectExpression {
		t.Fatalf("sort order wrong: %v", b.Items())
	}
	if !b.HasErrors() {
		t.Fatalf("HasErrors must be true")
	}
}

func TestBagMerge(t *testing.T) {
	a, b := NewBag(1), NewBag(5)
	a.Add(Diagnostic{Code: SynExpectRParen})
	b.Add(Diagnostic{Code: SynExpectProtoName})
	b.Add(Diagnostic{Code: SynExpectProtoLParen})
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merge must grow the limit, len=%d", a.Len())
	}
}

func TestWriterReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterReporter(&buf)
	ReportError(r, SynExpectRParen, source.Span{}, "expected ')'").Emit()
	r.Report(SynExpectProtoName, SevError, source.Span{}, "expected function name in prototype", nil)
	want := "error: expected ')'\nerror: expected function name in prototype\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if r.Count() != 2 {
		t.Fatalf("count = %d", r.Count())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	rb := ReportError(BagReporter{Bag: bag}, SynExpectRParen, source.Span{}, "x").
		WithNote(source.Span{Start: 1}, "opened here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("builder must emit exactly once with its note, got %v", bag.Items())
	}
}

func TestMultiReporter(t *testing.T) {
	a, b := NewBag(5), NewBag(5)
	m := MultiReporter{BagReporter{Bag: a}, nil, BagReporter{Bag: b}}
	m.Report(SynExpectRParen, SevError, source.Span{}, "x", nil)
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("fan-out failed: %d %d", a.Len(), b.Len())
	}
}

func TestCodeID(t *testing.T) {
	if SynExpectArgSeparator.ID() != "SYN2003" || ProjBadOperator.ID() != "PRJ5002" || UnknownCode.ID() != "E0000" {
		t.Fatalf("unexpected IDs")
	}
	if Code(2999).Title() != "Unknown error" {
		t.Fatalf("unknown code title")
	}
}
