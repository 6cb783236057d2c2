package diag

import (
	"testing"

	"kaleido/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/testdata/sample.kal", []byte("def f(\nx\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynExpectProtoRParen,
			Message:  "expected ')' in prototype\nfound 'x'",
			Primary:  source.Span{File: file, Start: 7, End: 8},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 5, End: 6}, Msg: "parameter list starts here"},
			},
		},
		{
			Severity: SevError,
			Code:     SynExpectExpression,
			Message:  "unknown token when expecting an expression",
			Primary:  source.Span{File: file, Start: 0, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynExpectExpression,
			Message:  "lost",
			Primary:  source.Span{File: 99},
		},
	}

	expected := "error SYN2001 testdata/sample.kal:1:1 unknown token when expecting an expression\n" +
		"error SYN2006 testdata/sample.kal:2:1 expected ')' in prototype found 'x'\n" +
		"note SYN2006 testdata/sample.kal:1:6 parameter list starts here"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	withoutNotes := "error SYN2001 testdata/sample.kal:1:1 unknown token when expecting an expression\n" +
		"error SYN2006 testdata/sample.kal:2:1 expected ')' in prototype found 'x'"
	if got := FormatShortDiagnostics(diags, fs, false); got != withoutNotes {
		t.Fatalf("notes must be omitted:\n%s", got)
	}
}
