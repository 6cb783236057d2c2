package fuzztests

import (
	"context"
	"testing"
	"time"

	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/format"
	"kaleido/internal/lexer"
	"kaleido/internal/parser"
	"kaleido/internal/source"
	"kaleido/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseBytes(input []byte) (*ast.Builder, *source.File, parser.Result) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.kal", input))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), lexer.NewFromFile(file), builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: diag.NewBag(128)},
		MaxErrors: 128,
	})
	return builder, file, res
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		builder, file, res := parseBytes(clampInput(input))
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
		if err := testkit.CheckTreeInvariants(builder, res.File, parser.Standard()); err != nil {
			t.Fatalf("tree invariants: %v", err)
		}
		if res.Errors > 0 && (res.Bag == nil || res.Bag.Len() == 0) {
			t.Fatalf("%d errors counted but none reported", res.Errors)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Каждая ошибка пропускает хотя бы один токен, так что цикл обязан завершиться.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("def foo("))
	f.Add([]byte("def foo(x y"))
	f.Add([]byte("foo(1 2"))
	f.Add([]byte("(1 + (2 * (3"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			parseBytes(input)
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser did not finish within %v on %q", parseTimeout, input)
		}
	})
}

// FuzzFormatRoundTrip: для безошибочного разбора печать и повторный разбор
// дают то же дерево.
func FuzzFormatRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		b1, _, r1 := parseBytes(clampInput(input))
		if r1.Errors > 0 {
			return
		}
		ops := parser.Standard()
		printed := format.File(b1, r1.File, ops)
		b2, _, r2 := parseBytes(printed)
		if r2.Errors > 0 {
			t.Fatalf("formatted output does not parse:\n%s", printed)
		}
		first, second := b1.Files.Get(r1.File).Items, b2.Files.Get(r2.File).Items
		if len(first) != len(second) {
			t.Fatalf("item count changed %d -> %d:\n%s", len(first), len(second), printed)
		}
		for i := range first {
			if a, b := b1.ItemSExpr(first[i]), b2.ItemSExpr(second[i]); a != b {
				t.Fatalf("item %d changed: %s -> %s\n%s", i, a, b, printed)
			}
		}
	})
}
