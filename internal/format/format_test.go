package format_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kaleido/internal/ast"
	"kaleido/internal/format"
	"kaleido/internal/lexer"
	"kaleido/internal/parser"
	"kaleido/internal/source"
)

func parse(t *testing.T, src string, ops *parser.OpTable) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.kal", []byte(src))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), lexer.NewFromFile(fs.Get(id)), b, parser.Options{Ops: ops})
	if res.Errors != 0 {
		t.Fatalf("parse %q: %d errors", src, res.Errors)
	}
	return b, res.File
}

func sexprs(b *ast.Builder, file ast.FileID) []string {
	var out []string
	for _, it := range b.Files.Get(file).Items {
		out = append(out, b.ItemSExpr(it))
	}
	return out
}

func TestFormatMinimalParens(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1+2*3", "1 + 2 * 3;\n"},
		{"(1+2)*3", "(1 + 2) * 3;\n"},
		{"1-(2-3)", "1 - (2 - 3);\n"},
		{"(1-2)-3", "1 - 2 - 3;\n"},
		{"((a))", "a;\n"},
		{"a < (b < c)", "a < (b < c);\n"},
		{"def f(a,b) a*(b+1)", "def f(a b) a * (b + 1);\n"},
		{"extern sin(x)", "extern sin(x);\n"},
		{"foo( 1 ,2+3 )", "foo(1, 2 + 3);\n"},
		{"1,000 + .5", "1 + 0.5;\n"},
	}
	for _, tt := range tests {
		b, file := parse(t, tt.in, nil)
		got := string(format.File(b, file, parser.Standard()))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	ops := parser.Standard()
	ops.Install('/', 40)
	inputs := []string{
		"def fib(n) fib(n-1) + fib(n-2)",
		"extern cos(x); extern atan2(y x)",
		"a - (b - (c - d)) * (e + f) < g / (h / i)",
		"f ; (1+2)*3",
		"def avg(a, b, c) (a + b + c) * 0.3333",
		"1e5",
		"123456789012345678901234567890",
		"foo( 1 ,2+3 )",
		"poly(1, 2, 3, 4) < 100 * (1 + 2)",
		"g(1,000, .5, x)",
	}
	for _, src := range inputs {
		b1, f1 := parse(t, src, ops)
		printed := string(format.File(b1, f1, ops))
		b2, f2 := parse(t, printed, ops)
		if diff := cmp.Diff(sexprs(b1, f1), sexprs(b2, f2)); diff != "" {
			t.Errorf("round trip of %q via %q changed the tree (-first +second):\n%s", src, printed, diff)
		}
		// повторная печать стабильна
		if again := string(format.File(b2, f2, ops)); again != printed {
			t.Errorf("format not idempotent: %q vs %q", printed, again)
		}
	}
}

func TestFormatNumericArgsReparse(t *testing.T) {
	b, file := parse(t, "foo( 1 ,2+3 ); bar(4, 5)", nil)
	printed := format.File(b, file, parser.Standard())
	if diff := cmp.Diff("foo(1, 2 + 3);\nbar(4, 5);\n", string(printed)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	b2, file2 := parse(t, string(printed), nil)
	want := []string{"(toplevel (call foo 1 (+ 2 3)))", "(toplevel (call bar 4 5))"}
	if diff := cmp.Diff(want, sexprs(b2, file2)); diff != "" {
		t.Fatalf("reparsed tree (-want +got):\n%s", diff)
	}
}
