package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/lexer"
	"kaleido/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// newTestParser создаёт парсер над строкой и уже читает первый токен.
func newTestParser(input string, ops *OpTable) (*Parser, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kal", []byte(input))
	bag := diag.NewBag(100)
	p := New(lexer.NewFromFile(fs.Get(id)), ast.NewBuilder(ast.Hints{}, nil), Options{
		Reporter: diag.BagReporter{Bag: bag},
		Ops:      ops,
	})
	p.Advance()
	return p, bag
}

// parseExprSource разбирает одно выражение и требует отсутствия ошибок.
func parseExprSource(t *testing.T, input string) (*Parser, ast.ExprID) {
	t.Helper()
	p, bag := newTestParser(input, nil)
	id, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v (diagnostics: %s)", input, err, diagnosticsSummary(bag))
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return p, id
}

func parseFileSource(t *testing.T, input string) (*ast.Builder, Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kal", []byte(input))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(context.Background(), lexer.NewFromFile(fs.Get(id)), b, Options{
		Reporter: diag.BagReporter{Bag: diag.NewBag(100)},
	})
	return b, res
}

func fileSExprs(b *ast.Builder, file ast.FileID) []string {
	var out []string
	for _, item := range b.Files.Get(file).Items {
		out = append(out, b.ItemSExpr(item))
	}
	return out
}
