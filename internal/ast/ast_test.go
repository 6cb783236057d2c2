package ast_test

import (
	"testing"

	"kaleido/internal/ast"
	"kaleido/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state: id=%d len=%d", id, a.Len())
	}
}

func buildSample(t *testing.T) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	foo := b.StringsInterner.Intern("foo")
	x := b.StringsInterner.Intern("x")

	one := b.Exprs.NewNumber(sp, 1, "1")
	xv := b.Exprs.NewVariable(sp, x)
	mul := b.Exprs.NewBinary(sp, '*', xv, b.Exprs.NewNumber(sp, 2.5, "2.5"))
	call := b.Exprs.NewCall(sp, foo, []ast.ExprID{one, mul})
	return b, call
}

func TestExprAccessors(t *testing.T) {
	b, call := buildSample(t)
	data, ok := b.Exprs.Call(call)
	if !ok || len(data.Args) != 2 {
		t.Fatalf("Call accessor failed: %v %v", data, ok)
	}
	if _, ok := b.Exprs.Binary(call); ok {
		t.Fatalf("Binary accessor must reject a call")
	}
	bin, ok := b.Exprs.Binary(data.Args[1])
	if !ok || bin.Op != '*' {
		t.Fatalf("expected '*' binary, got %v", bin)
	}
	if got := b.SExpr(call); got != "(call foo 1 (* x 2.5))" {
		t.Fatalf("SExpr = %q", got)
	}
}

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	b, call := buildSample(t)
	seen := map[ast.ExprID]int{}
	b.Exprs.WalkExpr(call, func(id ast.ExprID, _ *ast.Expr) bool {
		seen[id]++
		return true
	})
	if len(seen) != int(b.Exprs.Arena.Len()) {
		t.Fatalf("visited %d nodes, arena has %d", len(seen), b.Exprs.Arena.Len())
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("node %d visited %d times", id, n)
		}
	}
}

func TestItems(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	in := b.StringsInterner
	proto := b.Items.NewPrototype(sp, in.Intern("add"), []source.StringID{in.Intern("a"), in.Intern("b")})
	body := b.Exprs.NewBinary(sp, '+', b.Exprs.NewVariable(sp, in.Intern("a")), b.Exprs.NewVariable(sp, in.Intern("b")))
	def := b.Items.NewDef(sp, proto, body)

	ext := b.Items.NewExtern(sp, b.Items.NewPrototype(sp, in.Intern("sin"), []source.StringID{in.Intern("x")}))
	anon := b.Items.NewPrototype(sp, source.NoStringID, nil)
	top := b.Items.NewTopLevel(sp, anon, b.Exprs.NewNumber(sp, 4, "4"))

	cases := map[ast.ItemID]string{
		def: "(def add (a b) (+ a b))",
		ext: "(extern sin (x))",
		top: "(toplevel 4)",
	}
	for id, want := range cases {
		if got := b.ItemSExpr(id); got != want {
			t.Errorf("item %d: got %q, want %q", id, got, want)
		}
	}

	fn, ok := b.Items.Func(top)
	if !ok || !fn.Anonymous || b.Name(b.Items.Prototype(fn.Proto).Name) != "" {
		t.Fatalf("top-level item must be an anonymous function")
	}
	if _, ok := b.Items.Func(ext); ok {
		t.Fatalf("extern has no function")
	}
	if p, ok := b.Items.ProtoOf(def); !ok || len(p.Params) != 2 {
		t.Fatalf("ProtoOf(def) = %v, %v", p, ok)
	}
}

func TestPushItem(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	f := b.NewFile(source.Span{})
	proto := b.Items.NewPrototype(source.Span{}, b.StringsInterner.Intern("f"), nil)
	b.PushItem(f, b.Items.NewExtern(source.Span{}, proto))
	if got := len(b.Files.Get(f).Items); got != 1 {
		t.Fatalf("file has %d items, want 1", got)
	}
}
