package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"kaleido/internal/ast"
	"kaleido/internal/source"
)

// OpLookup is the slice of parser.OpTable the checks need.
type OpLookup interface {
	Precedence(op byte) int
}

// CheckSpanInvariants runs span checks on a parsed file:
// 1) file.Span lies within the file content
// 2) every item span is non-empty and fully contained in file.Span
// 3) every expression span reachable from an item lies inside that item
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.Empty() {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		fn, ok := b.Items.Func(it)
		if !ok {
			continue
		}
		var bad error
		b.Exprs.WalkExpr(fn.Body, func(id ast.ExprID, e *ast.Expr) bool {
			if bad == nil && !sp.Contains(e.Span) {
				bad = fmt.Errorf("expr %d span %v is outside item span %v", id, e.Span, sp)
			}
			return bad == nil
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

// CheckTreeInvariants verifies the ownership and shape rules of the AST:
// every expression is referenced by exactly one parent, binary operators are
// registered in ops, calls and variables carry names, and the anonymous
// prototype only appears on top-level items.
func CheckTreeInvariants(b *ast.Builder, fileID ast.FileID, ops OpLookup) error {
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	seen := make(map[ast.ExprID]struct{})

	for _, it := range f.Items {
		item := b.Items.Get(it)
		proto, ok := b.Items.ProtoOf(it)
		if item == nil || !ok {
			return fmt.Errorf("item %d has no prototype", it)
		}
		anonymous := proto.Name == source.NoStringID
		if anonymous != (item.Kind == ast.ItemTopLevel) {
			return fmt.Errorf("item %d (%s): anonymous=%v", it, item.Kind, anonymous)
		}
		if anonymous && len(proto.Params) != 0 {
			return fmt.Errorf("item %d: anonymous prototype has params", it)
		}
		for _, p := range proto.Params {
			if p == source.NoStringID {
				return fmt.Errorf("item %d: empty parameter name", it)
			}
		}

		fn, ok := b.Items.Func(it)
		if !ok {
			continue
		}
		if !fn.Body.IsValid() {
			return fmt.Errorf("item %d: function without body", it)
		}
		if err := checkExpr(b, fn.Body, ops, seen); err != nil {
			return fmt.Errorf("item %d: %w", it, err)
		}
	}
	return nil
}

func checkExpr(b *ast.Builder, id ast.ExprID, ops OpLookup, seen map[ast.ExprID]struct{}) error {
	if _, dup := seen[id]; dup {
		return fmt.Errorf("expr %d has more than one parent", id)
	}
	seen[id] = struct{}{}

	e := b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("dangling expr id %d", id)
	}
	switch e.Kind {
	case ast.ExprNumber:
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		if v.Name == source.NoStringID {
			return fmt.Errorf("expr %d: variable without name", id)
		}
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		if ops != nil && ops.Precedence(bin.Op) <= 0 {
			return fmt.Errorf("expr %d: operator %q is not registered", id, bin.Op)
		}
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		if call.Callee == source.NoStringID {
			return fmt.Errorf("expr %d: call without callee", id)
		}
	default:
		return fmt.Errorf("expr %d: unknown kind %d", id, e.Kind)
	}
	for _, child := range b.Exprs.Children(id) {
		if err := checkExpr(b, child, ops, seen); err != nil {
			return err
		}
	}
	return nil
}
