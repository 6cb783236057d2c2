package ast

import (
	"strconv"
	"strings"
)

// SExpr renders an expression as an s-expression: numbers in shortest form,
// variables by name, (op l r) for binaries and (call f args...) for calls.
func (b *Builder) SExpr(id ExprID) string {
	var sb strings.Builder
	b.writeSExpr(&sb, id)
	return sb.String()
}

func (b *Builder) writeSExpr(sb *strings.Builder, id ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<nil>")
		return
	}
	switch expr.Kind {
	case ExprNumber:
		n, _ := b.Exprs.Number(id)
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case ExprVariable:
		v, _ := b.Exprs.Variable(id)
		sb.WriteString(b.Name(v.Name))
	case ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		sb.WriteByte('(')
		sb.WriteByte(bin.Op)
		sb.WriteByte(' ')
		b.writeSExpr(sb, bin.Left)
		sb.WriteByte(' ')
		b.writeSExpr(sb, bin.Right)
		sb.WriteByte(')')
	case ExprCall:
		call, _ := b.Exprs.Call(id)
		sb.WriteString("(call ")
		sb.WriteString(b.Name(call.Callee))
		for _, arg := range call.Args {
			sb.WriteByte(' ')
			b.writeSExpr(sb, arg)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("<?>")
	}
}

// ProtoSExpr renders "name (p1 p2)".
func (b *Builder) ProtoSExpr(id ProtoID) string {
	p := b.Items.Prototype(id)
	if p == nil {
		return "<nil>"
	}
	names := make([]string, len(p.Params))
	for i, param := range p.Params {
		names[i] = b.Name(param)
	}
	return b.Name(p.Name) + " (" + strings.Join(names, " ") + ")"
}

// ItemSExpr renders a whole item: (def f (a) body), (extern f (a)), (toplevel body).
func (b *Builder) ItemSExpr(id ItemID) string {
	item := b.Items.Get(id)
	if item == nil {
		return "<nil>"
	}
	switch item.Kind {
	case ItemDef:
		fn, _ := b.Items.Func(id)
		return "(def " + b.ProtoSExpr(fn.Proto) + " " + b.SExpr(fn.Body) + ")"
	case ItemExtern:
		return "(extern " + b.ProtoSExpr(ProtoID(item.Payload)) + ")"
	case ItemTopLevel:
		fn, _ := b.Items.Func(id)
		return "(toplevel " + b.SExpr(fn.Body) + ")"
	default:
		return "<?>"
	}
}
