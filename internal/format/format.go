// Package format prints an AST back to canonical source. Parentheses are
// emitted only where the active precedence table needs them, so that
// parsing the output yields the same tree.
package format

import (
	"math"
	"strconv"
	"strings"

	"kaleido/internal/ast"
)

// Precedencer is satisfied by *parser.OpTable.
type Precedencer interface {
	Precedence(op byte) int
}

type printer struct {
	b   *ast.Builder
	ops Precedencer
	sb  strings.Builder
}

// Expr renders one expression.
func Expr(b *ast.Builder, id ast.ExprID, ops Precedencer) string {
	p := &printer{b: b, ops: ops}
	p.expr(id)
	return p.sb.String()
}

// Item renders one top-level item without the trailing ';'.
func Item(b *ast.Builder, id ast.ItemID, ops Precedencer) string {
	p := &printer{b: b, ops: ops}
	p.item(id)
	return p.sb.String()
}

// File renders every item of a file, one per line, each terminated by ';'.
// The separator keeps a bare top-level name from absorbing a following '(' as a call.
func File(b *ast.Builder, file ast.FileID, ops Precedencer) []byte {
	p := &printer{b: b, ops: ops}
	f := b.Files.Get(file)
	if f == nil {
		return nil
	}
	for _, it := range f.Items {
		p.item(it)
		p.sb.WriteString(";\n")
	}
	return []byte(p.sb.String())
}

func (p *printer) item(id ast.ItemID) {
	item := p.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemDef:
		fn, _ := p.b.Items.Func(id)
		p.sb.WriteString("def ")
		p.proto(fn.Proto)
		p.sb.WriteByte(' ')
		p.expr(fn.Body)
	case ast.ItemExtern:
		p.sb.WriteString("extern ")
		p.proto(ast.ProtoID(item.Payload))
	case ast.ItemTopLevel:
		fn, _ := p.b.Items.Func(id)
		p.expr(fn.Body)
	}
}

func (p *printer) proto(id ast.ProtoID) {
	proto := p.b.Items.Prototype(id)
	p.sb.WriteString(p.b.Name(proto.Name))
	p.sb.WriteByte('(')
	for i, param := range proto.Params {
		if i > 0 {
			p.sb.WriteByte(' ')
		}
		p.sb.WriteString(p.b.Name(param))
	}
	p.sb.WriteByte(')')
}

func (p *printer) expr(id ast.ExprID) {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprNumber:
		n, _ := p.b.Exprs.Number(id)
		p.sb.WriteString(number(n))
	case ast.ExprVariable:
		v, _ := p.b.Exprs.Variable(id)
		p.sb.WriteString(p.b.Name(v.Name))
	case ast.ExprCall:
		call, _ := p.b.Exprs.Call(id)
		p.sb.WriteString(p.b.Name(call.Callee))
		p.sb.WriteByte('(')
		for i, arg := range call.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.expr(arg)
		}
		p.sb.WriteByte(')')
	case ast.ExprBinary:
		bin, _ := p.b.Exprs.Binary(id)
		prec := p.prec(bin.Op)
		// слева ассоциативность сама собирает равный приоритет, справа: нет
		p.operand(bin.Left, func(child int) bool { return child < prec })
		p.sb.WriteByte(' ')
		p.sb.WriteByte(bin.Op)
		p.sb.WriteByte(' ')
		p.operand(bin.Right, func(child int) bool { return child <= prec })
	}
}

func (p *printer) operand(id ast.ExprID, needParens func(childPrec int) bool) {
	bin, ok := p.b.Exprs.Binary(id)
	if ok && needParens(p.prec(bin.Op)) {
		p.sb.WriteByte('(')
		p.expr(id)
		p.sb.WriteByte(')')
		return
	}
	p.expr(id)
}

func (p *printer) prec(op byte) int {
	if p.ops == nil {
		return 0
	}
	return max(p.ops.Precedence(op), 0)
}

// number печатает значение без экспоненты: лексер не знает 'e'.
// Для бесконечностей остаётся исходный текст.
func number(n *ast.ExprNumberData) string {
	if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		return n.Text
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}
