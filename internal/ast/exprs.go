package ast

import (
	"kaleido/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Numbers   *Arena[ExprNumberData]
	Variables *Arena[ExprVariableData]
	Binaries  *Arena[ExprBinaryData]
	Calls     *Arena[ExprCallData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Numbers:   NewArena[ExprNumberData](capHint),
		Variables: NewArena[ExprVariableData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewNumber creates a numeric literal.
func (e *Exprs) NewNumber(span source.Span, value float64, text string) ExprID {
	payload := e.Numbers.Allocate(ExprNumberData{Value: value, Text: text})
	return e.new(ExprNumber, span, PayloadID(payload))
}

// Number returns the literal data for the given expression ID.
func (e *Exprs) Number(id ExprID) (*ExprNumberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNumber {
		return nil, false
	}
	return e.Numbers.Get(uint32(expr.Payload)), true
}

// NewVariable creates a variable reference.
func (e *Exprs) NewVariable(span source.Span, name source.StringID) ExprID {
	payload := e.Variables.Allocate(ExprVariableData{Name: name})
	return e.new(ExprVariable, span, PayloadID(payload))
}

// Variable returns the variable data for the given expression ID.
func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVariable {
		return nil, false
	}
	return e.Variables.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary operation; both operands are moved into it.
func (e *Exprs) NewBinary(span source.Span, op byte, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewCall creates a call. args may be empty.
func (e *Exprs) NewCall(span source.Span, callee source.StringID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Callee: callee,
		Args:   append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// Children возвращает непосредственных потомков выражения слева направо.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprNumber, ExprVariable:
		return nil
	case ExprBinary:
		bin := e.Binaries.Get(uint32(expr.Payload))
		return []ExprID{bin.Left, bin.Right}
	case ExprCall:
		return e.Calls.Get(uint32(expr.Payload)).Args
	default:
		return nil
	}
}
