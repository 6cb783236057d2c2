package ast

import (
	"kaleido/internal/source"
)

// ExprKind is the closed set of expression variants.
type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprVariable
	ExprBinary
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprVariable:
		return "Variable"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// Expr: заголовок выражения; данные лежат в арене своего вида.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprNumberData struct {
	Value float64
	// Text: исходная запись литерала (с запятыми, если были).
	Text string
}

type ExprVariableData struct {
	Name source.StringID
}

type ExprBinaryData struct {
	Op    byte
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee source.StringID
	Args   []ExprID
}
