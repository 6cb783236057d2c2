package parser

import (
	"slices"

	"kaleido/internal/token"
)

// Стандартные приоритеты; больше: связывает сильнее.
const (
	precComparison     = 10 // <
	precAdditive       = 20 // + -
	precMultiplicative = 40 // *
)

// OpTable maps single-byte binary operators to their precedence.
// It is owned by one parser session and may be changed between constructs.
type OpTable struct {
	prec [128]int
}

// NewOpTable returns an empty table: no byte is an operator.
func NewOpTable() *OpTable {
	return &OpTable{}
}

// Standard returns a table with '<', '+', '-' and '*' installed.
func Standard() *OpTable {
	t := NewOpTable()
	t.Install('<', precComparison)
	t.Install('+', precAdditive)
	t.Install('-', precAdditive)
	t.Install('*', precMultiplicative)
	return t
}

// Install registers op with prec. Non-ASCII bytes are ignored;
// prec <= 0 effectively disables the operator.
func (t *OpTable) Install(op byte, prec int) {
	if op >= 128 {
		return
	}
	t.prec[op] = prec
}

// Remove unregisters op.
func (t *OpTable) Remove(op byte) {
	if op < 128 {
		t.prec[op] = 0
	}
}

// Clone returns an independent copy.
func (t *OpTable) Clone() *OpTable {
	cp := *t
	return &cp
}

// Precedence returns the precedence of op, or -1 when op is not ASCII,
// not registered, or registered with a non-positive value.
func (t *OpTable) Precedence(op byte) int {
	if op >= 128 {
		return -1
	}
	p := t.prec[op]
	if p <= 0 {
		return -1
	}
	return p
}

// Lookup: приоритет текущего токена; -1 для всего, что не Char-оператор.
func (t *OpTable) Lookup(tok token.Token) int {
	if tok.Kind != token.Char {
		return -1
	}
	return t.Precedence(tok.Ch)
}

// Op is one registered operator.
type Op struct {
	Char byte
	Prec int
}

// Ops lists registered operators sorted by precedence, then by byte.
func (t *OpTable) Ops() []Op {
	var out []Op
	for c, p := range t.prec {
		if p > 0 {
			out = append(out, Op{Char: byte(c), Prec: p})
		}
	}
	slices.SortFunc(out, func(a, b Op) int {
		if a.Prec != b.Prec {
			return a.Prec - b.Prec
		}
		return int(a.Char) - int(b.Char)
	})
	return out
}
