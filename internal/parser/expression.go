package parser

import (
	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/source"
	"kaleido/internal/token"
)

// ParseExpression разбирает primary и хвост бинарных операторов.
//
//	expression := primary (BINOP primary)*
func (p *Parser) ParseExpression() (ast.ExprID, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.ParseBinOpRHS(0, lhs)
}

// ParseBinOpRHS is the precedence-climbing loop. It folds operators whose
// precedence is at least minPrec onto lhs and stops at the first token that
// binds weaker, which includes every non-operator and end of input.
// Operators of equal precedence fold to the left.
func (p *Parser) ParseBinOpRHS(minPrec int, lhs ast.ExprID) (ast.ExprID, error) {
	for {
		tokPrec := p.ops.Lookup(p.cur)
		if tokPrec < minPrec {
			return lhs, nil
		}

		op := p.cur.Ch
		p.Advance()

		rhs, err := p.parsePrimary()
		if err != nil {
			return ast.NoExprID, err
		}

		// следующий оператор связывает сильнее: он забирает rhs себе
		if nextPrec := p.ops.Lookup(p.cur); tokPrec < nextPrec {
			rhs, err = p.ParseBinOpRHS(tokPrec+1, rhs)
			if err != nil {
				return ast.NoExprID, err
			}
		}

		span := p.exprSpan(lhs).Cover(p.exprSpan(rhs))
		lhs = p.arenas.Exprs.NewBinary(span, op, lhs, rhs)
	}
}

// parsePrimary:
//
//	primary := NUMBER | IDENT [call-args] | '(' expression ')'
func (p *Parser) parsePrimary() (ast.ExprID, error) {
	switch {
	case p.cur.Kind == token.Ident:
		return p.parseIdentifierExpr()
	case p.cur.Kind == token.Number:
		return p.parseNumberExpr()
	case p.cur.Is('('):
		return p.parseParenExpr()
	default:
		return ast.NoExprID, p.fail(diag.SynExpectExpression, "expression")
	}
}

func (p *Parser) parseNumberExpr() (ast.ExprID, error) {
	tok := p.cur
	id := p.arenas.Exprs.NewNumber(tok.Span, tok.Num, tok.Text)
	p.Advance()
	return id, nil
}

// parseParenExpr возвращает внутреннее выражение; скобки в AST не сохраняются.
func (p *Parser) parseParenExpr() (ast.ExprID, error) {
	p.Advance() // '('
	inner, err := p.ParseExpression()
	if err != nil {
		return ast.NoExprID, err
	}
	if !p.cur.Is(')') {
		return ast.NoExprID, p.fail(diag.SynExpectRParen, "')'")
	}
	p.Advance()
	return inner, nil
}

// parseIdentifierExpr: переменная или вызов, если сразу за именем '('.
func (p *Parser) parseIdentifierExpr() (ast.ExprID, error) {
	nameTok := p.cur
	name := p.intern(nameTok.Text)
	p.Advance()

	if !p.cur.Is('(') {
		return p.arenas.Exprs.NewVariable(nameTok.Span, name), nil
	}
	p.Advance() // '('

	var args []ast.ExprID
	if !p.cur.Is(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return ast.NoExprID, err
			}
			args = append(args, arg)

			if p.cur.Is(')') {
				break
			}
			if !p.cur.Is(',') {
				return ast.NoExprID, p.fail(diag.SynExpectArgSeparator, "')' or ','")
			}
			p.Advance()
		}
	}
	p.Advance() // ')'

	return p.arenas.Exprs.NewCall(p.spanFrom(nameTok.Span), name, args), nil
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}
