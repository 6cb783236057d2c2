package parser

import (
	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/source"
	"kaleido/internal/token"
	"kaleido/internal/trace"
)

// parsePrototype:
//
//	prototype := IDENT '(' (IDENT | ',')* ')'
//
// Запятые между параметрами необязательны: "f(a b)" и "f(a, b)" равнозначны.
func (p *Parser) parsePrototype() (ast.ProtoID, error) {
	if p.cur.Kind != token.Ident {
		return ast.NoProtoID, p.fail(diag.SynExpectProtoName, "function name")
	}
	nameTok := p.cur
	p.Advance()

	if !p.cur.Is('(') {
		return ast.NoProtoID, p.fail(diag.SynExpectProtoLParen, "'('")
	}

	var params []source.StringID
	for {
		tok := p.Advance()
		if tok.Kind == token.Ident {
			params = append(params, p.intern(tok.Text))
			continue
		}
		if !tok.Is(',') {
			break
		}
	}

	if !p.cur.Is(')') {
		return ast.NoProtoID, p.fail(diag.SynExpectProtoRParen, "')'")
	}
	p.Advance()

	return p.arenas.Items.NewPrototype(p.spanFrom(nameTok.Span), p.intern(nameTok.Text), params), nil
}

// ParseDefinition parses 'def' prototype expression. The current token must be 'def'.
func (p *Parser) ParseDefinition() (ast.ItemID, error) {
	sp := trace.Begin(p.tracer, trace.ScopeItem, "parse_definition", 0)
	defer sp.End("")

	start := p.cur.Span
	p.Advance() // 'def'

	proto, err := p.parsePrototype()
	if err != nil {
		return ast.NoItemID, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return ast.NoItemID, err
	}
	return p.arenas.Items.NewDef(p.spanFrom(start), proto, body), nil
}

// ParseExtern parses 'extern' prototype. The current token must be 'extern'.
func (p *Parser) ParseExtern() (ast.ItemID, error) {
	sp := trace.Begin(p.tracer, trace.ScopeItem, "parse_extern", 0)
	defer sp.End("")

	start := p.cur.Span
	p.Advance() // 'extern'

	proto, err := p.parsePrototype()
	if err != nil {
		return ast.NoItemID, err
	}
	return p.arenas.Items.NewExtern(p.spanFrom(start), proto), nil
}

// ParseTopLevelExpr wraps a bare expression into an anonymous function
// with an empty name and no parameters.
func (p *Parser) ParseTopLevelExpr() (ast.ItemID, error) {
	sp := trace.Begin(p.tracer, trace.ScopeItem, "parse_toplevel", 0)
	defer sp.End("")

	start := p.cur.Span
	body, err := p.ParseExpression()
	if err != nil {
		return ast.NoItemID, err
	}
	span := p.spanFrom(start)
	proto := p.arenas.Items.NewPrototype(source.At(span.File, span.Start), source.NoStringID, nil)
	return p.arenas.Items.NewTopLevel(span, proto, body), nil
}
