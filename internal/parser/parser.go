package parser

import (
	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/lexer"
	"kaleido/internal/source"
	"kaleido/internal/token"
	"kaleido/internal/trace"
)

type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
	// Ops: таблица приоритетов; nil означает Standard().
	Ops    *OpTable
	Tracer trace.Tracer
}

// Parser: состояние одной сессии разбора: лексер, текущий токен, таблица операторов.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	ops      *OpTable
	opts     Options
	tracer   trace.Tracer
	cur      token.Token
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	errors   uint
}

// New creates a parser. The first token is not read until Advance is called.
func New(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	ops := opts.Ops
	if ops == nil {
		ops = Standard()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Parser{
		lx:     lx,
		arenas: arenas,
		ops:    ops,
		opts:   opts,
		tracer: tracer,
	}
}

// Advance pulls the next token into the current slot and returns it.
func (p *Parser) Advance() token.Token {
	if p.cur.Kind != token.EOF {
		p.lastSpan = p.cur.Span
	}
	p.cur = p.lx.Next()
	return p.cur
}

// Current returns the token in the current slot.
func (p *Parser) Current() token.Token {
	return p.cur
}

// Builder returns the arenas nodes are allocated into.
func (p *Parser) Builder() *ast.Builder { return p.arenas }

// Ops returns the live precedence table.
func (p *Parser) Ops() *OpTable { return p.ops }

// Errors returns how many errors were reported so far.
func (p *Parser) Errors() uint { return p.errors }

// Lexer returns the underlying token source.
func (p *Parser) Lexer() *lexer.Lexer { return p.lx }

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.StringsInterner.Intern(s)
}
