package parser

import (
	"context"

	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/lexer"
	"kaleido/internal/token"
)

// StepKind classifies what one dispatch step consumed.
type StepKind uint8

const (
	// StepEOF: input is exhausted, nothing was consumed.
	StepEOF StepKind = iota
	// StepSeparator: a ';' was skipped.
	StepSeparator
	// StepItem: a construct was parsed.
	StepItem
	// StepError: a construct failed and one token was skipped.
	StepError
)

// Step is the outcome of one top-level dispatch.
type Step struct {
	Kind     StepKind
	Item     ast.ItemID
	ItemKind ast.ItemKind
}

// Step разбирает одну конструкцию верхнего уровня по текущему токену:
// ';' пропускается, 'def' и 'extern': свои разборщики, остальное: выражение.
// При ошибке пропускает ровно один токен, чтобы цикл гарантированно продвигался.
func (p *Parser) Step() (Step, error) {
	switch {
	case p.cur.Kind == token.EOF:
		return Step{Kind: StepEOF}, nil
	case p.cur.Is(';'):
		p.Advance()
		return Step{Kind: StepSeparator}, nil
	}

	var (
		id   ast.ItemID
		kind ast.ItemKind
		err  error
	)
	switch p.cur.Kind {
	case token.KwDef:
		kind = ast.ItemDef
		id, err = p.ParseDefinition()
	case token.KwExtern:
		kind = ast.ItemExtern
		id, err = p.ParseExtern()
	default:
		kind = ast.ItemTopLevel
		id, err = p.ParseTopLevelExpr()
	}
	if err != nil {
		p.Advance()
		return Step{Kind: StepError, ItemKind: kind}, err
	}
	return Step{Kind: StepItem, Item: id, ItemKind: kind}, nil
}

type Result struct {
	File   ast.FileID
	Bag    *diag.Bag
	Errors uint
	// Err is set when parsing stopped early: context cancellation or a read failure.
	Err error
}

// ParseFile: входная точка для разбора целого потока в ast.File.
// Отменённый ctx останавливает цикл между конструкциями.
func ParseFile(ctx context.Context, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := New(lx, arenas, opts)
	first := p.Advance()
	file := arenas.NewFile(first.Span)

	var err error
	for {
		if err = ctx.Err(); err != nil {
			break
		}
		st, _ := p.Step()
		if st.Kind == StepEOF {
			break
		}
		if st.Kind == StepItem {
			arenas.PushItem(file, st.Item)
		}
	}
	arenas.Files.Get(file).Span = first.Span.Cover(p.cur.Span)
	if err == nil {
		err = lx.Err()
	}

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		File:   file,
		Bag:    bag,
		Errors: p.errors,
		Err:    err,
	}
}
