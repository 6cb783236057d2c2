package parser

import (
	"kaleido/internal/diag"
	"kaleido/internal/source"
)

// Enough: достигли ли мы максимального количества ошибок.
func (p *Parser) Enough() bool {
	if p.opts.MaxErrors == 0 {
		return false
	}
	return p.errors >= p.opts.MaxErrors
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// fail создаёт ошибку для текущего токена и сообщает о ней ровно один раз.
func (p *Parser) fail(code diag.Code, expected string) error {
	e := &Error{
		Code:     code,
		Expected: expected,
		Found:    p.cur,
		Span:     p.cur.Span,
	}
	p.report(e)
	return e
}

// report молчит после MaxErrors, но ошибки продолжают считаться.
func (p *Parser) report(e *Error) {
	silenced := p.Enough()
	p.errors++
	if p.opts.Reporter == nil || silenced {
		return
	}
	diag.ReportError(p.opts.Reporter, e.Code, e.Span, e.Error()).
		WithNote(e.Found.Span, "found "+e.Found.Describe()).
		Emit()
}
