package lexer

import (
	"kaleido/internal/token"
)

// scanIdentOrKeyword: [A-Za-z][A-Za-z0-9]*
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off()
	lx.buf = lx.buf[:0]
	for !lx.cursor.EOF() && isAlnum(lx.cursor.Peek()) {
		lx.buf = append(lx.buf, lx.cursor.Peek())
		lx.cursor.Bump()
	}
	text := string(lx.buf)
	lx.ident = text

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: lx.span(start), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: lx.span(start), Text: text}
}
