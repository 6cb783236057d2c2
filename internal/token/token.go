package token

import (
	"fmt"
	"strconv"

	"kaleido/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	// Text is the identifier spelling or the raw numeric text.
	Text string
	// Num is the decoded value of a Number token.
	Num float64
	// Ch is the byte of a Char token.
	Ch byte
}

// Is reports whether the token is the Char token c.
func (t Token) Is(c byte) bool {
	return t.Kind == Char && t.Ch == c
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind == KwDef || t.Kind == KwExtern
}

// Describe renders the token for diagnostics, e.g. `'('`, `identifier "foo"`, `end of input`.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case KwDef:
		return "'def'"
	case KwExtern:
		return "'extern'"
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case Number:
		return "number " + t.Text
	case Char:
		if t.Ch < 0x20 || t.Ch >= 0x7f {
			return fmt.Sprintf("byte 0x%02x", t.Ch)
		}
		return strconv.QuoteRune(rune(t.Ch))
	default:
		return "unknown token"
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	case Char:
		return fmt.Sprintf("Char(%q)", rune(t.Ch))
	default:
		return t.Kind.String()
	}
}
