package token_test

import (
	"testing"

	"kaleido/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"def":    token.KwDef,
		"extern": token.KwExtern,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = (%v, %v), want (%v, true)", lexeme, got, ok, want)
		}
	}

	// регистр важен
	for _, s := range []string{"Def", "DEF", "Extern", "define", "ext", "x"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestTokenIs(t *testing.T) {
	lp := token.Token{Kind: token.Char, Ch: '('}
	if !lp.Is('(') || lp.Is(')') {
		t.Fatalf("Is mismatch for %v", lp)
	}
	id := token.Token{Kind: token.Ident, Text: "("}
	if id.Is('(') {
		t.Fatalf("identifiers must never match Is")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Kind: token.EOF}, "end of input"},
		{token.Token{Kind: token.KwDef}, "'def'"},
		{token.Token{Kind: token.Ident, Text: "foo"}, `identifier "foo"`},
		{token.Token{Kind: token.Number, Text: "1.5", Num: 1.5}, "number 1.5"},
		{token.Token{Kind: token.Char, Ch: ')'}, "')'"},
		{token.Token{Kind: token.Char, Ch: 0x01}, "byte 0x01"},
	}
	for _, tc := range cases {
		if got := tc.tok.Describe(); got != tc.want {
			t.Errorf("Describe(%v) = %q, want %q", tc.tok, got, tc.want)
		}
	}
}
