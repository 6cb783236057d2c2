package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"kaleido/internal/token"
)

func TestStandardPrecedence(t *testing.T) {
	ops := Standard()
	cases := map[byte]int{'<': 10, '+': 20, '-': 20, '*': 40, '/': -1, '(': -1, 0x80: -1, 0xff: -1}
	for op, want := range cases {
		if got := ops.Precedence(op); got != want {
			t.Errorf("Precedence(%q) = %d, want %d", op, got, want)
		}
	}
}

func TestLookupOnlyCharTokens(t *testing.T) {
	ops := Standard()
	if ops.Lookup(token.Token{Kind: token.Ident, Text: "+"}) != -1 {
		t.Fatalf("identifiers are never operators")
	}
	if ops.Lookup(token.Token{Kind: token.EOF}) != -1 {
		t.Fatalf("EOF is never an operator")
	}
	if ops.Lookup(token.Token{Kind: token.Char, Ch: '*'}) != 40 {
		t.Fatalf("'*' must be 40")
	}
}

func TestNonPositiveDisables(t *testing.T) {
	ops := Standard()
	ops.Install('+', 0)
	ops.Install('-', -5)
	if ops.Precedence('+') != -1 || ops.Precedence('-') != -1 {
		t.Fatalf("non-positive entries must look up as -1")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Standard()
	b := a.Clone()
	b.Install('/', 40)
	b.Remove('<')
	if a.Precedence('/') != -1 || a.Precedence('<') != 10 {
		t.Fatalf("clone leaked into original")
	}
	want := []Op{{'+', 20}, {'-', 20}, {'*', 40}, {'/', 40}}
	if diff := cmp.Diff(want, b.Ops()); diff != "" {
		t.Fatalf("Ops mismatch (-want +got):\n%s", diff)
	}
}
