package lexer

import (
	"strings"
	"testing"
)

func TestCursorStartsWithSpace(t *testing.T) {
	c := NewCursor(strings.NewReader("ab"), 10)
	if c.EOF() || c.Peek() != ' ' {
		t.Fatalf("initial lookahead = %q, want space", c.Peek())
	}
	c.Bump()
	if c.Peek() != 'a' || c.Off() != 10 {
		t.Fatalf("after bump: %q at %d", c.Peek(), c.Off())
	}
	c.Bump()
	if c.Peek() != 'b' || c.Off() != 11 {
		t.Fatalf("after bump: %q at %d", c.Peek(), c.Off())
	}
	c.Bump()
	if !c.EOF() || c.Off() != 12 {
		t.Fatalf("expected EOF at 12, got eof=%v off=%d", c.EOF(), c.Off())
	}
	c.Bump()
	if !c.EOF() || c.Off() != 12 || c.Err() != nil {
		t.Fatalf("EOF must be stable")
	}
}
