package parser

import (
	"fmt"

	"kaleido/internal/diag"
	"kaleido/internal/source"
	"kaleido/internal/token"
)

// Error describes why a construct could not be parsed. It has already been
// reported by the time a caller sees it; callers only propagate it.
type Error struct {
	Code diag.Code
	// Expected names the construct or token the parser was looking for.
	Expected string
	Found    token.Token
	Span     source.Span
}

func (e *Error) Error() string {
	return e.Code.Title()
}

// Detail includes the offending token, e.g. "expected ')', found end of input".
func (e *Error) Detail() string {
	return fmt.Sprintf("%s, found %s", e.Code.Title(), e.Found.Describe())
}
