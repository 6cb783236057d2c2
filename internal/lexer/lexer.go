package lexer

import (
	"bytes"
	"fmt"
	"io"

	"fortio.org/safecast"

	"kaleido/internal/source"
	"kaleido/internal/token"
)

// Lexer turns a forward-only byte stream into tokens. All scanner state
// (lookahead byte, last identifier, last number) lives in the instance.
type Lexer struct {
	cursor Cursor
	opts   Options
	buf    []byte
	ident  string
	num    float64

	// запятая, отклонённая scanNumber; отдаётся следующим Next
	pending    token.Token
	hasPending bool
}

// New создаёт лексер поверх потока.
func New(r io.Reader, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(r, opts.Base),
		opts:   opts,
	}
}

// NewFromFile creates a lexer over a loaded source file.
func NewFromFile(f *source.File) *Lexer {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return New(bytes.NewReader(f.Content), Options{File: f.ID})
}

// Next возвращает следующий токен. Никогда не падает; после EOF всегда EOF.
func (lx *Lexer) Next() token.Token {
	if lx.hasPending {
		lx.hasPending = false
		return lx.pending
	}
	for {
		lx.skipSpace()
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.span(lx.cursor.Off())}
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '#':
			lx.skipComment()
			continue
		case isAlpha(ch):
			return lx.scanIdentOrKeyword()
		case isNumberStart(ch):
			return lx.scanNumber()
		default:
			start := lx.cursor.Off()
			lx.cursor.Bump()
			return token.Token{Kind: token.Char, Span: lx.span(start), Ch: ch}
		}
	}
}

// IdentText returns the spelling of the most recently scanned identifier or keyword.
func (lx *Lexer) IdentText() string { return lx.ident }

// NumVal returns the value of the most recently scanned number.
func (lx *Lexer) NumVal() float64 { return lx.num }

// Err reports a read failure that ended the stream early.
func (lx *Lexer) Err() error { return lx.cursor.Err() }

// File returns the file id stamped into spans.
func (lx *Lexer) File() source.FileID { return lx.opts.File }

func (lx *Lexer) span(start uint32) source.Span {
	end := lx.cursor.Off()
	if end < start {
		end = start
	}
	return source.Span{File: lx.opts.File, Start: start, End: end}
}
