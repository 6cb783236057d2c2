package driver

import (
	"context"
	"fmt"
	"io"

	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/lexer"
	"kaleido/internal/parser"
	"kaleido/internal/source"
	"kaleido/internal/trace"
)

// Сообщения об успешном разборе конструкций.
const (
	MsgParsedDefinition = "Parsed a function definition."
	MsgParsedExtern     = "Parsed an extern."
	MsgParsedTopLevel   = "Parsed a top-level expr."
)

// Session drives the top-level loop over one input stream:
// it prints a prompt, dispatches on the current token and reports each construct.
type Session struct {
	Parser *parser.Parser
	// Out receives the prompt and the "Parsed ..." lines.
	Out io.Writer
	// Prompt is printed before every dispatch; empty disables prompting.
	Prompt string
}

// SessionOptions configure NewSession.
type SessionOptions struct {
	File     source.FileID
	Ops      *parser.OpTable
	Reporter diag.Reporter
	Prompt   string
	Tracer   trace.Tracer
}

// SessionStats counts what a session consumed.
type SessionStats struct {
	Definitions int
	Externs     int
	TopLevel    int
	Errors      int
}

// NewSession wires a lexer over r and a parser over that lexer.
func NewSession(r io.Reader, out io.Writer, opts SessionOptions) *Session {
	lx := lexer.New(r, lexer.Options{File: opts.File})
	p := parser.New(lx, ast.NewBuilder(ast.Hints{}, nil), parser.Options{
		Reporter: opts.Reporter,
		Ops:      opts.Ops,
		Tracer:   opts.Tracer,
	})
	return &Session{Parser: p, Out: out, Prompt: opts.Prompt}
}

func (s *Session) prompt() {
	if s.Prompt != "" && s.Out != nil {
		fmt.Fprint(s.Out, s.Prompt)
	}
}

func (s *Session) say(msg string) {
	if s.Out != nil {
		fmt.Fprintln(s.Out, msg)
	}
}

// Run reads constructs until end of input. Parse errors are reported and
// skipped; only cancellation or a read failure end the loop with an error.
func (s *Session) Run(ctx context.Context) (SessionStats, error) {
	var stats SessionStats
	_, span := trace.StartSpan(ctx, trace.ScopeDriver, "session")
	defer func() {
		span.WithExtra("defs", fmt.Sprint(stats.Definitions)).
			WithExtra("errors", fmt.Sprint(stats.Errors)).
			End("")
	}()

	s.prompt()
	s.Parser.Advance()
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		s.prompt()
		// ошибки уже сообщены через Reporter
		st, _ := s.Parser.Step()
		switch st.Kind {
		case parser.StepEOF:
			if rerr := s.Parser.Lexer().Err(); rerr != nil {
				return stats, fmt.Errorf("read input: %w", rerr)
			}
			return stats, nil
		case parser.StepError:
			stats.Errors++
		case parser.StepItem:
			switch st.ItemKind {
			case ast.ItemDef:
				stats.Definitions++
				s.say(MsgParsedDefinition)
			case ast.ItemExtern:
				stats.Externs++
				s.say(MsgParsedExtern)
			default:
				stats.TopLevel++
				s.say(MsgParsedTopLevel)
			}
		}
	}
}
