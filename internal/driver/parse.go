package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/lexer"
	"kaleido/internal/observ"
	"kaleido/internal/parser"
	"kaleido/internal/source"
	"kaleido/internal/trace"
)

// ParseOptions are shared by Parse and ParseDir.
type ParseOptions struct {
	MaxDiagnostics int
	// Ops is cloned per file; nil means the standard table.
	Ops   *parser.OpTable
	Timer *observ.Timer
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	Errors  uint
}

// Parse loads one file and parses it completely. Syntax errors end up in
// Bag; the returned error is reserved for I/O failures and cancellation.
func Parse(ctx context.Context, filePath string, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fileID, err := fs.Load(filePath)
	done(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	builder := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parseSource(ctx, file, builder, opts)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  res.File,
		Bag:     res.Bag,
		Errors:  res.Errors,
	}, nil
}

func parseSource(ctx context.Context, file *source.File, builder *ast.Builder, opts ParseOptions) (parser.Result, error) {
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return parser.Result{}, err
	}
	ops := parser.Standard()
	if opts.Ops != nil {
		ops = opts.Ops.Clone()
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
	done := opts.Timer.Track("parse")

	bag := diag.NewBag(opts.MaxDiagnostics)
	res := parser.ParseFile(ctx, lexer.NewFromFile(file), builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
		Ops:       ops,
		Tracer:    trace.FromContext(ctx),
	})

	items := len(builder.Files.Get(res.File).Items)
	done(fmt.Sprintf("%s: %d items, %d errors", file.Path, items, res.Errors))
	span.WithExtra("items", fmt.Sprint(items)).
		WithExtra("errors", fmt.Sprint(res.Errors)).
		End(file.Path)

	if res.Err != nil {
		return res, fmt.Errorf("parse %s: %w", file.Path, res.Err)
	}
	bag.Sort()
	return res, nil
}
