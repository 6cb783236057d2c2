package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"kaleido/internal/format"
	"kaleido/internal/parser"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Ops            *parser.OpTable
	MaxDiagnostics int
	// Write перезаписывает изменённые файлы на месте.
	Write bool
}

// FormatResult is the outcome for one path. Err covers I/O and syntax errors;
// a file with syntax errors is never rewritten.
type FormatResult struct {
	Path      string
	Formatted []byte
	Changed   bool
	Err       error
}

// FormatPaths parses each path and renders it in canonical form.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	ops := opts.Ops
	if ops == nil {
		ops = parser.Standard()
	}
	results := make([]FormatResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, formatOne(ctx, path, ops, opts))
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, ops *parser.OpTable, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	parsed, err := Parse(ctx, path, ParseOptions{MaxDiagnostics: opts.MaxDiagnostics, Ops: ops})
	if err != nil {
		res.Err = err
		return res
	}
	if parsed.Errors > 0 {
		res.Err = fmt.Errorf("%d syntax error(s)", parsed.Errors)
		return res
	}
	res.Formatted = format.File(parsed.Builder, parsed.FileID, ops)
	res.Changed = !bytes.Equal(res.Formatted, parsed.File.Content)
	if opts.Write && res.Changed {
		if err := writeFileAtomic(path, res.Formatted); err != nil {
			res.Err = err
		}
	}
	return res
}

func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
