package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kaleido/internal/diag"
	"kaleido/internal/observ"
	"kaleido/internal/parser"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.kal", "def f(x) x")
	res, err := Tokenize(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 7)
	require.True(t, res.Tokens[len(res.Tokens)-1].Kind.IsEOF())
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.kal", "def f(x) x*2;\nf(3) +;\nextern g()")
	timer := observ.NewTimer()
	res, err := Parse(context.Background(), path, ParseOptions{Timer: timer})
	require.NoError(t, err)
	require.Equal(t, uint(1), res.Errors)
	require.Equal(t, 1, res.Bag.Len())
	require.Equal(t, diag.SynExpectExpression, res.Bag.Items()[0].Code)

	items := res.Builder.Files.Get(res.FileID).Items
	require.Len(t, items, 2)
	require.Equal(t, "(def f (x) (* x 2))", res.Builder.ItemSExpr(items[0]))
	require.Equal(t, "(extern g ())", res.Builder.ItemSExpr(items[1]))

	report := timer.Report()
	require.Len(t, report.Phases, 2)
	require.Equal(t, "load", report.Phases[0].Name)
	require.Equal(t, "parse", report.Phases[1].Name)
}

func TestSamplePrograms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "programs", "*.kal"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		res, err := Parse(context.Background(), path, ParseOptions{})
		require.NoError(t, err)
		require.Zero(t, res.Errors, "%s: %v", path, res.Bag.Items())
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "nope.kal"), ParseOptions{})
	require.Error(t, err)
}

func TestParseMaxDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.kal", ") ) ) ) )")
	res, err := Parse(context.Background(), path, ParseOptions{MaxDiagnostics: 2})
	require.NoError(t, err)
	require.Equal(t, uint(5), res.Errors)
	require.Equal(t, 2, res.Bag.Len())
}

func setupDir(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "a.kal", "def add(a b) a+b")
	writeFile(t, dir, "sub/b.kal", "extern sin(x); sin(1)")
	writeFile(t, dir, "c.kal", "def broken(")
	writeFile(t, dir, "notes.txt", "not a source file")
	return dir
}

func TestParseDir(t *testing.T) {
	dir := setupDir(t)
	events := make(chan FileEvent, 64)
	fs, results, err := ParseDir(context.Background(), dir, ParseDirOptions{Jobs: 2, Events: events})
	require.NoError(t, err)
	close(events)

	require.Len(t, results, 3)
	require.Equal(t, filepath.Join(dir, "a.kal"), results[0].Path)
	require.Equal(t, filepath.Join(dir, "c.kal"), results[1].Path)
	require.Equal(t, filepath.Join(dir, "sub", "b.kal"), results[2].Path)

	require.Equal(t, []string{"(def add (a b) (+ a b))"}, results[0].Summary.SExprs())
	require.Equal(t, 1, results[1].Bag.Len())
	require.Equal(t, []string{"(extern sin (x))", "(toplevel (call sin 1))"}, results[2].Summary.SExprs())
	for _, r := range results {
		require.NotNil(t, r.Builder)
		require.Equal(t, r.Path, fs.Get(r.Source).Path)
	}

	final := map[string]FileStatus{}
	for ev := range events {
		final[ev.Path] = ev.Status
	}
	require.Len(t, final, 3)
	for path, st := range final {
		require.Equal(t, FileDone, st, path)
	}
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := ParseDir(context.Background(), t.TempDir(), ParseDirOptions{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestParseDirCache(t *testing.T) {
	dir := setupDir(t)
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	opts := ParseDirOptions{Cache: cache}

	_, first, err := ParseDir(context.Background(), dir, opts)
	require.NoError(t, err)
	for _, r := range first {
		require.False(t, r.Cached)
	}

	_, second, err := ParseDir(context.Background(), dir, opts)
	require.NoError(t, err)
	for i, r := range second {
		require.True(t, r.Cached, r.Path)
		require.Nil(t, r.Builder)
		require.Equal(t, first[i].Summary.SExprs(), r.Summary.SExprs())
		require.Equal(t, first[i].Bag.Len(), r.Bag.Len())
	}
	require.Equal(t, diag.SynExpectProtoRParen, second[1].Bag.Items()[0].Code)

	// другая таблица операторов: другой ключ
	ops := parser.Standard()
	ops.Install('/', 40)
	_, third, err := ParseDir(context.Background(), dir, ParseDirOptions{Cache: cache, ParseOptions: ParseOptions{Ops: ops}})
	require.NoError(t, err)
	require.False(t, third[0].Cached)

	require.NoError(t, cache.DropAll())
	_, fourth, err := ParseDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.False(t, fourth[0].Cached)
}

func TestParseDirCancelled(t *testing.T) {
	dir := setupDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ParseDir(ctx, dir, ParseDirOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
