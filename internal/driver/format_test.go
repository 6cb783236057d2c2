package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPaths(t *testing.T) {
	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.kal", "def f(a,b)   (a*b)+1\nextern sin(x);")
	clean := writeFile(t, dir, "clean.kal", "f(1, 2);\n")
	broken := writeFile(t, dir, "broken.kal", "def (")

	results, err := FormatPaths(context.Background(), []string{messy, clean, broken}, FormatOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.True(t, results[0].Changed)
	require.Equal(t, "def f(a b) a * b + 1;\nextern sin(x);\n", string(results[0].Formatted))

	require.NoError(t, results[1].Err)
	require.False(t, results[1].Changed)

	require.Error(t, results[2].Err)
	require.Nil(t, results[2].Formatted)

	// без Write файлы не трогаем
	data, err := os.ReadFile(messy)
	require.NoError(t, err)
	require.Equal(t, "def f(a,b)   (a*b)+1\nextern sin(x);", string(data))
}

func TestFormatPathsWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.kal", "1+(2*3)")
	broken := writeFile(t, dir, "b.kal", "1 +")

	results, err := FormatPaths(context.Background(), []string{path, broken}, FormatOptions{Write: true})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1 + 2 * 3;\n", string(data))

	data, err = os.ReadFile(broken)
	require.NoError(t, err)
	require.Equal(t, "1 +", string(data))

	_, err = os.Stat(filepath.Join(dir, "a.kal.tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestFormatPathsCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.kal", "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FormatPaths(ctx, []string{path}, FormatOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
