package driver

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/require"

	"kaleido/internal/diag"
	"kaleido/internal/parser"
)

func runSession(t *testing.T, input, prompt string) (string, string, SessionStats, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	s := NewSession(strings.NewReader(input), &out, SessionOptions{
		Reporter: diag.NewWriterReporter(&errOut),
		Prompt:   prompt,
	})
	stats, err := s.Run(context.Background())
	return out.String(), errOut.String(), stats, err
}

func TestSessionReportsEachConstruct(t *testing.T) {
	out, errOut, stats, err := runSession(t, "def foo(x y) x+foo(y, 4.0);\nextern sin(a);\nsin(1)*2", "")
	require.NoError(t, err)
	require.Empty(t, errOut)
	require.Equal(t, MsgParsedDefinition+"\n"+MsgParsedExtern+"\n"+MsgParsedTopLevel+"\n", out)
	require.Equal(t, SessionStats{Definitions: 1, Externs: 1, TopLevel: 1}, stats)
}

func TestSessionPromptsBeforeEveryDispatch(t *testing.T) {
	out, _, _, err := runSession(t, "1;", "ready> ")
	require.NoError(t, err)
	// начальный, конструкция, ';', EOF
	require.Equal(t, "ready> ready> "+MsgParsedTopLevel+"\nready> ready> ", out)
}

func TestSessionUnterminatedPrototype(t *testing.T) {
	done := make(chan struct{})
	var (
		out, errOut string
		stats       SessionStats
		err         error
	)
	go func() {
		defer close(done)
		out, errOut, stats, err = runSession(t, "def foo(", "")
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not terminate")
	}
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 1, stats.Errors)
	require.Equal(t, "error: expected ')' in prototype\n", errOut)
}

func TestSessionRecoversBySkippingOneToken(t *testing.T) {
	out, errOut, stats, err := runSession(t, "def 1; extern sin(x); 2+3", "")
	require.NoError(t, err)
	require.Equal(t, MsgParsedExtern+"\n"+MsgParsedTopLevel+"\n", out)
	require.Equal(t, "error: expected function name in prototype\n", errOut)
	require.Equal(t, SessionStats{Externs: 1, TopLevel: 1, Errors: 1}, stats)
}

func TestSessionEmptyInput(t *testing.T) {
	out, errOut, stats, err := runSession(t, "  # just a comment\n;;;", "")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Empty(t, errOut)
	require.Zero(t, stats)
}

func TestSessionCustomOperators(t *testing.T) {
	ops := parser.Standard()
	ops.Install('/', 40)
	var out bytes.Buffer
	bag := diag.NewBag(0)
	s := NewSession(strings.NewReader("a/b"), &out, SessionOptions{Ops: ops, Reporter: diag.BagReporter{Bag: bag}})
	stats, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, bag.Len())
	require.Equal(t, 1, stats.TopLevel)
}

func TestSessionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSession(strings.NewReader("1; 2; 3"), nil, SessionOptions{})
	_, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSessionReadError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSession(iotest.ErrReader(boom), nil, SessionOptions{})
	_, err := s.Run(context.Background())
	require.ErrorIs(t, err, boom)
}
