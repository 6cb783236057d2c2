package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"kaleido/internal/diag"
	"kaleido/internal/diagfmt"
	"kaleido/internal/driver"
	"kaleido/internal/trace"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read Kaleidoscope constructs from stdin and report what was parsed",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()

	reporter := diag.NewWriterReporter(stderr)
	reporter.Format = diagfmt.LineFormatter(nil, s.useColor(os.Stderr))

	var in io.Reader = cmd.InOrStdin()
	prompt := s.prompt
	if s.quiet {
		prompt = ""
	}
	if in == os.Stdin && isTerminal(os.Stdin) && !s.quiet {
		lr := newLinerReader(s.prompt)
		defer lr.Close()
		in = lr
		// приглашение выводит liner
		prompt = ""
	} else {
		// Ctrl-C не должен ждать следующей строки на заблокированном Read
		in = newCancelReader(cmd.Context(), in)
	}

	done := s.timer.Track("repl")
	session := driver.NewSession(in, stderr, driver.SessionOptions{
		Ops:      s.ops,
		Reporter: reporter,
		Prompt:   prompt,
		Tracer:   trace.FromContext(cmd.Context()),
	})
	stats, err := session.Run(cmd.Context())
	done(fmt.Sprintf("%d items, %d errors", stats.Definitions+stats.Externs+stats.TopLevel, stats.Errors))
	if prompt != "" {
		fmt.Fprintln(stderr)
	}
	s.printTimings(cmd)
	if errors.Is(err, context.Canceled) {
		// прерывание пользователем, не ошибка
		return nil
	}
	return err
}

// cancelReader читает src в фоновой горутине и возвращает ctx.Err(), как только
// контекст отменён. Горутина, застрявшая в src.Read, живёт до конца процесса.
type cancelReader struct {
	ctx    context.Context
	src    io.Reader
	once   sync.Once
	chunks chan readChunk
	buf    []byte
	err    error
}

type readChunk struct {
	data []byte
	err  error
}

func newCancelReader(ctx context.Context, src io.Reader) *cancelReader {
	return &cancelReader{ctx: ctx, src: src, chunks: make(chan readChunk)}
}

func (r *cancelReader) pump() {
	for {
		buf := make([]byte, 4096)
		n, err := r.src.Read(buf)
		select {
		case r.chunks <- readChunk{data: buf[:n], err: err}:
		case <-r.ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (r *cancelReader) Read(p []byte) (int, error) {
	r.once.Do(func() { go r.pump() })
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		select {
		case <-r.ctx.Done():
			r.err = r.ctx.Err()
		case c := <-r.chunks:
			r.buf, r.err = c.data, c.err
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// linerReader отдаёт строки из liner как поток байт для лексера.
type linerReader struct {
	state   *liner.State
	prompt  string
	buf     []byte
	history string
}

func newLinerReader(prompt string) *linerReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	lr := &linerReader{state: st, prompt: prompt}
	if dir, err := os.UserCacheDir(); err == nil {
		lr.history = filepath.Join(dir, "kaleido", "history")
		if f, err := os.Open(lr.history); err == nil {
			_, _ = st.ReadHistory(f)
			_ = f.Close()
		}
	}
	return lr
}

func (r *linerReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		line, err := r.state.Prompt(r.prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(line) != "" {
			r.state.AppendHistory(line)
		}
		r.buf = append(r.buf, line...)
		r.buf = append(r.buf, '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// Close сохраняет историю и возвращает терминал в исходный режим.
func (r *linerReader) Close() error {
	if r.history != "" {
		if err := os.MkdirAll(filepath.Dir(r.history), 0o755); err == nil {
			if f, err := os.Create(r.history); err == nil {
				_, _ = r.state.WriteHistory(f)
				_ = f.Close()
			}
		}
	}
	return r.state.Close()
}
