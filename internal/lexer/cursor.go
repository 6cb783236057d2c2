package lexer

import (
	"bufio"
	"errors"
	"io"
	"math"
)

const eof = -1

// ErrStreamTooLarge is retained when the stream outgrows 32-bit offsets.
var ErrStreamTooLarge = errors.New("lexer: input exceeds 4 GiB")

// Cursor держит ровно один прочитанный байт lookahead поверх потока.
// Назад читать нельзя.
type Cursor struct {
	r    io.ByteReader
	ch   int    // текущий байт или eof
	off  uint32 // смещение ch в потоке
	next uint32 // смещение следующего непрочитанного байта
	err  error
}

// NewCursor creates a cursor whose lookahead starts as a space, so the first
// Next skips it without touching the stream.
func NewCursor(r io.Reader, base uint32) Cursor {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return Cursor{r: br, ch: ' ', off: base, next: base}
}

// EOF проверяет, достигнут ли конец потока.
func (c *Cursor) EOF() bool { return c.ch == eof }

// Peek возвращает текущий байт lookahead; 0 на EOF.
func (c *Cursor) Peek() byte {
	if c.ch == eof {
		return 0
	}
	return byte(c.ch)
}

// Off возвращает смещение текущего байта.
func (c *Cursor) Off() uint32 { return c.off }

// Bump читает следующий байт в lookahead. После EOF поток больше не трогается.
func (c *Cursor) Bump() {
	if c.ch == eof {
		return
	}
	c.off = c.next
	if c.next == math.MaxUint32 {
		c.ch = eof
		c.err = ErrStreamTooLarge
		return
	}
	b, err := c.r.ReadByte()
	if err != nil {
		c.ch = eof
		if !errors.Is(err, io.EOF) {
			c.err = err
		}
		return
	}
	c.ch = int(b)
	c.next++
}

// Err возвращает ошибку чтения, если поток оборвался не по io.EOF.
func (c *Cursor) Err() error { return c.err }
