package trace

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var seq atomic.Uint64

func nextSeq() uint64 { return seq.Add(1) }

// accepts: heartbeat проходит при любом включённом уровне.
func accepts(l Level, ev *Event) bool {
	return l.Allows(ev.Scope) || (ev.Kind == KindHeartbeat && l > LevelOff)
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything; spans begun on it cost one allocation-free check.
var Nop Tracer = nopTracer{}

// Dumper is implemented by tracers that buffer events until asked.
type Dumper interface {
	Dump(w io.Writer) error
}

// StreamTracer writes each event as soon as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	start  time.Time
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format, start: time.Now()}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	ev.Seq = nextSeq()
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	data := Encode(ev, t.format, t.start)
	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибки записи трейса не должны ломать разбор
	_, _ = t.w.Write(data)
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

// RingTracer keeps the most recent events; Dump writes them oldest first.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
	level  Level
	format Format
}

func NewRingTracer(capacity int, level Level, format Format) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level, format: format}
}

func (t *RingTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	stored := *ev
	stored.Seq = nextSeq()
	if stored.Time.IsZero() {
		stored.Time = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
	if t.next == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

func (t *RingTracer) Dump(w io.Writer) error {
	events := t.Snapshot()
	var start time.Time
	if len(events) > 0 {
		start = events[0].Time
	}
	for i := range events {
		if _, err := w.Write(Encode(&events[i], t.format, start)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// MultiTracer fans events out; each sink gets its own copy.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Dump forwards to every buffering sink.
func (t *MultiTracer) Dump(w io.Writer) error {
	for _, tr := range t.tracers {
		if d, ok := tr.(Dumper); ok {
			if err := d.Dump(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
