package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// ParseDir parses files from several goroutines at once.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Level controls how fine-grained the emitted spans are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // зарезервировано: события ошибок пока не пишутся
	LevelPhase        // команды и проходы по файлам
	LevelDetail       // плюс каждая def/extern/top-level конструкция
	LevelDebug        // всё
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the flag spellings, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Allows reports whether spans of scope pass at this level.
func (l Level) Allows(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeItem
	case LevelDebug:
		return true
	}
	return false
}

// Scope is the granularity of a span; smaller is coarser.
type Scope uint8

const (
	// ScopeDriver covers whole CLI commands and REPL sessions.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one file through tokenize or parse.
	ScopePass
	// ScopeItem covers one top-level construct (def, extern, expression).
	ScopeItem
	ScopeNode // отдельные узлы выражений
)

var scopeNames = [...]string{"", "driver", "pass", "item", "node"}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Mode selects where events go.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // сразу в вывод
	ModeRing                   // последние RingSize событий в памяти, вывод при Dump
	ModeBoth
)

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return 0, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format    // FormatAuto: NDJSON для *.ndjson/*.json, иначе текст
	Output     io.Writer // если nil, открывается OutputPath
	OutputPath string    // "-" или "" означает stderr
	RingSize   int       // по умолчанию 4096
}

// New builds a tracer for cfg. LevelOff always yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".json") {
			format = FormatNDJSON
		}
	}

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level, format), nil
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamTracer(w, cfg.Level, format)
		if cfg.Mode == ModeStream {
			return stream, nil
		}
		return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level, format)), nil
	}
	return nil, fmt.Errorf("unknown trace mode: %d", cfg.Mode)
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// nopCloser не даёт Close закрыть stderr.
type nopCloser struct{ io.Writer }
