package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"kaleido/internal/diag"
	"kaleido/internal/parser"
)

// DefaultPrompt is what the interactive loop prints before each construct.
const DefaultPrompt = "ready> "

type Config struct {
	// Operators replaces the standard table when the section is present.
	Operators   map[string]int    `toml:"operators"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Repl        ReplConfig        `toml:"repl"`

	hasOperators bool
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type ReplConfig struct {
	Prompt string `toml:"prompt"`
}

// Manifest is a loaded kaleido.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no kaleido.toml exists.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Color: "auto"},
		Repl:        ReplConfig{Prompt: DefaultPrompt},
	}
}

// ConfigError is a rejected configuration entry.
type ConfigError struct {
	Path string
	Code diag.Code
	Key  string
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", e.Path, e.Code.ID(), e.Key, e.Msg)
}

// Discover finds kaleido.toml above startDir and loads it.
// ok is false when there is no manifest; that is not an error.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	return m, true, err
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &ConfigError{Path: path, Code: diag.ProjInvalidConfig, Key: undecoded[0].String(), Msg: "unknown key"}
	}
	cfg.hasOperators = meta.IsDefined("operators")
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

func (c *Config) validate(path string) error {
	if c.Diagnostics.Max < 0 {
		return &ConfigError{Path: path, Code: diag.ProjInvalidConfig, Key: "diagnostics.max", Msg: "must not be negative"}
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return &ConfigError{Path: path, Code: diag.ProjInvalidConfig, Key: "diagnostics.color",
			Msg: fmt.Sprintf("want auto, on or off, got %q", c.Diagnostics.Color)}
	}
	_, err := c.opTable(path)
	return err
}

// OpTable builds the precedence table: the standard one unless [operators] is given.
func (c *Config) OpTable() (*parser.OpTable, error) {
	return c.opTable("")
}

func (c *Config) opTable(path string) (*parser.OpTable, error) {
	if !c.hasOperators && c.Operators == nil {
		return parser.Standard(), nil
	}
	keys := make([]string, 0, len(c.Operators))
	for k := range c.Operators {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := parser.NewOpTable()
	for _, k := range keys {
		prec := c.Operators[k]
		if len(k) != 1 || !operatorByte(k[0]) {
			return nil, &ConfigError{Path: path, Code: diag.ProjBadOperator, Key: "operators." + k,
				Msg: "operator must be a single punctuation character"}
		}
		if prec <= 0 {
			return nil, &ConfigError{Path: path, Code: diag.ProjBadOperator, Key: "operators." + k,
				Msg: fmt.Sprintf("precedence must be positive, got %d", prec)}
		}
		table.Install(k[0], prec)
	}
	return table, nil
}

// operatorByte: ASCII, видимый, не может начинать идентификатор, число или комментарий.
func operatorByte(c byte) bool {
	if c <= ' ' || c >= 0x7f {
		return false
	}
	if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
		return false
	}
	return !strings.ContainsRune("(),;#.", rune(c))
}
