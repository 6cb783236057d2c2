package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kaleido/internal/diagfmt"
	"kaleido/internal/observ"
	"kaleido/internal/parser"
	"kaleido/internal/project"
)

// settings объединяет kaleido.toml и флаги; явно заданный флаг сильнее файла.
type settings struct {
	manifest  *project.Manifest
	ops       *parser.OpTable
	maxDiag   int
	colorMode string
	prompt    string
	quiet     bool
	timer     *observ.Timer
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	pf := cmd.Root().PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var manifest *project.Manifest
	if configPath != "" {
		manifest, err = project.Load(configPath)
	} else {
		manifest, _, err = project.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	cfg := project.Default()
	if manifest != nil {
		cfg = manifest.Config
	}
	ops, err := cfg.OpTable()
	if err != nil {
		return nil, err
	}

	s := &settings{
		manifest:  manifest,
		ops:       ops,
		maxDiag:   cfg.Diagnostics.Max,
		colorMode: cfg.Diagnostics.Color,
		prompt:    cfg.Repl.Prompt,
	}

	// max = 0 в kaleido.toml означает "не задано"
	if pf.Changed("max-diagnostics") || s.maxDiag == 0 {
		if s.maxDiag, err = pf.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if pf.Changed("color") {
		if s.colorMode, err = pf.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	switch s.colorMode {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.colorMode)
	}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		s.timer = observ.NewTimer()
	}
	// stdout-цвет (версия, tree) следует тому же режиму
	color.NoColor = !s.useColor(os.Stdout)
	return s, nil
}

func (s *settings) useColor(f *os.File) bool {
	return diagfmt.Colorize(s.colorMode, isTerminal(f))
}

func (s *settings) printTimings(cmd *cobra.Command) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
}
