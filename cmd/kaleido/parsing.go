package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kaleido/internal/diag"
	"kaleido/internal/diagfmt"
	"kaleido/internal/driver"
	"kaleido/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|dir>",
	Short: "Parse Kaleidoscope source and print the AST",
	Long: `Parse a Kaleidoscope file, or every *.kal file under a directory,
and print the resulting items. Syntax errors are reported on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "AST output format (tree|sexpr|json)")
	parseCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
	parseCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	parseCmd.Flags().Bool("cache", false, "reuse cached parse results (sexpr output only)")
	parseCmd.Flags().Bool("cache-clear", false, "drop cached parse results before parsing")
}

type parseFlags struct {
	format     string
	diagFormat string
	jobs       int
	ui         bool
	cache      bool
	cacheClear bool
}

func readParseFlags(cmd *cobra.Command) (parseFlags, error) {
	var pf parseFlags
	var err error
	if pf.format, err = cmd.Flags().GetString("format"); err != nil {
		return pf, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch pf.format {
	case "tree", "sexpr", "json":
	default:
		return pf, fmt.Errorf("unknown format: %s", pf.format)
	}
	if pf.diagFormat, err = cmd.Flags().GetString("diag-format"); err != nil {
		return pf, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch pf.diagFormat {
	case "pretty", "short", "json":
	default:
		return pf, fmt.Errorf("unknown diagnostics format: %s", pf.diagFormat)
	}
	if pf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return pf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return pf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if pf.ui, err = progressUI(uiValue); err != nil {
		return pf, err
	}
	if pf.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return pf, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if pf.cacheClear, err = cmd.Flags().GetBool("cache-clear"); err != nil {
		return pf, fmt.Errorf("failed to get cache-clear flag: %w", err)
	}
	// из кэша нет арен, только s-выражения
	if pf.cache && pf.format != "sexpr" {
		return pf, fmt.Errorf("--cache requires --format sexpr")
	}
	return pf, nil
}

// progressUI решает по значению --ui, рисовать ли прогресс; auto смотрит на stdout.
func progressUI(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	flags, err := readParseFlags(cmd)
	if err != nil {
		return err
	}

	if flags.cacheClear {
		cache, err := driver.OpenDiskCache("kaleido")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}

	st, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		err = parseDirectory(cmd, args[0], s, flags)
	} else {
		err = parseSingleFile(cmd, args[0], s, flags)
	}
	s.printTimings(cmd)
	return err
}

func parseSingleFile(cmd *cobra.Command, path string, s *settings, flags parseFlags) error {
	res, err := driver.Parse(cmd.Context(), path, driver.ParseOptions{
		MaxDiagnostics: s.maxDiag,
		Ops:            s.ops,
		Timer:          s.timer,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case "tree":
		err = diagfmt.FormatASTPretty(out, res.Builder, res.FileID, res.FileSet)
	case "sexpr":
		err = diagfmt.FormatASTSExpr(out, res.Builder, res.FileID)
	case "json":
		err = diagfmt.FormatASTJSON(out, res.Builder, res.FileID)
	}
	if err != nil {
		return err
	}
	if err := writeDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s, flags.diagFormat); err != nil {
		return err
	}
	if res.Errors > 0 {
		return fmt.Errorf("%s: %d syntax error(s)", path, res.Errors)
	}
	return nil
}

func parseDirectory(cmd *cobra.Command, dir string, s *settings, flags parseFlags) error {
	opts := driver.ParseDirOptions{
		ParseOptions: driver.ParseOptions{
			MaxDiagnostics: s.maxDiag,
			Ops:            s.ops,
			Timer:          s.timer,
		},
		Jobs: flags.jobs,
	}
	if flags.cache {
		cache, err := driver.OpenDiskCache("kaleido")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if flags.ui {
		files, lerr := driver.ListSourceFiles(dir)
		if lerr != nil {
			return lerr
		}
		fs, results, err = runParseWithUI(cmd.Context(), "parse "+dir, files, dir, opts)
	} else {
		fs, results, err = driver.ParseDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	var failed int
	var syntaxErrors uint
	// JSON должен остаться одним документом: собираем все файлы в один Bag
	var merged *diag.Bag
	if flags.diagFormat == "json" {
		merged = diag.NewBag(s.maxDiag)
	}
	for i := range results {
		r := &results[i]
		if r.LoadErr != nil {
			fmt.Fprintf(stderr, "%s: %v\n", r.Path, r.LoadErr)
			failed++
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(out, "== %s ==\n", displayPath(dir, r.Path))
		}
		if err := writeDirResult(out, r, fs, flags.format); err != nil {
			return err
		}
		if merged != nil {
			merged.Merge(r.Bag)
		} else if err := writeDiagnostics(stderr, r.Bag, fs, s, flags.diagFormat); err != nil {
			return err
		}
		if r.Summary != nil {
			syntaxErrors += r.Summary.Errors
		}
	}

	if merged != nil {
		merged.Sort()
		if err := writeDiagnostics(stderr, merged, fs, s, flags.diagFormat); err != nil {
			return err
		}
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%d file(s) could not be read", failed)
	case syntaxErrors > 0:
		return fmt.Errorf("%d syntax error(s)", syntaxErrors)
	}
	return nil
}

func writeDirResult(w io.Writer, r *driver.ParseDirResult, fs *source.FileSet, format string) error {
	if r.Cached {
		for _, line := range r.Summary.SExprs() {
			fmt.Fprintln(w, line)
		}
		return nil
	}
	switch format {
	case "tree":
		return diagfmt.FormatASTPretty(w, r.Builder, r.FileID, fs)
	case "sexpr":
		return diagfmt.FormatASTSExpr(w, r.Builder, r.FileID)
	default:
		return diagfmt.FormatASTJSON(w, r.Builder, r.FileID)
	}
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	switch format {
	case "short":
		return diagfmt.Short(w, bag, fs, true)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stderr),
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
		return nil
	}
}

func displayPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
