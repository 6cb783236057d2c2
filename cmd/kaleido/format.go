package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kaleido/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <file> [file...]",
	Short: "Print Kaleidoscope source in canonical form",
	Long: `Parse each file and print it back with minimal parentheses and one
item per line. Files with syntax errors are reported and left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place instead of printing them")
	fmtCmd.Flags().Bool("check", false, "list files whose formatting would change")
	fmtCmd.Flags().String("format", "text", "report format for --check and --write (text|json)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if write && check {
		return fmt.Errorf("fmt: --write cannot be used with --check")
	}
	switch outputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	done := s.timer.Track("fmt")
	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Ops:            s.ops,
		MaxDiagnostics: s.maxDiag,
		Write:          write,
	})
	done(fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}
	defer s.printTimings(cmd)

	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	if outputFormat == "json" {
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			if outputFormat == "text" {
				fmt.Fprintf(stderr, "fmt: %s: %v\n", res.Path, res.Err)
			}
			continue
		}
		hasChanges = hasChanges || res.Changed
		if outputFormat != "text" {
			continue
		}
		switch {
		case check:
			if res.Changed && !s.quiet {
				fmt.Fprintln(out, res.Path)
			}
		case write:
			if res.Changed && !s.quiet {
				fmt.Fprintf(out, "reformatted %s\n", res.Path)
			}
		default:
			_, _ = out.Write(res.Formatted)
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
