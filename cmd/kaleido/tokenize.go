package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kaleido/internal/diagfmt"
	"kaleido/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Tokenize a Kaleidoscope source file",
	Long:  "Tokenize a Kaleidoscope source file and output the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	done := s.timer.Track("tokenize")
	result, err := driver.Tokenize(cmd.Context(), filePath)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	done(fmt.Sprintf("%d tokens", len(result.Tokens)))

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	s.printTimings(cmd)
	return nil
}
