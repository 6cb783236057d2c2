package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"kaleido/internal/driver"
	"kaleido/internal/source"
	"kaleido/internal/ui"
)

type parseOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// runParseWithUI runs ParseDir in the background while the progress view
// consumes its events; the view exits once the events channel is closed.
func runParseWithUI(ctx context.Context, title string, files []string, dir string, opts driver.ParseDirOptions) (*source.FileSet, []driver.ParseDirResult, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// вид закрыт досрочно (Ctrl-C); разбор дочитываем без него
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
