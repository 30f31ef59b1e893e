package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"sonar/internal/driver"
	"sonar/internal/source"
	"sonar/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runDirWithUI runs driver.AnalyzeDir while a progress TUI consumes its
// events. files is the list shown in the UI.
func runDirWithUI(ctx context.Context, out io.Writer, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.AnalyzeDir(ctx, dir, o)
		outcomeCh <- dirOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог завершиться раньше анализа: дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
