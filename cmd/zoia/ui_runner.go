package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"zoia/internal/driver"
	"zoia/internal/pipeline"
	"zoia/internal/source"
	"zoia/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "", "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI: в auto режиме прогресс рисуется только в интерактивный терминал,
// иначе он смешается с диагностиками в stdout.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeAuto:
		return isTerminal(os.Stdout) && isTerminal(os.Stdin)
	default:
		return false
	}
}

type checkOutcome struct {
	fs      *source.FileSet
	results []*driver.CheckResult
	err     error
}

func runCheckWithUI(ctx context.Context, dir string, files []string, opts *driver.CheckOptions) (*source.FileSet, []*driver.CheckResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := *opts
		inner := opts.Sink
		channel := pipeline.ChannelSink{Ch: events}
		optsCopy.Sink = pipeline.FuncSink(func(ev pipeline.Event) {
			if inner != nil {
				inner.OnEvent(ev)
			}
			channel.OnEvent(ev)
		})
		fs, results, err := driver.CheckDir(ctx, dir, &optsCopy)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c модель больше не читает канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
