// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-note-sync/models"
)

// SyncFunc runs one pass.
type SyncFunc func(ctx context.Context) (models.SyncResult, error)

type syncDoneMsg struct {
	result models.SyncResult
	err    error
}

type syncModel struct {
	spinner spinner.Model
	run     tea.Cmd
	cancel  context.CancelFunc

	done   bool
	result models.SyncResult
	err    error
}

func newSyncModel(ctx context.Context, run SyncFunc) syncModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return syncModel{
		spinner: s,
		cancel:  cancel,
		run: func() tea.Msg {
			result, err := run(ctx)
			return syncDoneMsg{result: result, err: err}
		},
	}
}

func (m syncModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

// Update quits once the pass is done. Ctrl+C cancels the pass and keeps
// spinning until it has aborted, so the state is never left half-written.
func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		m.done = true
		m.result, m.err = msg.result, msg.err
		m.cancel()
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m syncModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " Syncing..."
}

// RunSync runs a pass behind a spinner on out and returns its outcome.
func RunSync(ctx context.Context, run SyncFunc, in io.Reader, out io.Writer) (models.SyncResult, error) {
	model := newSyncModel(ctx, run)
	defer model.cancel()

	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return models.SyncResult{}, err
	}

	result, ok := final.(syncModel)
	if !ok {
		return models.SyncResult{}, errors.New("unexpected sync screen model")
	}
	return result.result, result.err
}
