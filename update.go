package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyPress(msg, &m)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case storeResultMsg:
		return m.handleStoreResult(msg)

	case exportMsg:
		return m.handleExport(msg)
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case filtering:
		return updateFilterForm(msg, &m)

	case configView:
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd
	}

	return m, nil
}
