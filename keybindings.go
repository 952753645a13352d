package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

type keyMap struct {
	add            key.Binding
	edit           key.Binding
	remove         key.Binding
	up             key.Binding
	down           key.Binding
	filter         key.Binding
	clearFilter    key.Binding
	nextPeriod     key.Binding
	previousPeriod key.Binding
	config         key.Binding
	escape         key.Binding
	fullHelp       key.Binding
	quit           key.Binding
	forceQuit      key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.add,
		km.edit,
		km.remove,
		km.filter,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.add,
			km.edit,
			km.remove,
			km.up,
			km.down,
		},
		{
			km.filter,
			km.clearFilter,
			km.nextPeriod,
			km.previousPeriod,
		},
		{
			km.config,
			km.quit,
			km.fullHelp,
		},
	}
}

// composeKeyMap is the help shown while a draft is being edited.
type composeKeyMap struct {
	next     key.Binding
	previous key.Binding
	commit   key.Binding
	cancel   key.Binding
}

func (km composeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.next, km.previous, km.commit, km.cancel}
}

func (km composeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.ShortHelp()}
}

func initializeKeyMap() keyMap {
	keys := keyMap{
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		clearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filter"),
		),
		nextPeriod: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		previousPeriod: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		config: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "configuration"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	return keys
}

func initializeComposeKeyMap() composeKeyMap {
	return composeKeyMap{
		next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		previous: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// handleKeyPress routes a key to the handler for the current session state.
// Keys that arrive while a store command is in flight are queued and replayed
// in order once its result is applied.
func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if m.pending {
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		log.Debug("queueing key while store command runs", "key", msg.String())
		m.keyQueue = append(m.keyQueue, msg)
		return m, nil
	}

	log.Debug("key pressed", "key", msg.String(), "state", m.sessionState)

	// any key dismisses the previous message
	m.err = nil
	m.status = ""
	m.warning = ""

	if model, cmd, handled := handleSpecialKeys(msg, m); handled {
		return model, cmd
	}

	switch m.sessionState {
	case composing:
		return handleComposeKeys(msg, m)
	case filtering:
		return updateFilterForm(msg, m)
	case configView:
		return handleConfigKeys(msg, m)
	case browsing:
		return handleBrowsingKeys(msg, m)
	}

	return m, nil
}

// handleSpecialKeys handles the keys that mean the same thing in every state.
func handleSpecialKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd, bool) {
	if key.Matches(msg, m.keys.forceQuit) {
		model, cmd := quit(m)
		return model, cmd, true
	}

	if key.Matches(msg, m.keys.escape) {
		model, cmd := handleEscape(m)
		return model, cmd, true
	}

	return m, nil, false
}

func handleBrowsingKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return quit(m)

	case key.Matches(msg, m.keys.up):
		m.cursor.MoveUp(len(m.expenses))
		m.syncTable()

	case key.Matches(msg, m.keys.down):
		m.cursor.MoveDown(len(m.expenses))
		m.syncTable()

	case key.Matches(msg, m.keys.add):
		m.compose.StartAdd(m.now())
		m.previousSessionState = m.sessionState
		m.sessionState = composing

	case key.Matches(msg, m.keys.edit):
		return editSelected(m)

	case key.Matches(msg, m.keys.remove):
		return deleteSelected(m)

	case key.Matches(msg, m.keys.filter):
		return openFilterForm(m)

	case key.Matches(msg, m.keys.clearFilter):
		return clearFilter(m)

	case key.Matches(msg, m.keys.nextPeriod):
		return advancePeriod(m)

	case key.Matches(msg, m.keys.previousPeriod):
		return retrievePreviousPeriod(m)

	case key.Matches(msg, m.keys.config):
		m.previousSessionState = m.sessionState
		m.configView.SetFocus(true)
		m.sessionState = configView

	case key.Matches(msg, m.keys.fullHelp):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func handleComposeKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return commitDraft(m)
	case tea.KeyTab:
		m.compose.Tab()
	case tea.KeyShiftTab:
		m.compose.ShiftTab()
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.compose.Backspace()
	case tea.KeySpace:
		m.compose.Input(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.compose.Input(r)
		}
	}

	return m, nil
}

func handleConfigKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return quit(m)
	case key.Matches(msg, m.keys.config):
		return handleEscape(m)
	}

	var cmd tea.Cmd
	m.configView, cmd = m.configView.Update(msg)
	return m, cmd
}

// handleEscape leaves the current view and returns to the expense list.
func handleEscape(m *model) (tea.Model, tea.Cmd) {
	switch m.sessionState {
	case composing:
		log.Debug("discarding draft")
		m.compose.Cancel()
	case filtering:
		log.Debug("closing filter form")
		if m.filterForm != nil {
			m.filterForm.State = huh.StateAborted
		}
	case configView:
		m.configView.SetFocus(false)
	case loading:
		return m, nil
	}

	m.previousSessionState = m.sessionState
	m.sessionState = browsing
	return m, nil
}
