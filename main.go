package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Rshep3087/spendtui/compose"
	"github.com/Rshep3087/spendtui/config"
	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/selection"
	"github.com/Rshep3087/spendtui/store"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

type model struct {
	// loadingSpinner is shown until the first snapshot arrives
	loadingSpinner spinner.Model

	keys        keyMap
	composeKeys composeKeyMap
	help        help.Model
	theme       Theme
	styles      styles

	// sessionState is the current state of the session
	sessionState         sessionState
	previousSessionState sessionState
	loadingState         loadingState

	store store.Store
	cfg   config.Config

	// compose is the draft being added or edited
	compose compose.Machine
	// expenses is the latest snapshot read through the active filter
	expenses []expense.Expense
	// categories feeds the suggestions of the filter form
	categories []string
	cursor     selection.Cursor
	table      table.Model

	filter        filter
	currentPeriod time.Time
	filterForm    *huh.Form
	filterInput   *filterInput

	configView config.Model

	// pending is set while a store command is in flight; keys received in
	// the meantime wait in keyQueue.
	pending  bool
	keyQueue []tea.KeyMsg

	err    error
	status string
	// warning is a notice that needs attention but is not a failure
	warning string
	// exportFailed lets the next quit exit without retrying the export
	exportFailed bool

	now func() time.Time
}

func newModel(s store.Store, cfg config.Config) model {
	theme := newTheme(cfg.Colors)
	st := createStyles(theme)

	loadingKeys := []string{expensesKey}
	if cfg.ImportOnStart {
		loadingKeys = append(loadingKeys, snapshotKey)
	}

	configView := config.New(string(theme.Primary))
	configView.SetConfig(cfg)

	m := model{
		loadingSpinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(st.titleStyle),
		),
		keys:         initializeKeyMap(),
		composeKeys:  initializeComposeKeyMap(),
		help:         createHelpModel(theme),
		theme:        theme,
		styles:       st,
		sessionState: loading,
		loadingState: newLoadingState(loadingKeys...),
		store:        s,
		cfg:          cfg,
		table:        newExpenseTable(st),
		filter:       filter{kind: allFilter},
		configView:   configView,
		pending:      true,
		now:          time.Now,
	}
	m.currentPeriod = firstOfMonth(m.now())

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.loadExpenses(),
		m.loadingSpinner.Tick,
	)
}

// rootAction runs the TUI until the user quits.
func rootAction(ctx context.Context, cfg config.Config) error {
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	// the alt screen owns the terminal until the program exits
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(newModel(s, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}

func main() {
	Execute()
}
