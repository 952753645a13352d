package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/store"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Message types for store results.
type (
	// storeResultMsg is the outcome of one store command. The snapshot is
	// re-read in the same command as the mutation, so a render after this
	// message always reflects the latest completed mutation.
	storeResultMsg struct {
		op string
		// committed is true when the mutation itself succeeded
		committed bool
		// snapshot is true when expenses and categories were re-read
		snapshot   bool
		expenses   []expense.Expense
		categories []string
		filter     filter
		status     string
		warning    string
		err        error
	}

	exportMsg struct {
		path string
		err  error
	}
)

// goneError reports a record deleted before an update or delete reached it.
type goneError struct {
	id int64
}

func (e *goneError) Error() string {
	return fmt.Sprintf("expense #%d no longer exists", e.id)
}

// Message handlers.
func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := m.styles.docStyle.GetFrameSize()

	takenHeight := 6
	m.table.SetWidth(msg.Width - h)
	m.table.SetHeight(max(msg.Height-v-takenHeight, 1))
	m.configView.SetSize(msg.Width-h, max(msg.Height-v-takenHeight, 1))

	m.help.Width = msg.Width

	if m.filterForm != nil {
		m.filterForm = m.filterForm.WithHeight(msg.Height - takenHeight).WithWidth(msg.Width - h)
	}

	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.sessionState != loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	return m, cmd
}

func (m model) handleStoreResult(msg storeResultMsg) (tea.Model, tea.Cmd) {
	m.pending = false

	if msg.snapshot {
		m.filter = msg.filter
		m.categories = msg.categories
		m.setExpenses(msg.expenses)
	}

	if msg.op == opLoad {
		m.loadingState.set(snapshotKey)
	}
	m.loadingState.set(expensesKey)

	if m.sessionState == loading {
		m.sessionState = m.checkIfLoading()
	}

	if msg.committed && m.sessionState == composing {
		m.compose.Done()
		m.previousSessionState = m.sessionState
		m.sessionState = browsing
	}

	cmd := m.drainKeyQueue()

	// messages raised by replayed keys are newer than this result
	switch {
	case m.err != nil || m.status != "" || m.warning != "":
	case msg.err != nil:
		m.err = msg.err
	case msg.warning != "":
		m.warning = msg.warning
	default:
		m.status = msg.status
	}

	return m, cmd
}

func (m model) handleExport(msg exportMsg) (tea.Model, tea.Cmd) {
	m.pending = false

	if msg.err != nil {
		log.Error("export on quit failed", "path", msg.path, "error", msg.err)
		m.exportFailed = true
		cmd := m.drainKeyQueue()
		m.err = fmt.Errorf("export failed, quit again to exit without exporting: %w", msg.err)
		return m, cmd
	}

	log.Info("snapshot exported", "path", msg.path)
	return m, tea.Quit
}

// drainKeyQueue replays keys received while a store command was in flight.
// It stops early when a replayed key starts another store command; the rest
// wait for that command's result.
func (m *model) drainKeyQueue() tea.Cmd {
	var cmds []tea.Cmd
	for len(m.keyQueue) > 0 && !m.pending {
		msg := m.keyQueue[0]
		m.keyQueue = m.keyQueue[1:]

		_, cmd := handleKeyPress(msg, m)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (m model) checkIfLoading() sessionState {
	if loaded, key := m.loadingState.allLoaded(); !loaded {
		log.Debug("still loading", "key", key)
		return loading
	}

	return browsing
}

// Session actions.

// commitDraft validates the draft and saves it. Validation errors keep the
// draft open; the store result decides whether composing ends.
func commitDraft(m *model) (tea.Model, tea.Cmd) {
	e, err := m.compose.Build()
	if err != nil {
		m.err = err
		return m, nil
	}

	if m.cfg.RequireComplete && !e.Complete() {
		m.err = &expense.ValidationError{Field: "name", Err: expense.ErrIncomplete}
		return m, nil
	}

	m.pending = true
	if e.IsDraft() {
		return m, m.createExpense(e)
	}
	return m, m.updateExpense(e)
}

func editSelected(m *model) (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		m.warning = "no expense selected"
		return m, nil
	}

	m.compose.StartEdit(e)
	m.previousSessionState = m.sessionState
	m.sessionState = composing
	return m, nil
}

func deleteSelected(m *model) (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok || e.IsDraft() {
		m.warning = "no expense selected"
		return m, nil
	}

	m.pending = true
	return m, m.deleteExpense(e.ID)
}

// quit exits the program, exporting the snapshot first when configured to.
func quit(m *model) (tea.Model, tea.Cmd) {
	if !m.cfg.ExportOnQuit || m.exportFailed {
		return m, tea.Quit
	}

	m.pending = true
	return m, m.exportSnapshot()
}

// Store call functions.

// readSnapshot reads the filtered expenses and the category list concurrently.
func readSnapshot(ctx context.Context, s store.Store, f filter) ([]expense.Expense, []string, error) {
	var (
		errGroup   errgroup.Group
		expenses   []expense.Expense
		categories []string
	)

	errGroup.Go(func() error {
		es, err := f.apply(ctx, s)
		if err != nil {
			return err
		}
		expenses = es
		return nil
	})

	errGroup.Go(func() error {
		cs, err := s.Categories(ctx)
		if err != nil {
			return err
		}
		categories = cs
		return nil
	})

	if err := errGroup.Wait(); err != nil {
		return nil, nil, err
	}

	return expenses, categories, nil
}

// storeCmd runs mutate, if any, and then re-reads the snapshot through f,
// whether or not the mutation succeeded. mutate returns the status line to
// show on success; a *goneError is shown as a warning instead.
func (m model) storeCmd(op string, f filter, mutate func(ctx context.Context) (string, error)) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		msg := storeResultMsg{op: op, filter: f}

		if mutate != nil {
			status, err := mutate(ctx)
			var gone *goneError
			switch {
			case errors.As(err, &gone):
				log.Warn("expense vanished before the change", "op", op, "id", gone.id)
				msg.committed = true
				msg.warning = gone.Error()
			case err != nil:
				log.Error("store operation failed", "op", op, "error", err)
				msg.err = err
			default:
				msg.committed = true
				msg.status = status
			}
		}

		es, cs, err := readSnapshot(ctx, s, f)
		if err != nil {
			log.Error("failed to read expenses", "op", op, "filter", f.String(), "error", err)
			if msg.err == nil {
				msg.err = err
			}
			return msg
		}

		log.Debug("snapshot read", "op", op, "count", len(es))
		msg.snapshot = true
		msg.expenses = es
		msg.categories = cs
		return msg
	}
}

// loadExpenses reads the first snapshot, importing the snapshot file first
// when configured to.
func (m model) loadExpenses() tea.Cmd {
	if !m.cfg.ImportOnStart {
		return m.storeCmd(opLoad, m.filter, nil)
	}

	s, path := m.store, m.cfg.SnapshotPath
	return m.storeCmd(opLoad, m.filter, func(ctx context.Context) (string, error) {
		n, err := store.Import(ctx, s, path)
		if err != nil {
			return "", fmt.Errorf("failed to import %s: %w", path, err)
		}
		if n == 0 {
			return "", nil
		}
		return fmt.Sprintf("imported %d expenses from %s", n, path), nil
	})
}

// refresh re-reads the snapshot through f.
func (m model) refresh(f filter) tea.Cmd {
	return m.storeCmd(opFilter, f, nil)
}

func (m model) createExpense(e expense.Expense) tea.Cmd {
	s := m.store
	return m.storeCmd(opCreate, m.filter, func(ctx context.Context) (string, error) {
		id, err := s.Create(ctx, e)
		if err != nil {
			return "", err
		}
		log.Debug("expense created", "id", id)
		return fmt.Sprintf("added expense #%d", id), nil
	})
}

func (m model) updateExpense(e expense.Expense) tea.Cmd {
	s := m.store
	return m.storeCmd(opUpdate, m.filter, func(ctx context.Context) (string, error) {
		ok, err := s.Update(ctx, e)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &goneError{id: e.ID}
		}
		return fmt.Sprintf("updated expense #%d", e.ID), nil
	})
}

func (m model) deleteExpense(id int64) tea.Cmd {
	s := m.store
	return m.storeCmd(opDelete, m.filter, func(ctx context.Context) (string, error) {
		ok, err := s.Delete(ctx, id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &goneError{id: id}
		}
		return fmt.Sprintf("deleted expense #%d", id), nil
	})
}

func (m model) exportSnapshot() tea.Cmd {
	s, path := m.store, m.cfg.SnapshotPath
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		return exportMsg{path: path, err: store.Export(ctx, s, path)}
	}
}
