package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rshep3087/spendtui/expense"
	"github.com/Rshep3087/spendtui/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

// filter selects which expenses the list shows.
type filter struct {
	kind     string
	category string
	period   Period
}

func (f filter) String() string {
	switch f.kind {
	case categoryFilter:
		return fmt.Sprintf("category %q", f.category)
	case monthFilter:
		return "month " + f.period.String()
	}
	return ""
}

// apply reads the expenses matching f.
func (f filter) apply(ctx context.Context, s store.Store) ([]expense.Expense, error) {
	switch f.kind {
	case categoryFilter:
		return s.FilterByCategory(ctx, f.category)
	case monthFilter:
		return s.FilterByMonth(ctx, f.period.year(), f.period.month())
	}
	return s.List(ctx)
}

// filterInput holds the values bound to the filter form.
type filterInput struct {
	kind     string
	category string
	month    string
}

func newFilterForm(in *filterInput, categories []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Show").
				Options(
					huh.NewOption("All expenses", allFilter),
					huh.NewOption("One category", categoryFilter),
					huh.NewOption("One month", monthFilter),
				).
				Value(&in.kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Suggestions(categories).
				Value(&in.category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return in.kind != categoryFilter }),
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Month").
				Placeholder("YYYY-MM").
				Value(&in.month).
				Validate(func(s string) error {
					_, err := parseMonth(s)
					return err
				}),
		).WithHideFunc(func() bool { return in.kind != monthFilter }),
	).WithShowHelp(true)
}

func openFilterForm(m *model) (tea.Model, tea.Cmd) {
	m.filterInput = &filterInput{
		kind:     m.filter.kind,
		category: m.filter.category,
		month:    m.currentPeriod.Format(monthLayout),
	}
	m.filterForm = newFilterForm(m.filterInput, m.categories)

	m.previousSessionState = m.sessionState
	m.sessionState = filtering
	return m, tea.Batch(m.filterForm.Init(), tea.WindowSize())
}

// updateFilterForm forwards msg to the filter form and applies the filter
// once the form completes.
func updateFilterForm(msg tea.Msg, m *model) (tea.Model, tea.Cmd) {
	if m.filterForm == nil {
		return m, nil
	}

	form, cmd := m.filterForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.filterForm = f
	} else {
		log.Debug("filterForm did not return a form, returning nil")
		return m, nil
	}

	switch m.filterForm.State {
	case huh.StateCompleted:
		return applyFilterInput(m, *m.filterInput)
	case huh.StateAborted:
		m.previousSessionState = m.sessionState
		m.sessionState = browsing
		return m, nil
	}

	return m, cmd
}

func applyFilterInput(m *model, in filterInput) (tea.Model, tea.Cmd) {
	f := filter{kind: in.kind}

	switch in.kind {
	case categoryFilter:
		f.category = strings.TrimSpace(in.category)
	case monthFilter:
		month, err := parseMonth(in.month)
		if err != nil {
			m.err = err
			m.sessionState = browsing
			return m, nil
		}
		m.currentPeriod = firstOfMonth(month)
		f.period.setPeriod(m.currentPeriod)
	default:
		f.kind = allFilter
	}

	log.Debug("applying filter", "filter", f.String())
	m.filterForm = nil
	m.filterInput = nil
	return reload(m, f)
}

func clearFilter(m *model) (tea.Model, tea.Cmd) {
	if m.filter.kind == allFilter {
		return m, nil
	}
	return reload(m, filter{kind: allFilter})
}

// reload re-reads the snapshot through f, showing the spinner until it
// arrives.
func reload(m *model, f filter) (tea.Model, tea.Cmd) {
	m.previousSessionState = m.sessionState
	m.sessionState = loading
	m.loadingState.unset(expensesKey)
	m.pending = true
	return m, tea.Batch(m.refresh(f), m.loadingSpinner.Tick)
}
