package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// advancePeriod moves the month filter one month forward.
func advancePeriod(m *model) (tea.Model, tea.Cmd) {
	return stepPeriod(m, 1)
}

// retrievePreviousPeriod moves the month filter one month back.
func retrievePreviousPeriod(m *model) (tea.Model, tea.Cmd) {
	return stepPeriod(m, -1)
}

// stepPeriod moves the month filter by months. Without an active month
// filter it starts one on the current month instead.
func stepPeriod(m *model, months int) (tea.Model, tea.Cmd) {
	if m.filter.kind == monthFilter {
		m.currentPeriod = m.currentPeriod.AddDate(0, months, 0)
	} else {
		m.currentPeriod = firstOfMonth(m.now())
	}

	f := filter{kind: monthFilter}
	f.period.setPeriod(m.currentPeriod)

	return reload(m, f)
}
