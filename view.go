package main

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case browsing:
		b.WriteString(expensesView(m))
	case composing:
		b.WriteString(m.compose.View(m.styles.compose))
	case filtering:
		if m.filterForm != nil {
			b.WriteString(m.filterForm.View())
		}
	case configView:
		b.WriteString(m.configView.View())
	case loading:
		b.WriteString(fmt.Sprintf("%s Loading %s...", m.loadingSpinner.View(), m.loadingState))
		return m.styles.docStyle.Render(b.String())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	if m.filter.kind == allFilter || m.filter.kind == "" {
		return m.styles.titleStyle.Render(fmt.Sprintf("spendtui | %s", m.sessionState.String()))
	}

	return m.styles.titleStyle.Render(
		fmt.Sprintf("spendtui | %s | %s", m.sessionState.String(), m.filter.String()),
	)
}

// renderFooter draws the error, warning or status line above the key help.
func (m model) renderFooter() string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(m.styles.errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.warning != "":
		b.WriteString(m.styles.warningStyle.Render(m.warning))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.styles.statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	switch m.sessionState {
	case composing:
		b.WriteString(m.help.View(m.composeKeys))
	case filtering:
		// the form draws its own help
	default:
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}
