package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls how the form is drawn.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Value   lipgloss.Style
	Cursor  string
}

// DefaultStyles returns plain styles for the form.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Label:   lipgloss.NewStyle().Width(10),
		Focused: lipgloss.NewStyle().Width(10).Bold(true).Underline(true),
		Value:   lipgloss.NewStyle(),
		Cursor:  "_",
	}
}

// View renders the draft as a form with one line per field. It renders
// nothing while browsing.
func (m Machine) View(s Styles) string {
	if m.mode != Composing {
		return ""
	}

	var b strings.Builder

	title := "New expense"
	if m.draft.ID != 0 {
		title = fmt.Sprintf("Edit expense #%d", m.draft.ID)
	}
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n\n")

	for _, f := range fields {
		label := s.Label.Render(labelFor(f))
		value := m.text(f)
		if f == m.focus {
			label = s.Focused.Render(labelFor(f))
			value += s.Cursor
		}

		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(s.Value.Render(value))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Machine) text(f Field) string {
	switch f {
	case Date:
		return m.draft.Date
	case Name:
		return m.draft.Name
	case Category:
		return m.draft.Category
	case Amount:
		return m.draft.AmountText
	}
	return ""
}

func labelFor(f Field) string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
