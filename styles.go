package main

import (
	"github.com/Rshep3087/spendtui/compose"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const standardMargin = 2

type styles struct {
	docStyle     lipgloss.Style
	titleStyle   lipgloss.Style
	errorStyle   lipgloss.Style
	statusStyle  lipgloss.Style
	warningStyle lipgloss.Style
	emptyStyle   lipgloss.Style
	// table is used while a row is selected; tableNoSelection renders the
	// cursor row like any other row.
	table            table.Styles
	tableNoSelection table.Styles
	compose          compose.Styles
}

func createStyles(theme Theme) styles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(theme.Primary).
		Bold(true)

	noSelection := tableStyles
	noSelection.Selected = lipgloss.NewStyle()

	composeStyles := compose.DefaultStyles()
	composeStyles.Title = composeStyles.Title.Foreground(theme.Primary)
	composeStyles.Focused = composeStyles.Focused.Foreground(theme.Primary)
	composeStyles.Label = composeStyles.Label.Foreground(theme.SecondaryText)

	return styles{
		docStyle: lipgloss.NewStyle().Margin(1, standardMargin),
		titleStyle: lipgloss.NewStyle().Foreground(
			lipgloss.AdaptiveColor{Light: "#000000", Dark: string(theme.Primary)},
		).Bold(true),
		errorStyle:       lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		statusStyle:      lipgloss.NewStyle().Foreground(theme.Success),
		warningStyle:     lipgloss.NewStyle().Foreground(theme.Warning),
		emptyStyle:       lipgloss.NewStyle().Foreground(theme.Muted).Italic(true),
		table:            tableStyles,
		tableNoSelection: noSelection,
		compose:          composeStyles,
	}
}

func createHelpModel(theme Theme) help.Model {
	helpModel := help.New()
	helpModel.ShortSeparator = " + "
	helpModel.Styles = help.Styles{
		Ellipsis:       lipgloss.NewStyle().Foreground(theme.SecondaryText),
		ShortKey:       lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		ShortDesc:      lipgloss.NewStyle().Foreground(theme.Text),
		ShortSeparator: lipgloss.NewStyle().Foreground(theme.SecondaryText),
		FullKey:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		FullDesc:       lipgloss.NewStyle().Foreground(theme.Text),
		FullSeparator:  lipgloss.NewStyle().Foreground(theme.SecondaryText),
	}
	return helpModel
}
