package main

import (
	"testing"

	"github.com/Rshep3087/spendtui/config"
	"github.com/carlmjohnson/be"
	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	colors := config.Colors{
		Primary:       "#ff0000",
		Error:         "21",
		Success:       "#00ff00",
		SecondaryText: "245",
	}

	theme := newTheme(colors)

	be.Equal(t, lipgloss.Color("#ff0000"), theme.Primary)
	be.Equal(t, lipgloss.Color("21"), theme.Error)
	be.Equal(t, lipgloss.Color("#00ff00"), theme.Success)
	be.Equal(t, lipgloss.Color("245"), theme.SecondaryText)

	// unset colors fall back to the defaults
	be.Equal(t, lipgloss.Color("#7D56F4"), theme.Border)
	be.Equal(t, lipgloss.Color("#FAFAFA"), theme.Text)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name         string
		colorStr     string
		defaultColor string
		expected     lipgloss.Color
	}{
		{"hex color", "#ff0000", "#000000", lipgloss.Color("#ff0000")},
		{"ansi color", "21", "#000000", lipgloss.Color("21")},
		{"empty string", "", "#000000", lipgloss.Color("#000000")},
		{"invalid color still accepted", "invalid", "#000000", lipgloss.Color("invalid")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, parseColor(tt.colorStr, tt.defaultColor))
		})
	}
}
