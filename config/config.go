package config

import (
	"net/url"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// DBPath is the SQLite database file, or ":memory:"
	DBPath string `toml:"db_path"`
	// DatabaseURL selects the Postgres backend when set
	DatabaseURL string `toml:"database_url"`
	// SnapshotPath is the JSON file used by export and import
	SnapshotPath string `toml:"snapshot_path"`
	// ExportOnQuit writes the snapshot file when the TUI exits
	ExportOnQuit bool `toml:"export_on_quit"`
	// ImportOnStart loads the snapshot file when the TUI starts
	ImportOnStart bool `toml:"import_on_start"`
	// RequireComplete refuses to save expenses without a name and category
	RequireComplete bool `toml:"require_complete"`
	// Currency is the ISO 4217 code used to display amounts
	Currency string `toml:"currency"`
	// LogFile receives log output while the TUI is running
	LogFile string `toml:"log_file"`
	// Colors overrides the theme
	Colors Colors `toml:"colors"`
}

// Colors holds theme overrides. Values are hex ("#ff0000") or ANSI ("21")
// colors; empty values keep the default.
type Colors struct {
	Primary       string `toml:"primary"`
	Error         string `toml:"error"`
	Success       string `toml:"success"`
	Warning       string `toml:"warning"`
	Muted         string `toml:"muted"`
	Border        string `toml:"border"`
	Text          string `toml:"text"`
	SecondaryText string `toml:"secondary_text"`
}

// Model represents the config view model.
type Model struct {
	configTable table.Model
}

// New creates a new config view model.
func New(primary string) Model {
	configTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 20},
			{Title: "Value", Width: 40},
			{Title: "Description", Width: 50},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(primary))

	configTable.SetStyles(tableStyle)

	return Model{configTable: configTable}
}

// SetFocus sets the focus state of the config table.
func (m *Model) SetFocus(focus bool) {
	if focus {
		m.configTable.Focus()
	} else {
		m.configTable.Blur()
	}
}

// SetSize sets the size of the config table.
func (m *Model) SetSize(width, height int) {
	m.configTable.SetHeight(height)
	m.configTable.SetWidth(width)
}

// maskSensitiveValue hides the password of a connection URL.
func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	u, err := url.Parse(value)
	if err != nil {
		return "(unparsable)"
	}

	return u.Redacted()
}

func formatPath(value string) string {
	switch value {
	case "":
		return "(not set)"
	case ":memory:":
		return "(in memory)"
	}
	return value
}

// Rows returns the settings as table rows.
func Rows(config Config) []table.Row {
	return []table.Row{
		{"Debug", strconv.FormatBool(config.Debug), "Enable debug logging"},
		{"Database Path", formatPath(config.DBPath), "SQLite database file"},
		{"Database URL", maskSensitiveValue(config.DatabaseURL), "Postgres connection string, overrides the path"},
		{"Snapshot Path", formatPath(config.SnapshotPath), "JSON file used by export and import"},
		{"Export on Quit", strconv.FormatBool(config.ExportOnQuit), "Write the snapshot when the TUI exits"},
		{"Import on Start", strconv.FormatBool(config.ImportOnStart), "Load the snapshot when the TUI starts"},
		{"Require Complete", strconv.FormatBool(config.RequireComplete), "Refuse expenses without a name and category"},
		{"Currency", config.Currency, "Currency used to display amounts"},
		{"Log File", formatPath(config.LogFile), "Log output while the TUI runs"},
	}
}

// SetConfig sets the configuration data for the view.
func (m *Model) SetConfig(config Config) {
	m.configTable.SetRows(Rows(config))
}

// Init initializes the config view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updates to the config view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.configTable, cmd = m.configTable.Update(msg)
	return m, cmd
}

// View renders the config view.
func (m Model) View() string {
	return m.configTable.View()
}
