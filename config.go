package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Rhymond/go-money"
	"github.com/Rshep3087/spendtui/config"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "spendtui"

// configSearchDirs returns the directories searched for spendtui.toml, in
// order of precedence (first found wins).
func configSearchDirs() []string {
	// Current directory (highest precedence)
	dirs := []string{"."}

	// User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, appName))
	}

	// User home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, homeDir)
		dirs = append(dirs, filepath.Join(homeDir, ".config", appName))
	}

	// System-wide config directory (lowest precedence)
	dirs = append(dirs, filepath.Join("/etc", appName))

	return dirs
}

// dataDir is where the database, snapshot and log live by default.
func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return "."
}

// defaultConfig returns the configuration used when nothing overrides it.
func defaultConfig() config.Config {
	dir := dataDir()
	return config.Config{
		DBPath:       filepath.Join(dir, "spendtui.db"),
		SnapshotPath: filepath.Join(dir, "expenses.json"),
		Currency:     money.USD,
		LogFile:      filepath.Join(dir, "spendtui.log"),
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultConfig()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("snapshot_path", d.SnapshotPath)
	v.SetDefault("currency", d.Currency)
	v.SetDefault("log_file", d.LogFile)
}

// settingsFromViper resolves the effective configuration from flags, env,
// the config file and defaults.
func settingsFromViper() config.Config {
	c := config.Config{
		Debug:           viper.GetBool("debug"),
		DBPath:          viper.GetString("db_path"),
		DatabaseURL:     viper.GetString("database_url"),
		SnapshotPath:    viper.GetString("snapshot_path"),
		ExportOnQuit:    viper.GetBool("export_on_quit"),
		ImportOnStart:   viper.GetBool("import_on_start"),
		RequireComplete: viper.GetBool("require_complete"),
		Currency:        viper.GetString("currency"),
		LogFile:         viper.GetString("log_file"),
		Colors: config.Colors{
			Primary:       viper.GetString("colors.primary"),
			Error:         viper.GetString("colors.error"),
			Success:       viper.GetString("colors.success"),
			Warning:       viper.GetString("colors.warning"),
			Muted:         viper.GetString("colors.muted"),
			Border:        viper.GetString("colors.border"),
			Text:          viper.GetString("colors.text"),
			SecondaryText: viper.GetString("colors.secondary_text"),
		},
	}

	if money.GetCurrency(c.Currency) == nil {
		log.Warn("unknown currency, using USD", "currency", c.Currency)
		c.Currency = money.USD
	}

	return c
}

// writeConfigFile writes c to path as TOML. An existing file is only
// replaced when force is set.
func writeConfigFile(path string, c config.Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file %s: %w", path, err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// loadConfigFromFile loads configuration from a TOML file.
func loadConfigFromFile(path string) (config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var c config.Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return config.Config{}, fmt.Errorf("failed to parse TOML config file %s: %w", path, err)
	}

	return c, nil
}

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a default config file",
	Long:  `Write a config file with the default settings, by default to ./spendtui.toml.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appName + ".toml"
		if len(args) == 1 {
			path = args[0]
		}

		force, _ := cmd.Flags().GetBool("force")
		if err := writeConfigFile(path, defaultConfig(), force); err != nil {
			return err
		}

		log.Info("config file written", "path", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")

		rows := config.Rows(cfg)

		if output == jsonOutputFormat {
			settings := make(map[string]string, len(rows))
			for _, row := range rows {
				settings[row[0]] = row[1]
			}
			return outputJSON(map[string]any{
				"config_file": viper.ConfigFileUsed(),
				"settings":    settings,
			})
		}

		t := createStyledTable("Setting", "Value", "Description")
		for _, row := range rows {
			t.Row(row...)
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Println("Config file:", used)
		}
		fmt.Println(t)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configShowCmd.Flags().StringP("output", "o", tableOutputFormat, "output format (table, json)")
}
