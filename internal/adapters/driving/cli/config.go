package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage export settings",
	Long: `View and change the stored export settings.

Settings live in a TOML file (default ~/.bhexport/config.toml).`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Keys:

  source.driver              duckdb, postgres or sqlite
  source.dsn                 raw store file or connection string
  archive.path               archive file to write
  search.action_text_cap     characters of action text per bill in the search index
  search.document_text_cap   characters of document text per bill in the search index
  search.preview_cap         characters kept from each document preview
  metrics.textfile           Prometheus textfile path, empty to disable`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	defaults := settingsService.GetDefaults()
	values := settingValues(settings)
	defaultValues := settingValues(&defaults)
	rows := make([][]string, 0, len(values))
	for _, key := range settingsService.Keys() {
		v, def := values[key], defaultValues[key]
		if v == "" {
			v = "(not set)"
		}
		if def == "" {
			def = "-"
		}
		rows = append(rows, []string{key, v, def})
	}

	cmd.Println(titleStyle.Render("Settings"))
	cmd.Println(renderTable([]string{"Key", "Value", "Default"}, rows))
	cmd.Println(mutedStyle.Render(settingsService.Path()))

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// settingValues renders settings by config key.
func settingValues(s *domain.ExportSettings) map[string]string {
	dsn := s.Source.DSN
	if s.Source.Driver == domain.SourceDriverPostgres {
		dsn = maskDSN(dsn)
	}
	return map[string]string{
		"source.driver":            s.Source.Driver.String(),
		"source.dsn":               dsn,
		"archive.path":             s.ArchivePath,
		"search.action_text_cap":   itoa(s.Search.ActionText),
		"search.document_text_cap": itoa(s.Search.DocumentText),
		"search.preview_cap":       itoa(s.Search.Preview),
		"metrics.textfile":         s.MetricsTextfile,
	}
}
