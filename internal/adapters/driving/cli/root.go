// Package cli provides the bhexport command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driving"
	"github.com/beacon-hill-archive/bhexport/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services injected by main.
var (
	exporter        driving.Exporter
	inspector       driving.Inspector
	settingsService driving.SettingsService
)

// Services groups the driving ports the commands call.
type Services struct {
	Exporter  driving.Exporter
	Inspector driving.Inspector
	Settings  driving.SettingsService
}

// ServiceBuilder builds the services once flags are parsed. configDir is
// the --config-dir value, empty for the default.
type ServiceBuilder func(configDir string) (*Services, error)

var buildServices ServiceBuilder

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "bhexport",
	Short: "Build the bill archive from the raw store",
	Long: `bhexport rebuilds archive.db, the SQLite archive of legislative bill
activity served by the web front end, from the raw store written by the
upstream pipeline (DuckDB by default).

Every export is a full rebuild: the archive file is replaced.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if buildServices == nil {
			return nil
		}
		s, err := buildServices(configDir)
		if err != nil {
			return err
		}
		SetServices(s)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.bhexport)")
}

// SetVersion sets the version reported by the version command and --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetServices injects the services directly.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	exporter = s.Exporter
	inspector = s.Inspector
	settingsService = s.Settings
}

// SetServiceBuilder registers a builder run before every command.
func SetServiceBuilder(b ServiceBuilder) {
	buildServices = b
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
