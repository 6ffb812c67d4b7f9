package driving

import "github.com/beacon-hill-archive/bhexport/internal/core/domain"

// SettingsService manages stored export settings.
type SettingsService interface {
	// Get returns stored settings with defaults filled in.
	Get() (*domain.ExportSettings, error)

	// Set stores one setting by its config key, e.g. "source.driver".
	Set(key, value string) error

	// Keys lists the settable config keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ExportSettings

	// Path returns where settings are stored.
	Path() string
}
