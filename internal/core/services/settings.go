package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySourceDriver    = "source.driver"
	keySourceDSN       = "source.dsn"
	keyArchivePath     = "archive.path"
	keyActionTextCap   = "search.action_text_cap"
	keyDocumentTextCap = "search.document_text_cap"
	keyPreviewCap      = "search.preview_cap"
	keyMetricsTextfile = "metrics.textfile"
)

// intKeys are stored as TOML integers, everything else as strings.
var intKeys = map[string]bool{
	keyActionTextCap:   true,
	keyDocumentTextCap: true,
	keyPreviewCap:      true,
}

// SettingsService manages export settings held in a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves stored settings, falling back to defaults per key.
func (s *SettingsService) Get() (*domain.ExportSettings, error) {
	defaults := domain.DefaultExportSettings()

	settings := &domain.ExportSettings{
		Source: domain.SourceSettings{
			Driver: domain.SourceDriver(s.getString(keySourceDriver, defaults.Source.Driver.String())),
			DSN:    s.getString(keySourceDSN, defaults.Source.DSN),
		},
		ArchivePath: s.getString(keyArchivePath, defaults.ArchivePath),
		Search: domain.SearchCaps{
			ActionText:   s.getInt(keyActionTextCap, defaults.Search.ActionText),
			DocumentText: s.getInt(keyDocumentTextCap, defaults.Search.DocumentText),
			Preview:      s.getInt(keyPreviewCap, defaults.Search.Preview),
		},
		MetricsTextfile: s.configStore.GetString(keyMetricsTextfile), // No default - empty disables metrics
	}

	return settings, nil
}

// Set validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keySourceDriver:
		if !domain.SourceDriver(value).IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, value)
		}
	case keySourceDSN, keyArchivePath:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
	case keyMetricsTextfile:
	default:
		if !intKeys[key] {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
	}

	if intKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	}
	return s.configStore.Set(key, value)
}

// Keys lists the settable config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keySourceDriver, keySourceDSN, keyArchivePath,
		keyActionTextCap, keyDocumentTextCap, keyPreviewCap,
		keyMetricsTextfile,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ExportSettings {
	return domain.DefaultExportSettings()
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return def
}
