package domain

import (
	"fmt"
	"path/filepath"
)

const unknownDescription = "Unknown"

// SourceDriver identifies the database/sql driver used to read the raw store.
type SourceDriver string

// Available source drivers.
const (
	// SourceDriverDuckDB reads a DuckDB file, the store the upstream pipeline writes.
	SourceDriverDuckDB SourceDriver = "duckdb"

	// SourceDriverPostgres reads a Postgres mirror of the raw tables.
	SourceDriverPostgres SourceDriver = "postgres"

	// SourceDriverSQLite reads a SQLite copy of the raw tables.
	SourceDriverSQLite SourceDriver = "sqlite"
)

// IsValid returns true if the driver is recognised.
func (d SourceDriver) IsValid() bool {
	switch d {
	case SourceDriverDuckDB, SourceDriverPostgres, SourceDriverSQLite:
		return true
	default:
		return false
	}
}

// IsFile returns true if the DSN names a local file.
func (d SourceDriver) IsFile() bool {
	return d == SourceDriverDuckDB || d == SourceDriverSQLite
}

// String returns the string representation.
func (d SourceDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d SourceDriver) Description() string {
	switch d {
	case SourceDriverDuckDB:
		return "DuckDB file (read-only)"
	case SourceDriverPostgres:
		return "PostgreSQL connection string"
	case SourceDriverSQLite:
		return "SQLite file (read-only)"
	default:
		return unknownDescription
	}
}

// SourceSettings locates the raw analytical store.
type SourceSettings struct {
	Driver SourceDriver
	DSN    string
}

// ExportSettings holds everything a rebuild needs.
type ExportSettings struct {
	Source SourceSettings

	// ArchivePath is the destination SQLite file. It is replaced on every run.
	ArchivePath string

	Search SearchCaps

	// MetricsTextfile, when set, receives prometheus text metrics after each run.
	MetricsTextfile string
}

// DefaultExportSettings returns the settings used when nothing is configured.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Source: SourceSettings{
			Driver: SourceDriverDuckDB,
			DSN:    "bill_artifacts.db",
		},
		ArchivePath: filepath.Join("data", "archive.db"),
		Search:      DefaultSearchCaps(),
	}
}

// Validate reports the first problem that would prevent a rebuild.
func (s ExportSettings) Validate() error {
	if !s.Source.Driver.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, s.Source.Driver)
	}
	if s.Source.DSN == "" {
		return fmt.Errorf("%w: source dsn is empty", ErrInvalidInput)
	}
	if s.ArchivePath == "" {
		return fmt.Errorf("%w: archive path is empty", ErrInvalidInput)
	}
	if s.Source.Driver.IsFile() && filepath.Clean(s.Source.DSN) == filepath.Clean(s.ArchivePath) {
		return fmt.Errorf("%w: archive path must differ from source", ErrInvalidInput)
	}
	if !s.Search.IsValid() {
		return fmt.Errorf("%w: search caps must be positive", ErrInvalidInput)
	}
	return nil
}
