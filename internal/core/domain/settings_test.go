package domain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceDriver_IsValid(t *testing.T) {
	assert.True(t, SourceDriverDuckDB.IsValid())
	assert.True(t, SourceDriverPostgres.IsValid())
	assert.True(t, SourceDriverSQLite.IsValid())
	assert.False(t, SourceDriver("mysql").IsValid())
}

func TestSourceDriver_Description(t *testing.T) {
	assert.Equal(t, "DuckDB file (read-only)", SourceDriverDuckDB.Description())
	assert.Equal(t, unknownDescription, SourceDriver("mysql").Description())
}

func TestDefaultExportSettings(t *testing.T) {
	s := DefaultExportSettings()

	assert.Equal(t, SourceDriverDuckDB, s.Source.Driver)
	assert.Equal(t, "bill_artifacts.db", s.Source.DSN)
	assert.Equal(t, filepath.Join("data", "archive.db"), s.ArchivePath)
	assert.NoError(t, s.Validate())
}

func TestExportSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ExportSettings)
		want   error
	}{
		{"bad driver", func(s *ExportSettings) { s.Source.Driver = "mysql" }, ErrUnsupportedDriver},
		{"empty dsn", func(s *ExportSettings) { s.Source.DSN = "" }, ErrInvalidInput},
		{"empty archive", func(s *ExportSettings) { s.ArchivePath = "" }, ErrInvalidInput},
		{"same file", func(s *ExportSettings) { s.ArchivePath = s.Source.DSN }, ErrInvalidInput},
		{"zero cap", func(s *ExportSettings) { s.Search.Preview = 0 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultExportSettings()
			tt.mutate(&s)

			err := s.Validate()

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestExportSettings_PostgresMayShareName(t *testing.T) {
	s := DefaultExportSettings()
	s.Source.Driver = SourceDriverPostgres
	s.Source.DSN = "archive.db"
	s.ArchivePath = "archive.db"

	assert.NoError(t, s.Validate())
}
