package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// mockExporter records the settings of each Export call.
type mockExporter struct {
	calls    []domain.ExportSettings
	stats    *domain.ExportStats
	exportFn func(domain.ExportSettings) (*domain.ExportStats, error)
}

func (m *mockExporter) Export(_ context.Context, settings domain.ExportSettings) (*domain.ExportStats, error) {
	m.calls = append(m.calls, settings)
	if m.exportFn != nil {
		return m.exportFn(settings)
	}
	stats := m.stats
	if stats == nil {
		stats = &domain.ExportStats{}
	}
	stats.ArchivePath = settings.ArchivePath
	return stats, nil
}

// mockInspector returns a fixed overview.
type mockInspector struct {
	source   domain.SourceSettings
	overview *domain.SourceOverview
	err      error
}

func (m *mockInspector) Inspect(_ context.Context, source domain.SourceSettings) (*domain.SourceOverview, error) {
	m.source = source
	if m.err != nil {
		return nil, m.err
	}
	return m.overview, nil
}

// mockSettings keeps settings in memory.
type mockSettings struct {
	settings domain.ExportSettings
	set      map[string]string
	setErr   error
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultExportSettings(), set: map[string]string{}}
}

func (m *mockSettings) Get() (*domain.ExportSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{
		"archive.path", "metrics.textfile", "search.action_text_cap",
		"search.document_text_cap", "search.preview_cap", "source.driver", "source.dsn",
	}
}

func (m *mockSettings) GetDefaults() domain.ExportSettings { return domain.DefaultExportSettings() }
func (m *mockSettings) Path() string                       { return "/home/test/.bhexport/config.toml" }

// resetFlags restores every flag to its default so tests do not leak
// values into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes rootCmd with args against the given services.
func run(t *testing.T, services *Services, args ...string) (string, error) {
	t.Helper()

	prevExporter, prevInspector, prevSettings, prevBuilder := exporter, inspector, settingsService, buildServices
	exporter, inspector, settingsService, buildServices = nil, nil, nil, nil
	SetServices(services)
	t.Cleanup(func() {
		exporter, inspector, settingsService, buildServices = prevExporter, prevInspector, prevSettings, prevBuilder
	})

	return execute(t, args...)
}

// execute runs rootCmd with fresh flags and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
