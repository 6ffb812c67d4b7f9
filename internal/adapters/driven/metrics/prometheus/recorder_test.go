package prometheus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

func readTextfile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewRecorder_EmptyPath(t *testing.T) {
	_, err := NewRecorder("")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecorder_RecordExport_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics", "bhexport.prom")
	recorder, err := NewRecorder(path)
	require.NoError(t, err)

	stats := &domain.ExportStats{
		StartedAt:       time.Unix(1700000000, 0),
		Duration:        1500 * time.Millisecond,
		Bills:           3,
		TimelineActions: 10,
		HearingRecords:  2,
		Documents:       domain.ReconcileStats{Primary: 4, SecondaryAdded: 1, SecondarySkipped: 2},
		SearchDocuments: 3,
	}

	require.NoError(t, recorder.RecordExport(context.Background(), stats, nil))

	text := readTextfile(t, path)
	assert.Contains(t, text, `bhexport_rows_written{table="bills"} 3`)
	assert.Contains(t, text, `bhexport_rows_written{table="documents"} 5`)
	assert.Contains(t, text, `bhexport_documents_skipped 2`)
	assert.Contains(t, text, `bhexport_run_duration_seconds 1.5`)
	assert.Contains(t, text, `bhexport_last_success_timestamp_seconds 1.7e+09`)
	assert.Contains(t, text, `bhexport_runs_total{status="success"} 1`)
}

func TestRecorder_RecordExport_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bhexport.prom")
	recorder, err := NewRecorder(path)
	require.NoError(t, err)

	require.NoError(t, recorder.RecordExport(context.Background(), &domain.ExportStats{}, nil))
	require.NoError(t, recorder.RecordExport(context.Background(), &domain.ExportStats{}, errors.New("boom")))

	text := readTextfile(t, path)
	assert.Contains(t, text, `bhexport_runs_total{status="success"} 1`)
	assert.Contains(t, text, `bhexport_runs_total{status="error"} 1`)
}

func TestRecorder_RecordExport_NilStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bhexport.prom")
	recorder, err := NewRecorder(path)
	require.NoError(t, err)

	require.NoError(t, recorder.RecordExport(context.Background(), nil, errors.New("invalid settings")))

	assert.Contains(t, readTextfile(t, path), `bhexport_runs_total{status="error"} 1`)
}

func TestFactory_ReusesRecorderPerPath(t *testing.T) {
	dir := t.TempDir()
	factory := NewFactory()

	first, err := factory.Recorder(filepath.Join(dir, "a.prom"))
	require.NoError(t, err)
	again, err := factory.Recorder(filepath.Join(dir, ".", "a.prom"))
	require.NoError(t, err)
	other, err := factory.Recorder(filepath.Join(dir, "b.prom"))
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
}

func TestFactory_EmptyPath(t *testing.T) {
	_, err := NewFactory().Recorder("")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
