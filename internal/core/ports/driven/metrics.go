package driven

import (
	"context"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// MetricsRecorder publishes the outcome of a rebuild. runErr is the error
// the rebuild returned, if any; stats may be partial when runErr is set.
type MetricsRecorder interface {
	RecordExport(ctx context.Context, stats *domain.ExportStats, runErr error) error
}

// MetricsFactory returns the recorder for a metrics destination. Repeated
// calls with the same path return the same recorder so counters carry
// across runs.
type MetricsFactory interface {
	Recorder(path string) (MetricsRecorder, error)
}
