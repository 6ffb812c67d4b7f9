package driven

import (
	"context"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// ArchiveWriter persists one rebuild of the archive. Writes are expected in
// order: bills, timeline actions, hearing records, documents, search
// documents, then indexes.
type ArchiveWriter interface {
	// WriteBills inserts all bill rows.
	WriteBills(ctx context.Context, bills []domain.Bill) error

	// WriteTimelineActions inserts all timeline rows in the given order.
	WriteTimelineActions(ctx context.Context, actions []domain.TimelineAction) error

	// WriteHearingRecords inserts all hearing rows.
	WriteHearingRecords(ctx context.Context, hearings []domain.HearingRecord) error

	// WriteDocuments inserts primary rows, then secondary rows whose id is
	// not present yet. Failures on secondary rows are skipped, not returned.
	WriteDocuments(ctx context.Context, primary, secondary []domain.Document) (domain.ReconcileStats, error)

	// WriteSearchDocuments fills the full-text index.
	WriteSearchDocuments(ctx context.Context, docs []domain.SearchDocument) error

	// CreateIndexes builds the secondary lookup indexes.
	CreateIndexes(ctx context.Context) error

	// WriteRunMetadata records key/value facts about the run.
	WriteRunMetadata(ctx context.Context, meta map[string]string) error

	// Path returns the archive location.
	Path() string

	// Close releases the archive. Each Write call has already committed its
	// own table, so nothing is pending. Calling Close twice is safe.
	Close() error
}

// ArchiveFactory creates a fresh archive at path, replacing any existing one.
type ArchiveFactory interface {
	Create(ctx context.Context, path string) (ArchiveWriter, error)
}
