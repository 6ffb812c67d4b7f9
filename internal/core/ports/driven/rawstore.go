package driven

import (
	"context"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// RawStore reads the raw analytical store. Every method reads its table
// once and returns all rows; the store is never written.
type RawStore interface {
	// ListBillSources returns every bill artifact left-joined to its snapshot.
	ListBillSources(ctx context.Context) ([]domain.BillSource, error)

	// ListTimelineActions returns every timeline action ordered by action date.
	ListTimelineActions(ctx context.Context) ([]domain.RawTimelineAction, error)

	// ListHearings returns every hearing record.
	ListHearings(ctx context.Context) ([]domain.RawHearing, error)

	// ListSnapshotMetadata returns the computation metadata of every snapshot.
	ListSnapshotMetadata(ctx context.Context) ([]domain.SnapshotMetadata, error)

	// ListArtifactDocuments returns artifact-linked documents with their bill code.
	ListArtifactDocuments(ctx context.Context) ([]domain.Document, error)

	// ListIndexDocuments returns document index rows shaped to the document
	// layout, with nil ArtifactID and ParserVersion.
	ListIndexDocuments(ctx context.Context) ([]domain.Document, error)

	// Overview counts rows per raw table and per action code.
	Overview(ctx context.Context) (*domain.SourceOverview, error)

	// Close releases the connection.
	Close() error
}

// RawStoreFactory opens a RawStore for the given source settings.
type RawStoreFactory interface {
	Open(ctx context.Context, source domain.SourceSettings) (RawStore, error)
}
