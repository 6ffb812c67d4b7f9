package driving

import (
	"context"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// Exporter rebuilds the archive from the raw store.
type Exporter interface {
	// Export runs one full rebuild with the given settings.
	Export(ctx context.Context, settings domain.ExportSettings) (*domain.ExportStats, error)
}

// Inspector describes the raw store without transforming it.
type Inspector interface {
	Inspect(ctx context.Context, source domain.SourceSettings) (*domain.SourceOverview, error)
}
