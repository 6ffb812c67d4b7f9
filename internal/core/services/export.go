package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driving"
	"github.com/beacon-hill-archive/bhexport/internal/logger"
)

// Ensure ExportService implements the interfaces.
var (
	_ driving.Exporter  = (*ExportService)(nil)
	_ driving.Inspector = (*ExportService)(nil)
)

// ExportService rebuilds the archive from the raw store. A run reads every
// raw table, transforms in memory, then writes the archive from scratch.
type ExportService struct {
	rawFactory     driven.RawStoreFactory
	archiveFactory driven.ArchiveFactory
	metrics        driven.MetricsFactory

	now      func() time.Time
	newRunID func() string
}

// NewExportService creates a new export service.
// metrics is optional - if nil, runs are not recorded.
func NewExportService(
	rawFactory driven.RawStoreFactory,
	archiveFactory driven.ArchiveFactory,
	metrics driven.MetricsFactory,
) *ExportService {
	return &ExportService{
		rawFactory:     rawFactory,
		archiveFactory: archiveFactory,
		metrics:        metrics,
		now:            time.Now,
		newRunID:       uuid.NewString,
	}
}

// sourceSnapshot holds every raw table read for one run.
type sourceSnapshot struct {
	bills     []domain.BillSource
	timeline  []domain.RawTimelineAction
	hearings  []domain.RawHearing
	snapshots []domain.SnapshotMetadata
	primary   []domain.Document
	secondary []domain.Document
}

// Export runs one full rebuild.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *ExportService) Export(ctx context.Context, settings domain.ExportSettings) (stats *domain.ExportStats, err error) {
	if s.rawFactory == nil || s.archiveFactory == nil {
		return nil, fmt.Errorf("export: %w", domain.ErrNotConfigured)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	start := s.now()
	stats = &domain.ExportStats{
		RunID:       s.newRunID(),
		StartedAt:   start.UTC(),
		ArchivePath: settings.ArchivePath,
	}
	defer func() {
		stats.Duration = s.now().Sub(start)
		s.record(ctx, settings.MetricsTextfile, stats, err)
	}()

	logger.Info("Export %s: %s %s -> %s", stats.RunID, settings.Source.Driver, settings.Source.DSN, settings.ArchivePath)

	// 1. Read the raw store
	src, err := s.readSource(ctx, settings.Source)
	if err != nil {
		return stats, err
	}

	// 2. Transform
	logger.Section("Transform")
	bills := TransformBills(src.bills)
	actions := TransformTimeline(src.timeline)
	hearings := TransformHearings(src.hearings, NoticeGaps(src.snapshots))
	searchDocs := BuildSearchDocuments(bills, actions, src.primary, settings.Search)
	logger.Debug("bills=%d actions=%d hearings=%d search=%d", len(bills), len(actions), len(hearings), len(searchDocs))

	// 3. Write the archive
	archive, err := s.archiveFactory.Create(ctx, settings.ArchivePath)
	if err != nil {
		return stats, fmt.Errorf("create archive: %w", err)
	}
	stats.ArchivePath = archive.Path()
	defer func() {
		if closeErr := archive.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive: %w", closeErr)
		}
	}()

	logger.Section("Write")
	if err := archive.WriteBills(ctx, bills); err != nil {
		return stats, fmt.Errorf("write bills: %w", err)
	}
	stats.Bills = len(bills)
	logger.Info("bills: %d rows", stats.Bills)

	if err := archive.WriteTimelineActions(ctx, actions); err != nil {
		return stats, fmt.Errorf("write timeline actions: %w", err)
	}
	stats.TimelineActions = len(actions)
	logger.Info("timeline_actions: %d rows", stats.TimelineActions)

	if err := archive.WriteHearingRecords(ctx, hearings); err != nil {
		return stats, fmt.Errorf("write hearing records: %w", err)
	}
	stats.HearingRecords = len(hearings)
	logger.Info("hearing_records: %d rows", stats.HearingRecords)

	docStats, err := archive.WriteDocuments(ctx, src.primary, src.secondary)
	if err != nil {
		return stats, fmt.Errorf("write documents: %w", err)
	}
	stats.Documents = docStats
	logger.Info("documents: %d from document_artifacts, %d added from document_index", docStats.Primary, docStats.SecondaryAdded)
	if docStats.SecondarySkipped > 0 {
		logger.Debug("documents: %d document_index rows already present or rejected", docStats.SecondarySkipped)
	}

	if err := archive.WriteSearchDocuments(ctx, searchDocs); err != nil {
		return stats, fmt.Errorf("write search index: %w", err)
	}
	stats.SearchDocuments = len(searchDocs)
	logger.Info("search_index: %d documents", stats.SearchDocuments)

	if err := archive.WriteRunMetadata(ctx, runMetadata(stats, settings)); err != nil {
		return stats, fmt.Errorf("write run metadata: %w", err)
	}

	if err := archive.CreateIndexes(ctx); err != nil {
		return stats, fmt.Errorf("create indexes: %w", err)
	}

	return stats, nil
}

// Inspect summarises the raw store without transforming it.
func (s *ExportService) Inspect(ctx context.Context, source domain.SourceSettings) (*domain.SourceOverview, error) {
	if s.rawFactory == nil {
		return nil, fmt.Errorf("inspect: %w", domain.ErrNotConfigured)
	}

	raw, err := s.rawFactory.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer raw.Close()

	overview, err := raw.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("inspect source: %w", err)
	}
	return overview, nil
}

// readSource reads each raw table once. The raw store is closed before any
// archive write starts.
func (s *ExportService) readSource(ctx context.Context, source domain.SourceSettings) (*sourceSnapshot, error) {
	logger.Section("Read")

	raw, err := s.rawFactory.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer func() {
		if closeErr := raw.Close(); closeErr != nil {
			logger.Warn("closing source: %v", closeErr)
		}
	}()

	var src sourceSnapshot
	steps := []struct {
		name string
		read func() (int, error)
	}{
		{"bill_artifacts", func() (n int, err error) {
			src.bills, err = raw.ListBillSources(ctx)
			return len(src.bills), err
		}},
		{"timeline_actions", func() (n int, err error) {
			src.timeline, err = raw.ListTimelineActions(ctx)
			return len(src.timeline), err
		}},
		{"hearing_records", func() (n int, err error) {
			src.hearings, err = raw.ListHearings(ctx)
			return len(src.hearings), err
		}},
		{"artifact_snapshots", func() (n int, err error) {
			src.snapshots, err = raw.ListSnapshotMetadata(ctx)
			return len(src.snapshots), err
		}},
		{"document_artifacts", func() (n int, err error) {
			src.primary, err = raw.ListArtifactDocuments(ctx)
			return len(src.primary), err
		}},
		{"document_index", func() (n int, err error) {
			src.secondary, err = raw.ListIndexDocuments(ctx)
			return len(src.secondary), err
		}},
	}

	for _, step := range steps {
		n, err := step.read()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", step.name, domain.ErrSourceUnavailable, err)
		}
		logger.Debug("read %s: %d rows", step.name, n)
	}

	return &src, nil
}

// record publishes the run to the metrics textfile, if one is configured.
func (s *ExportService) record(ctx context.Context, path string, stats *domain.ExportStats, runErr error) {
	if s.metrics == nil || path == "" {
		return
	}
	recorder, err := s.metrics.Recorder(path)
	if err != nil {
		logger.Warn("opening metrics %s: %v", path, err)
		return
	}
	if err := recorder.RecordExport(ctx, stats, runErr); err != nil {
		logger.Warn("recording metrics: %v", err)
	}
}

func runMetadata(stats *domain.ExportStats, settings domain.ExportSettings) map[string]string {
	meta := map[string]string{
		"run_id":           stats.RunID,
		"generated_at":     stats.StartedAt.Format(time.RFC3339),
		"source_driver":    settings.Source.Driver.String(),
		"bills":            strconv.Itoa(stats.Bills),
		"timeline_actions": strconv.Itoa(stats.TimelineActions),
		"hearing_records":  strconv.Itoa(stats.HearingRecords),
		"documents":        strconv.Itoa(stats.Documents.Total()),
		"search_documents": strconv.Itoa(stats.SearchDocuments),
	}
	if settings.Source.Driver.IsFile() {
		// postgres DSNs may carry credentials
		meta["source_dsn"] = settings.Source.DSN
	}
	return meta
}
