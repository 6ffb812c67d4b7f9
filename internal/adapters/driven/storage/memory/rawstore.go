package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

// Ensure RawStore and RawStoreFactory implement the interfaces.
var (
	_ driven.RawStore        = (*RawStore)(nil)
	_ driven.RawStoreFactory = (*RawStoreFactory)(nil)
)

// RawTables holds the contents of a raw store.
type RawTables struct {
	Bills             []domain.BillSource
	Timeline          []domain.RawTimelineAction
	Hearings          []domain.RawHearing
	Snapshots         []domain.SnapshotMetadata
	ArtifactDocuments []domain.Document
	IndexDocuments    []domain.Document
}

// RawStore is an in-memory implementation of driven.RawStore.
type RawStore struct {
	mu     sync.RWMutex
	tables RawTables
	closed bool

	// Err, when set, is returned by every List method.
	Err error
}

// NewRawStore creates a new in-memory raw store.
func NewRawStore(tables RawTables) *RawStore {
	return &RawStore{tables: tables}
}

// ListBillSources returns the bill rows.
func (s *RawStore) ListBillSources(_ context.Context) ([]domain.BillSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.BillSource(nil), s.tables.Bills...), nil
}

// ListTimelineActions returns the timeline rows ordered by action date.
// Rows without a date sort first, like NULLs in an ascending ORDER BY.
func (s *RawStore) ListTimelineActions(_ context.Context) ([]domain.RawTimelineAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	actions := append([]domain.RawTimelineAction(nil), s.tables.Timeline...)
	sort.SliceStable(actions, func(i, j int) bool {
		return orEmpty(actions[i].ActionDate) < orEmpty(actions[j].ActionDate)
	})
	return actions, nil
}

// ListHearings returns the hearing rows.
func (s *RawStore) ListHearings(_ context.Context) ([]domain.RawHearing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.RawHearing(nil), s.tables.Hearings...), nil
}

// ListSnapshotMetadata returns the snapshot rows.
func (s *RawStore) ListSnapshotMetadata(_ context.Context) ([]domain.SnapshotMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.SnapshotMetadata(nil), s.tables.Snapshots...), nil
}

// ListArtifactDocuments returns the artifact-linked document rows.
func (s *RawStore) ListArtifactDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.Document(nil), s.tables.ArtifactDocuments...), nil
}

// ListIndexDocuments returns the document index rows.
func (s *RawStore) ListIndexDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.Document(nil), s.tables.IndexDocuments...), nil
}

// Overview counts rows per table and per action code.
func (s *RawStore) Overview(_ context.Context) (*domain.SourceOverview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	overview := &domain.SourceOverview{
		Tables: []domain.TableCount{
			{Table: "bill_artifacts", Rows: int64(len(s.tables.Bills))},
			{Table: "artifact_snapshots", Rows: int64(len(s.tables.Snapshots))},
			{Table: "timeline_actions", Rows: int64(len(s.tables.Timeline))},
			{Table: "hearing_records", Rows: int64(len(s.tables.Hearings))},
			{Table: "document_artifacts", Rows: int64(len(s.tables.ArtifactDocuments))},
			{Table: "document_index", Rows: int64(len(s.tables.IndexDocuments))},
		},
	}

	types := make(map[string]int64)
	cats := make(map[string]int64)
	for _, a := range s.tables.Timeline {
		types[orEmpty(a.ActionType)]++
		cats[orEmpty(a.Category)]++
	}
	overview.ActionTypes = sortedCounts(types)
	overview.Categories = sortedCounts(cats)
	return overview, nil
}

// Close marks the store closed.
func (s *RawStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *RawStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// RawStoreFactory hands out one shared RawStore.
type RawStoreFactory struct {
	Store *RawStore

	// OpenErr, when set, is returned by Open.
	OpenErr error

	// Opened counts Open calls.
	Opened int
}

// Open returns the shared store.
func (f *RawStoreFactory) Open(_ context.Context, _ domain.SourceSettings) (driven.RawStore, error) {
	f.Opened++
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return f.Store, nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedCounts(m map[string]int64) []domain.CodeCount {
	out := make([]domain.CodeCount, 0, len(m))
	for code, n := range m {
		out = append(out, domain.CodeCount{Code: code, Rows: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
