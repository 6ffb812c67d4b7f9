package memory

import (
	"context"
	"sync"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

// Ensure Archive and ArchiveFactory implement the interfaces.
var (
	_ driven.ArchiveWriter  = (*Archive)(nil)
	_ driven.ArchiveFactory = (*ArchiveFactory)(nil)
)

// Archive is an in-memory implementation of driven.ArchiveWriter.
// It records every write and the order steps were called in.
type Archive struct {
	mu   sync.Mutex
	path string

	Bills           []domain.Bill
	TimelineActions []domain.TimelineAction
	HearingRecords  []domain.HearingRecord
	Documents       []domain.Document
	SearchDocuments []domain.SearchDocument
	RunMetadata     map[string]string
	IndexesCreated  bool
	Closed          bool

	// Steps lists the write methods in call order.
	Steps []string

	// FailOn makes the named step return FailErr.
	FailOn  string
	FailErr error
}

// NewArchive creates an empty in-memory archive.
func NewArchive(path string) *Archive {
	return &Archive{path: path}
}

func (a *Archive) step(name string) error {
	a.Steps = append(a.Steps, name)
	if a.Closed {
		return domain.ErrArchiveClosed
	}
	if a.FailOn == name {
		return a.FailErr
	}
	return nil
}

// WriteBills records bill rows.
func (a *Archive) WriteBills(_ context.Context, bills []domain.Bill) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("bills"); err != nil {
		return err
	}
	a.Bills = append(a.Bills, bills...)
	return nil
}

// WriteTimelineActions records timeline rows.
func (a *Archive) WriteTimelineActions(_ context.Context, actions []domain.TimelineAction) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("timeline_actions"); err != nil {
		return err
	}
	a.TimelineActions = append(a.TimelineActions, actions...)
	return nil
}

// WriteHearingRecords records hearing rows.
func (a *Archive) WriteHearingRecords(_ context.Context, hearings []domain.HearingRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("hearing_records"); err != nil {
		return err
	}
	a.HearingRecords = append(a.HearingRecords, hearings...)
	return nil
}

// WriteDocuments merges both document sources with primary priority.
func (a *Archive) WriteDocuments(_ context.Context, primary, secondary []domain.Document) (domain.ReconcileStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("documents"); err != nil {
		return domain.ReconcileStats{}, err
	}
	merged, stats := domain.MergeDocuments(primary, secondary)
	a.Documents = merged
	return stats, nil
}

// WriteSearchDocuments records search documents.
func (a *Archive) WriteSearchDocuments(_ context.Context, docs []domain.SearchDocument) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("search_index"); err != nil {
		return err
	}
	a.SearchDocuments = append(a.SearchDocuments, docs...)
	return nil
}

// CreateIndexes marks indexes as created.
func (a *Archive) CreateIndexes(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("indexes"); err != nil {
		return err
	}
	a.IndexesCreated = true
	return nil
}

// WriteRunMetadata records run metadata.
func (a *Archive) WriteRunMetadata(_ context.Context, meta map[string]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.step("archive_meta"); err != nil {
		return err
	}
	a.RunMetadata = meta
	return nil
}

// Path returns the archive path.
func (a *Archive) Path() string {
	return a.path
}

// Close marks the archive closed.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Closed = true
	return nil
}

// ArchiveFactory creates in-memory archives and keeps the last one.
type ArchiveFactory struct {
	// Last is the most recently created archive.
	Last *Archive

	// Prepare, when set, configures each new archive before it is returned.
	Prepare func(*Archive)

	// CreateErr, when set, is returned by Create.
	CreateErr error
}

// Create returns a fresh in-memory archive.
func (f *ArchiveFactory) Create(_ context.Context, path string) (driven.ArchiveWriter, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	a := NewArchive(path)
	if f.Prepare != nil {
		f.Prepare(a)
	}
	f.Last = a
	return a, nil
}
