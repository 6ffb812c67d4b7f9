package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

func TestArchive_RecordsSteps(t *testing.T) {
	ctx := context.Background()
	a := NewArchive("archive.db")

	require.NoError(t, a.WriteBills(ctx, []domain.Bill{{ArtifactID: "A1"}}))
	_, err := a.WriteDocuments(ctx, []domain.Document{{DocumentID: "d1"}}, []domain.Document{{DocumentID: "d1"}, {DocumentID: "r1"}})
	require.NoError(t, err)
	require.NoError(t, a.CreateIndexes(ctx))

	assert.Equal(t, []string{"bills", "documents", "indexes"}, a.Steps)
	assert.Len(t, a.Documents, 2)
	assert.True(t, a.IndexesCreated)
	assert.Equal(t, "archive.db", a.Path())
}

func TestArchive_FailOn(t *testing.T) {
	a := NewArchive("archive.db")
	a.FailOn = "hearing_records"
	a.FailErr = errors.New("disk full")

	err := a.WriteHearingRecords(context.Background(), nil)

	assert.EqualError(t, err, "disk full")
}

func TestArchive_WriteAfterClose(t *testing.T) {
	a := NewArchive("archive.db")
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	err := a.WriteBills(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrArchiveClosed)
}

func TestArchiveFactory_Create(t *testing.T) {
	f := &ArchiveFactory{Prepare: func(a *Archive) { a.FailOn = "bills" }}

	w, err := f.Create(context.Background(), "out.db")

	require.NoError(t, err)
	assert.Same(t, f.Last, w)
	assert.Equal(t, "bills", f.Last.FailOn)
}
