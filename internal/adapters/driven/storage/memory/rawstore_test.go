package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

func ptr(s string) *string { return &s }

func TestRawStore_TimelineOrderedByDate(t *testing.T) {
	store := NewRawStore(RawTables{
		Timeline: []domain.RawTimelineAction{
			{ActionID: "a3", ActionDate: ptr("2025-02-03")},
			{ActionID: "a1", ActionDate: ptr("2025-01-10")},
			{ActionID: "a0"},
			{ActionID: "a2", ActionDate: ptr("2025-01-10")},
		},
	})

	actions, err := store.ListTimelineActions(context.Background())

	require.NoError(t, err)
	ids := make([]string, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.ActionID)
	}
	assert.Equal(t, []string{"a0", "a1", "a2", "a3"}, ids)
}

func TestRawStore_Err(t *testing.T) {
	store := NewRawStore(RawTables{})
	store.Err = errors.New("disk gone")

	_, err := store.ListBillSources(context.Background())
	assert.EqualError(t, err, "disk gone")

	_, err = store.Overview(context.Background())
	assert.Error(t, err)
}

func TestRawStore_Overview(t *testing.T) {
	store := NewRawStore(RawTables{
		Bills: []domain.BillSource{{ArtifactID: "A1"}},
		Timeline: []domain.RawTimelineAction{
			{ActionID: "x", ActionType: ptr("REFERRED"), Category: ptr("referral-committee")},
			{ActionID: "y", ActionType: ptr("REFERRED"), Category: ptr("referral-committee")},
			{ActionID: "z", ActionType: ptr("ENACTED")},
		},
	})

	overview, err := store.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.TableCount{Table: "bill_artifacts", Rows: 1}, overview.Tables[0])
	assert.Equal(t, []domain.CodeCount{{Code: "ENACTED", Rows: 1}, {Code: "REFERRED", Rows: 2}}, overview.ActionTypes)
	assert.Equal(t, []domain.CodeCount{{Code: "", Rows: 1}, {Code: "referral-committee", Rows: 2}}, overview.Categories)
}

func TestRawStore_Close(t *testing.T) {
	store := NewRawStore(RawTables{})
	assert.False(t, store.Closed())
	require.NoError(t, store.Close())
	assert.True(t, store.Closed())
}
