package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

func action(artifact, text string) domain.TimelineAction {
	return domain.TimelineAction{RawTimelineAction: domain.RawTimelineAction{ArtifactID: sp(artifact), RawText: sp(text)}}
}

func primaryDoc(id, artifact, preview string) domain.Document {
	return domain.Document{DocumentID: id, ArtifactID: sp(artifact), Preview: sp(preview)}
}

func TestBuildSearchDocuments_OnePerBill(t *testing.T) {
	bills := []domain.Bill{
		{ArtifactID: "A1", BillID: "H491", BillLabel: "H.491", Title: sp("Parks"), Session: sp("194"), ComputedState: sp("REPORTED")},
		{ArtifactID: "A2", BillID: "S12", BillLabel: "S.12"},
	}

	docs := BuildSearchDocuments(bills, nil, nil, domain.DefaultSearchCaps())

	require.Len(t, docs, 2)
	assert.Equal(t, "A1", docs[0].ArtifactID)
	assert.Equal(t, "H.491", docs[0].BillLabel)
	assert.Equal(t, "Parks", docs[0].Title)
	assert.Equal(t, "194", docs[0].Session)
	assert.Equal(t, "REPORTED", docs[0].ComputedState)
	assert.Equal(t, "A2", docs[1].ArtifactID)
	assert.Empty(t, docs[1].Title)
	assert.Empty(t, docs[1].ActionText)
	assert.Empty(t, docs[1].DocumentText)
}

func TestBuildSearchDocuments_JoinsTextInOrder(t *testing.T) {
	bills := []domain.Bill{{ArtifactID: "A1", BillID: "H491", BillLabel: "H.491"}}
	actions := []domain.TimelineAction{
		action("A1", "Referred to the committee on Parks"),
		action("A1", "Reported favorably"),
	}
	documents := []domain.Document{
		primaryDoc("D1", "A1", "Bill text preview"),
		primaryDoc("D2", "A1", "Hearing notice"),
	}

	docs := BuildSearchDocuments(bills, actions, documents, domain.DefaultSearchCaps())

	require.Len(t, docs, 1)
	assert.Equal(t, "Referred to the committee on Parks Reported favorably", docs[0].ActionText)
	assert.Equal(t, "Bill text preview Hearing notice", docs[0].DocumentText)
}

func TestBuildSearchDocuments_NilRawTextJoinsAsEmpty(t *testing.T) {
	bills := []domain.Bill{{ArtifactID: "A1", BillID: "H1"}}
	actions := []domain.TimelineAction{
		action("A1", "first"),
		{RawTimelineAction: domain.RawTimelineAction{ArtifactID: sp("A1")}},
		action("A1", "third"),
	}

	docs := BuildSearchDocuments(bills, actions, nil, domain.DefaultSearchCaps())

	assert.Equal(t, "first  third", docs[0].ActionText)
}

func TestBuildSearchDocuments_CapsActionText(t *testing.T) {
	bills := []domain.Bill{{ArtifactID: "A1", BillID: "H1"}}
	long := strings.Repeat("x", 3000)
	actions := []domain.TimelineAction{action("A1", long), action("A1", long)}

	docs := BuildSearchDocuments(bills, actions, nil, domain.DefaultSearchCaps())

	full := long + " " + long
	assert.Equal(t, domain.DefaultActionTextCap, utf8.RuneCountInString(docs[0].ActionText))
	assert.Equal(t, full[:domain.DefaultActionTextCap], docs[0].ActionText)
}

func TestBuildSearchDocuments_CapsEachPreview(t *testing.T) {
	bills := []domain.Bill{{ArtifactID: "A1", BillID: "H1"}}
	documents := []domain.Document{
		primaryDoc("D1", "A1", strings.Repeat("a", 800)),
		primaryDoc("D2", "A1", "tail"),
	}

	docs := BuildSearchDocuments(bills, nil, documents, domain.DefaultSearchCaps())

	assert.Equal(t, strings.Repeat("a", domain.DefaultPreviewCap)+" tail", docs[0].DocumentText)
}

func TestBuildSearchDocuments_CapsByCodePoint(t *testing.T) {
	bills := []domain.Bill{{ArtifactID: "A1", BillID: "H1"}}
	actions := []domain.TimelineAction{action("A1", strings.Repeat("é", 10))}
	caps := domain.SearchCaps{ActionText: 4, DocumentText: 4, Preview: 4}

	docs := BuildSearchDocuments(bills, actions, nil, caps)

	assert.Equal(t, "éééé", docs[0].ActionText)
}

func TestBuildSearchDocuments_SkipsUnknownAndUnlinked(t *testing.T) {
	bills := []domain.Bill{{ArtifactID: "A1", BillID: "H1"}}
	actions := []domain.TimelineAction{
		action("A-unknown", "orphan action"),
		{RawTimelineAction: domain.RawTimelineAction{RawText: sp("no artifact")}},
	}
	documents := []domain.Document{
		primaryDoc("D1", "A-unknown", "orphan doc"),
		{DocumentID: "D2", BillID: sp("H1"), Preview: sp("secondary preview")},
	}

	docs := BuildSearchDocuments(bills, actions, documents, domain.DefaultSearchCaps())

	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].ActionText)
	assert.Empty(t, docs[0].DocumentText)
}

func TestBuildSearchDocuments_NoBills(t *testing.T) {
	docs := BuildSearchDocuments(nil, []domain.TimelineAction{action("A1", "x")}, nil, domain.DefaultSearchCaps())

	assert.Empty(t, docs)
}
