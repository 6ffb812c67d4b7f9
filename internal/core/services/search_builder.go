package services

import (
	"strings"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// searchAccumulator collects one bill's text streams before capping.
type searchAccumulator struct {
	doc         domain.SearchDocument
	actionTexts []string
	docTexts    []string
}

// BuildSearchDocuments assembles one search document per bill, in bill
// order. Action raw text and document previews are attributed through the
// artifact id; rows for unknown bills and documents without an artifact
// are ignored. Each preview is capped before joining, and both joined
// streams are capped independently.
func BuildSearchDocuments(
	bills []domain.Bill,
	actions []domain.TimelineAction,
	documents []domain.Document,
	caps domain.SearchCaps,
) []domain.SearchDocument {
	order := make([]string, 0, len(bills))
	acc := make(map[string]*searchAccumulator, len(bills))

	for i := range bills {
		b := &bills[i]
		if _, dup := acc[b.ArtifactID]; !dup {
			order = append(order, b.ArtifactID)
		}
		// a repeated artifact id resets its accumulator, later row wins
		acc[b.ArtifactID] = &searchAccumulator{
			doc: domain.SearchDocument{
				ArtifactID:    b.ArtifactID,
				BillID:        b.BillID,
				BillLabel:     b.BillLabel,
				Title:         deref(b.Title),
				CommitteeID:   deref(b.CommitteeID),
				Session:       deref(b.Session),
				ComputedState: deref(b.ComputedState),
			},
		}
	}

	for i := range actions {
		a := &actions[i]
		if a.ArtifactID == nil {
			continue
		}
		if entry, ok := acc[*a.ArtifactID]; ok {
			entry.actionTexts = append(entry.actionTexts, deref(a.RawText))
		}
	}

	for i := range documents {
		d := &documents[i]
		if d.ArtifactID == nil {
			continue
		}
		if entry, ok := acc[*d.ArtifactID]; ok {
			entry.docTexts = append(entry.docTexts, domain.Truncate(deref(d.Preview), caps.Preview))
		}
	}

	out := make([]domain.SearchDocument, 0, len(order))
	for _, id := range order {
		entry := acc[id]
		doc := entry.doc
		doc.ActionText = domain.Truncate(strings.Join(entry.actionTexts, " "), caps.ActionText)
		doc.DocumentText = domain.Truncate(strings.Join(entry.docTexts, " "), caps.DocumentText)
		out = append(out, doc)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
