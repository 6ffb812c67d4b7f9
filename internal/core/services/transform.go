package services

import (
	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

// TransformBills normalises each artifact/snapshot pair into a Bill.
// Exactly one bill is produced per source row, in input order.
func TransformBills(sources []domain.BillSource) []domain.Bill {
	bills := make([]domain.Bill, 0, len(sources))
	for i := range sources {
		bills = append(bills, transformBill(&sources[i]))
	}
	return bills
}

func transformBill(src *domain.BillSource) domain.Bill {
	meta := domain.ParseBlob(src.BillMetadata)
	comp := domain.ParseBlob(src.ComputationMetadata)

	label := domain.NormaliseBillID(src.BillID)
	if meta.Truthy("bill_label") {
		if l := meta.String("bill_label"); l != nil {
			label = *l
		}
	}

	reportedOut := 0
	if comp.Truthy("reported_out") {
		reportedOut = 1
	}

	return domain.Bill{
		ArtifactID:        src.ArtifactID,
		BillID:            src.BillID,
		BillLabel:         label,
		Session:           src.Session,
		CommitteeID:       src.CommitteeID,
		Title:             meta.String("title"),
		BillURL:           meta.String("bill_url"),
		CreatedAt:         src.CreatedAt,
		ComputedState:     src.ComputedState,
		ComputedReason:    src.ComputedReason,
		Deadline60:        comp.String("deadline_60"),
		Deadline90:        comp.String("deadline_90"),
		EffectiveDeadline: comp.String("effective_deadline"),
		ReportedOut:       reportedOut,
		ReportedDate:      comp.String("reported_date"),
	}
}

// TransformTimeline attaches a label and category order to each action.
// Input order is kept; callers pass actions already ordered by date.
func TransformTimeline(raw []domain.RawTimelineAction) []domain.TimelineAction {
	actions := make([]domain.TimelineAction, 0, len(raw))
	for _, r := range raw {
		actions = append(actions, domain.TimelineAction{
			RawTimelineAction: r,
			ActionLabel:       domain.ActionLabelPtr(r.ActionType),
			CategoryOrder:     domain.CategoryOrderPtr(r.Category),
		})
	}
	return actions
}

// NoticeGaps maps each artifact to the notice_gap_days of its snapshot.
// Artifacts whose snapshot lacks the field map to nil. When an artifact has
// several snapshots the last one read wins.
func NoticeGaps(snapshots []domain.SnapshotMetadata) map[string]*float64 {
	gaps := make(map[string]*float64, len(snapshots))
	for _, s := range snapshots {
		gaps[s.ArtifactID] = domain.ParseBlob(s.ComputationMetadata).Number("notice_gap_days")
	}
	return gaps
}

// TransformHearings attaches the owning bill's notice gap to each hearing.
func TransformHearings(raw []domain.RawHearing, gaps map[string]*float64) []domain.HearingRecord {
	hearings := make([]domain.HearingRecord, 0, len(raw))
	for _, r := range raw {
		var gap *float64
		if r.ArtifactID != nil {
			gap = gaps[*r.ArtifactID]
		}
		hearings = append(hearings, domain.HearingRecord{
			RawHearing:    r,
			NoticeGapDays: gap,
		})
	}
	return hearings
}
