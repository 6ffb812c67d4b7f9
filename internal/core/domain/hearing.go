package domain

// RawHearing is a hearing record as stored in the raw store.
type RawHearing struct {
	RecordID             string
	ArtifactID           *string
	HearingID            *string
	HearingDate          *string
	HearingURL           *string
	AnnouncementDate     *string
	ScheduledHearingDate *string
}

// HearingRecord is a hearing with the notice-gap taken from its bill's
// computation metadata. NoticeGapDays is nil when the bill has no snapshot
// or the snapshot carries no numeric gap. Fractional gaps are kept.
type HearingRecord struct {
	RawHearing

	NoticeGapDays *float64
}
