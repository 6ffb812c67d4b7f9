package domain

// RawTimelineAction is a timeline action as stored in the raw store.
type RawTimelineAction struct {
	ActionID   string
	ArtifactID *string
	ActionDate *string
	Branch     *string

	// ActionType is the raw action-type code, e.g. "REFERRED".
	ActionType *string

	// Category is the raw category code, e.g. "referral-committee".
	Category *string

	RawText       *string
	ExtractedData *string
	Confidence    *float64
}

// TimelineAction is a timeline action enriched with its display label and
// category sort order.
type TimelineAction struct {
	RawTimelineAction

	ActionLabel   *string
	CategoryOrder int
}
