package domain

// BillSource is one bill artifact left-joined to its computed-state
// snapshot. The snapshot fields are nil when no snapshot exists yet.
type BillSource struct {
	// ArtifactID is the stable identifier and the join key for every child table.
	ArtifactID string

	// BillID is the raw bill code, e.g. "H491".
	BillID string

	Session     *string
	CommitteeID *string
	CreatedAt   *string

	// BillMetadata is JSON carrying title, bill_label and bill_url.
	BillMetadata *string

	ComputedState  *string
	ComputedReason *string

	// ComputationMetadata is JSON carrying deadline_60, deadline_90,
	// effective_deadline, reported_out, reported_date and notice_gap_days.
	ComputationMetadata *string
}

// Bill is the normalised bill row written to the archive.
type Bill struct {
	ArtifactID string
	BillID     string

	// BillLabel is the canonical display label, e.g. "H.491".
	BillLabel string

	Session        *string
	CommitteeID    *string
	Title          *string
	BillURL        *string
	CreatedAt      *string
	ComputedState  *string
	ComputedReason *string

	Deadline60        *string
	Deadline90        *string
	EffectiveDeadline *string

	// ReportedOut is 1 when the committee has reported the bill out, else 0.
	ReportedOut  int
	ReportedDate *string
}

// SnapshotMetadata pairs an artifact with its computation metadata blob.
type SnapshotMetadata struct {
	ArtifactID          string
	ComputationMetadata *string
}
