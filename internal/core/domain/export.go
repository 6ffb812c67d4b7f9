package domain

import "time"

// ExportStats summarises one archive rebuild.
type ExportStats struct {
	RunID       string        `yaml:"run_id"`
	StartedAt   time.Time     `yaml:"started_at"`
	Duration    time.Duration `yaml:"duration"`
	ArchivePath string        `yaml:"archive_path"`

	Bills           int            `yaml:"bills"`
	TimelineActions int            `yaml:"timeline_actions"`
	HearingRecords  int            `yaml:"hearing_records"`
	Documents       ReconcileStats `yaml:"documents"`
	SearchDocuments int            `yaml:"search_documents"`
}

// TableCount is the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// CodeCount is the number of rows carrying one code value.
type CodeCount struct {
	Code string
	Rows int64
}

// SourceOverview describes the raw store without transforming it.
type SourceOverview struct {
	Tables      []TableCount
	ActionTypes []CodeCount
	Categories  []CodeCount
}
