package domain

// DocumentOrigin names the raw table a document row came from.
type DocumentOrigin string

const (
	// OriginDocumentArtifacts rows are linked to an artifact and win key collisions.
	OriginDocumentArtifacts DocumentOrigin = "document_artifacts"

	// OriginDocumentIndex rows carry only a bill code and fill gaps.
	OriginDocumentIndex DocumentOrigin = "document_index"
)

// Document is a filed document (bill text, amendment, ...) in the shared
// twelve-column layout of the archive's documents table.
type Document struct {
	DocumentID string

	// ArtifactID is nil for rows from the document index.
	ArtifactID *string

	BillID       *string
	DocumentType *string
	SourceURL    *string
	Preview      *string
	FullText     *string
	ContentHash  *string
	ParserModule *string

	// ParserVersion is nil for rows from the document index.
	ParserVersion *string

	Confidence  *float64
	NeedsReview *bool
}

// ReconcileStats counts the outcome of merging the two document sources.
type ReconcileStats struct {
	Primary          int `yaml:"primary"`
	SecondaryAdded   int `yaml:"secondary_added"`
	SecondarySkipped int `yaml:"secondary_skipped"`
}

// Total is the number of document rows in the merged set.
func (s ReconcileStats) Total() int {
	return s.Primary + s.SecondaryAdded
}

// MergeDocuments merges primary and secondary document rows into one set
// keyed by DocumentID. Primary rows are kept in order; a secondary row is
// appended only when its id has not been seen.
func MergeDocuments(primary, secondary []Document) ([]Document, ReconcileStats) {
	merged := make([]Document, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	var stats ReconcileStats

	for _, doc := range primary {
		if _, dup := seen[doc.DocumentID]; dup {
			// first occurrence wins, like the unique key would
			continue
		}
		seen[doc.DocumentID] = struct{}{}
		merged = append(merged, doc)
		stats.Primary++
	}

	for _, doc := range secondary {
		if _, dup := seen[doc.DocumentID]; dup {
			stats.SecondarySkipped++
			continue
		}
		seen[doc.DocumentID] = struct{}{}
		merged = append(merged, doc)
		stats.SecondaryAdded++
	}

	return merged, stats
}
