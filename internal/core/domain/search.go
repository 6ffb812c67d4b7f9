package domain

// Default caps applied while building search documents.
const (
	DefaultActionTextCap   = 4000
	DefaultDocumentTextCap = 4000
	DefaultPreviewCap      = 500
)

// SearchDocument is the denormalised full-text record for one bill.
// Every field is a string; absent values are empty, never null.
type SearchDocument struct {
	ArtifactID    string
	BillID        string
	BillLabel     string
	Title         string
	CommitteeID   string
	Session       string
	ComputedState string

	// ActionText is the bill's timeline raw text, space-joined and capped.
	ActionText string

	// DocumentText is the bill's document previews, each capped, then
	// space-joined and capped again.
	DocumentText string
}

// SearchCaps bounds the aggregated text fields of a SearchDocument.
// Caps count Unicode code points.
type SearchCaps struct {
	ActionText   int `yaml:"action_text"`
	DocumentText int `yaml:"document_text"`
	Preview      int `yaml:"preview"`
}

// DefaultSearchCaps returns the caps the archive consumer expects.
func DefaultSearchCaps() SearchCaps {
	return SearchCaps{
		ActionText:   DefaultActionTextCap,
		DocumentText: DefaultDocumentTextCap,
		Preview:      DefaultPreviewCap,
	}
}

// IsValid returns true if every cap is positive.
func (c SearchCaps) IsValid() bool {
	return c.ActionText > 0 && c.DocumentText > 0 && c.Preview > 0
}

// Truncate returns the first n code points of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		// byte length bounds rune count
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
