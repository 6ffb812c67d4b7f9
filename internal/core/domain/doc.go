// Package domain defines the core entities of the bill archive exporter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BillSource, Bill: an artifact with its computed-state snapshot, and its normalised row
//   - RawTimelineAction, TimelineAction: a legislative event before and after enrichment
//   - RawHearing, HearingRecord: a hearing notice and its notice-gap
//   - Document: a filed document from either document source
//   - SearchDocument: the denormalised full-text record for one bill
//   - Blob: total access to JSON-encoded metadata columns
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
