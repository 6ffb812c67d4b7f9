// Package sqlite writes the archive database consumed by the web front end.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Every run creates the file from scratch: an existing
// archive is deleted, the embedded schema in schema/ is applied in version
// order, each table is filled inside its own transaction, and the lookup
// indexes are built last.
//
// # Tables
//
//   - bills, timeline_actions, hearing_records, documents
//   - search_index: FTS5, unicode61 tokenizer with diacritics removed
//   - archive_meta: key/value details of the run that built the file
package sqlite
