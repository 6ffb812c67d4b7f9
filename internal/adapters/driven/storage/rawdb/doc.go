// Package rawdb reads the raw bill tables written by the upstream pipeline.
//
// The same queries run against three database/sql drivers:
//
//   - duckdb: the analytical store the pipeline produces (github.com/duckdb/duckdb-go/v2)
//   - postgres: a Postgres mirror of the raw tables (github.com/lib/pq)
//   - sqlite: a SQLite copy of the raw tables (modernc.org/sqlite)
//
// Dates, timestamps and JSON columns are cast to text in SQL so every driver
// hands back the same string form. Stores are opened read-only where the
// driver allows it.
package rawdb
