// Package schema embeds the SQL that defines an archive.
package schema

import "embed"

// FS contains the versioned table definitions, applied in file name order.
//
//go:embed *.up.sql
var FS embed.FS

// Indexes creates the lookup indexes. It runs after every table is filled.
//
//go:embed indexes.sql
var Indexes string
