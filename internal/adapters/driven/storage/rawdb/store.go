package rawdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	_ "github.com/lib/pq"              // Postgres driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

// Ensure Store and Factory implement the interfaces.
var (
	_ driven.RawStore        = (*Store)(nil)
	_ driven.RawStoreFactory = (*Factory)(nil)
)

// rawTables are the source tables, in the order Overview reports them.
var rawTables = []string{
	"bill_artifacts",
	"artifact_snapshots",
	"timeline_actions",
	"hearing_records",
	"document_artifacts",
	"document_index",
}

// Store reads raw tables through database/sql.
type Store struct {
	db *sql.DB
}

// Open connects to the raw store described by settings and checks that it
// is reachable.
func Open(ctx context.Context, settings domain.SourceSettings) (*Store, error) {
	driverName, dsn, err := driverDSN(settings)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s source: %w", settings.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s source: %w", settings.Driver, err)
	}

	return &Store{db: db}, nil
}

// driverDSN maps settings to a database/sql driver name and a read-only DSN.
func driverDSN(settings domain.SourceSettings) (string, string, error) {
	if settings.DSN == "" {
		return "", "", fmt.Errorf("%w: source dsn is empty", domain.ErrInvalidInput)
	}

	switch settings.Driver {
	case domain.SourceDriverDuckDB:
		return "duckdb", withParam(settings.DSN, "access_mode", "READ_ONLY"), nil
	case domain.SourceDriverPostgres:
		return "postgres", settings.DSN, nil
	case domain.SourceDriverSQLite:
		return "sqlite", withParam(settings.DSN, "_pragma", "query_only(1)"), nil
	default:
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, settings.Driver)
	}
}

// withParam appends a query parameter to a file DSN.
func withParam(dsn, key, value string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + url.QueryEscape(value)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Overview counts rows per raw table and per action code.
func (s *Store) Overview(ctx context.Context) (*domain.SourceOverview, error) {
	overview := &domain.SourceOverview{}

	for _, table := range rawTables {
		var n int64
		// table names come from the fixed list above
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		overview.Tables = append(overview.Tables, domain.TableCount{Table: table, Rows: n})
	}

	var err error
	if overview.ActionTypes, err = s.codeCounts(ctx, "action_type"); err != nil {
		return nil, err
	}
	if overview.Categories, err = s.codeCounts(ctx, "category"); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *Store) codeCounts(ctx context.Context, column string) ([]domain.CodeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(`+column+`, ''), COUNT(*)
		FROM timeline_actions
		GROUP BY 1
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("counting %s values: %w", column, err)
	}
	defer rows.Close()

	var counts []domain.CodeCount
	for rows.Next() {
		var c domain.CodeCount
		if err := rows.Scan(&c.Code, &c.Rows); err != nil {
			return nil, fmt.Errorf("scanning %s count: %w", column, err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Factory opens raw stores.
type Factory struct{}

// NewFactory returns a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open opens a raw store for settings.
func (f *Factory) Open(ctx context.Context, settings domain.SourceSettings) (driven.RawStore, error) {
	return Open(ctx, settings)
}
