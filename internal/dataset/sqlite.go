package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	// Pure-Go SQLite driver, so uploaded database files open without cgo.
	_ "modernc.org/sqlite"

	"github.com/brijr/wp-poster/internal/models"
)

// quoteIdent quotes a SQLite identifier: wrap in double quotes and double
// any embedded ones.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SQLiteSource wraps an uploaded single-file SQLite database.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path read-only.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Tables lists the user tables in the database catalog, sorted by name.
func (s *SQLiteSource) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadTable reads all rows of one table verbatim, in the table's declared
// column order, rendering every value as a string. The name is checked
// against the catalog first; table names cannot be bound as placeholders.
func (s *SQLiteSource) LoadTable(ctx context.Context, table string) (*models.Dataset, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range tables {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("sqlite: no such table: %s", table)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: columns of %s: %w", table, err)
	}

	var out []models.Row
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning row of %s: %w", table, err)
		}
		row := make(models.Row, len(columns))
		for i, col := range columns {
			if values[i] == nil {
				row[col] = ""
				continue
			}
			row[col] = cast.ToString(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: reading %s: %w", table, err)
	}

	return &models.Dataset{
		Source:  "sqlite:" + table,
		Columns: columns,
		Rows:    out,
	}, nil
}
