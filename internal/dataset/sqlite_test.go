package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, bio TEXT)`,
		`CREATE TABLE zz_extra (k TEXT)`,
		`INSERT INTO people (id, name, bio) VALUES (1, 'Ada', 'Mathematician')`,
		`INSERT INTO people (id, name, bio) VALUES (2, 'Grace', NULL)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteTables(t *testing.T) {
	path := writeTestDB(t)
	ctx := context.Background()

	src, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer src.Close()

	tables, err := src.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"people", "zz_extra"}, tables)
}

func TestSQLiteLoadTable(t *testing.T) {
	path := writeTestDB(t)
	ctx := context.Background()

	src, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer src.Close()

	ds, err := src.LoadTable(ctx, "people")
	require.NoError(t, err)

	assert.Equal(t, "sqlite:people", ds.Source)
	assert.Equal(t, []string{"id", "name", "bio"}, ds.Columns, "declared column order")
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "1", ds.Rows[0]["id"])
	assert.Equal(t, "Ada", ds.Rows[0]["name"])
	assert.Equal(t, "", ds.Rows[1]["bio"], "NULL renders as empty string")
}

func TestSQLiteLoadTable_QuoteInName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.db")
	ctx := context.Background()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE "odd""name" (k TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "odd""name" (k) VALUES ('v')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer src.Close()

	ds, err := src.LoadTable(ctx, `odd"name`)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "v", ds.Rows[0]["k"])
}

func TestSQLiteLoadTable_Unknown(t *testing.T) {
	path := writeTestDB(t)
	ctx := context.Background()

	src, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.LoadTable(ctx, "no_such_table")
	assert.Error(t, err)
}
