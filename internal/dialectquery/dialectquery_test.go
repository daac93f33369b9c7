package dialectquery_test

import (
	"testing"

	"github.com/pressly/settler/internal/dialectquery"
	"github.com/stretchr/testify/require"
)

func TestInsertRevisionPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		querier dialectquery.Querier
		want    string
	}{
		{"clickhouse", &dialectquery.Clickhouse{}, `INSERT INTO migration (revision) VALUES ($1)`},
		{"mysql", &dialectquery.Mysql{}, `INSERT INTO migration (revision) VALUES (?)`},
		{"postgres", &dialectquery.Postgres{}, `INSERT INTO migration (revision) VALUES ($1)`},
		{"redshift", &dialectquery.Redshift{}, `INSERT INTO migration (revision) VALUES ($1)`},
		{"spanner", &dialectquery.Spanner{}, `INSERT INTO migration (id, revision) VALUES (0, ?)`},
		{"sqlite", &dialectquery.Sqlite3{}, `INSERT INTO migration (revision) VALUES (?)`},
		{"sqlserver", &dialectquery.Sqlserver{}, `INSERT INTO migration (revision) VALUES (@p1)`},
		{"tidb", &dialectquery.Tidb{}, `INSERT INTO migration (revision) VALUES (?)`},
		{"turso", &dialectquery.Turso{}, `INSERT INTO migration (revision) VALUES (?)`},
		{"vertica", &dialectquery.Vertica{}, `INSERT INTO migration (revision) VALUES (?)`},
		{"ydb", &dialectquery.Ydb{}, `UPSERT INTO migration (id, revision) VALUES (0, $1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.querier.InsertRevision("migration"))
			require.Contains(t, tt.querier.GetRevision("migration"), "revision")
			require.Contains(t, tt.querier.UpdateRevision("migration"), "revision = ")
		})
	}
}

func TestUpdateRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		querier dialectquery.Querier
		want    string
	}{
		{"postgres", &dialectquery.Postgres{}, `UPDATE migration SET revision = $1`},
		{"mysql", &dialectquery.Mysql{}, `UPDATE migration SET revision = ?`},
		{"sqlite", &dialectquery.Sqlite3{}, `UPDATE migration SET revision = ?`},
		{"sqlserver", &dialectquery.Sqlserver{}, `UPDATE migration SET revision = @p1`},
		{"spanner", &dialectquery.Spanner{}, `UPDATE migration SET revision = ? WHERE id = 0`},
		{"clickhouse", &dialectquery.Clickhouse{}, `ALTER TABLE migration UPDATE revision = $1 WHERE 1 = 1 SETTINGS mutations_sync = 2`},
		{"ydb", &dialectquery.Ydb{}, `UPSERT INTO migration (id, revision) VALUES (0, $1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.querier.UpdateRevision("migration"))
		})
	}
	// The revision must not be part of a key that cannot be updated.
	require.Contains(t, (&dialectquery.Clickhouse{}).CreateTable("migration"), "ORDER BY tuple()")
	require.Contains(t, (&dialectquery.Spanner{}).CreateTable("migration"), "PRIMARY KEY (id)")
}

func TestTableExists(t *testing.T) {
	t.Parallel()

	t.Run("postgres_schema", func(t *testing.T) {
		got := (&dialectquery.Postgres{}).TableExists("audit.migration")
		require.Contains(t, got, "schemaname = 'audit'")
		require.Contains(t, got, "tablename = 'migration'")
	})
	t.Run("postgres_current_schema", func(t *testing.T) {
		got := (&dialectquery.Postgres{}).TableExists("migration")
		require.Contains(t, got, "current_schema()")
		require.Contains(t, got, "tablename = 'migration'")
	})
	t.Run("sqlite", func(t *testing.T) {
		got := (&dialectquery.Sqlite3{}).TableExists("migration")
		require.Equal(t, `SELECT EXISTS ( SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'migration' )`, got)
	})
	t.Run("ydb_unsupported", func(t *testing.T) {
		require.Empty(t, (&dialectquery.Ydb{}).TableExists("migration"))
	})
}
