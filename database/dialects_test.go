package database_test

import (
	"testing"

	"github.com/pressly/settler/database"
	"github.com/stretchr/testify/require"
)

func TestParseDialectCoverage(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		alias       string
		wantDialect database.Dialect
		wantErr     error
	}{
		{alias: "postgres", wantDialect: database.DialectPostgres},
		{alias: "pgx", wantDialect: database.DialectPostgres},
		{alias: "mysql", wantDialect: database.DialectMySQL},
		{alias: "mymysql", wantDialect: database.DialectMySQL},
		{alias: "sqlite", wantDialect: database.DialectSQLite3},
		{alias: "sqlite3", wantDialect: database.DialectSQLite3},
		{alias: "SQLite3", wantDialect: database.DialectSQLite3},
		{alias: "mssql", wantDialect: database.DialectMSSQL},
		{alias: "azuresql", wantDialect: database.DialectMSSQL},
		{alias: "sqlserver", wantDialect: database.DialectMSSQL},
		{alias: "redshift", wantDialect: database.DialectRedshift},
		{alias: "tidb", wantDialect: database.DialectTiDB},
		{alias: "clickhouse", wantDialect: database.DialectClickHouse},
		{alias: "vertica", wantDialect: database.DialectVertica},
		{alias: "ydb", wantDialect: database.DialectYdB},
		{alias: "turso", wantDialect: database.DialectTurso},
		{alias: "libsql", wantDialect: database.DialectTurso},
		{alias: "spanner", wantDialect: database.DialectSpanner},
		{alias: "bad", wantErr: database.ErrUnknownDialect},
		{alias: "", wantErr: database.ErrUnknownDialect},
	} {
		t.Run(tc.alias, func(t *testing.T) {
			d, err := database.ParseDialect(tc.alias)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantDialect, d)
		})
	}
}
