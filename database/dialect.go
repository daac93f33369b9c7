package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/settler/internal/dialectquery"
)

// Dialect is the type of database dialect.
type Dialect string

const (
	DialectClickHouse Dialect = "clickhouse"
	DialectMSSQL      Dialect = "mssql"
	DialectMySQL      Dialect = "mysql"
	DialectPostgres   Dialect = "postgres"
	DialectRedshift   Dialect = "redshift"
	DialectSQLite3    Dialect = "sqlite3"
	DialectSpanner    Dialect = "spanner"
	DialectTiDB       Dialect = "tidb"
	DialectTurso      Dialect = "turso"
	DialectVertica    Dialect = "vertica"
	DialectYdB        Dialect = "ydb"

	// DialectCustom is a special dialect that allows users to provide their own [Store]
	// implementation when constructing a manager.
	DialectCustom Dialect = "custom"
)

// ErrUnknownDialect is returned by [ParseDialect] for a name that is not a known dialect or alias.
var ErrUnknownDialect = errors.New("unknown dialect")

// ParseDialect maps a dialect name, or a driver name commonly used for it, to a [Dialect]. Matching
// is case-insensitive.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "pgx":
		return DialectPostgres, nil
	case "mysql", "mymysql":
		return DialectMySQL, nil
	case "sqlite3", "sqlite":
		return DialectSQLite3, nil
	case "mssql", "azuresql", "sqlserver":
		return DialectMSSQL, nil
	case "redshift":
		return DialectRedshift, nil
	case "tidb":
		return DialectTiDB, nil
	case "clickhouse":
		return DialectClickHouse, nil
	case "vertica":
		return DialectVertica, nil
	case "ydb":
		return DialectYdB, nil
	case "turso", "libsql":
		return DialectTurso, nil
	case "spanner":
		return DialectSpanner, nil
	}
	return "", ErrUnknownDialect
}

func lookupQuerier(dialect Dialect) (dialectquery.Querier, error) {
	lookup := map[Dialect]dialectquery.Querier{
		DialectClickHouse: &dialectquery.Clickhouse{},
		DialectMSSQL:      &dialectquery.Sqlserver{},
		DialectMySQL:      &dialectquery.Mysql{},
		DialectPostgres:   &dialectquery.Postgres{},
		DialectRedshift:   &dialectquery.Redshift{},
		DialectSQLite3:    &dialectquery.Sqlite3{},
		DialectSpanner:    &dialectquery.Spanner{},
		DialectTiDB:       &dialectquery.Tidb{},
		DialectTurso:      &dialectquery.Turso{},
		DialectVertica:    &dialectquery.Vertica{},
		DialectYdB:        &dialectquery.Ydb{},
	}
	querier, ok := lookup[dialect]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	return querier, nil
}
