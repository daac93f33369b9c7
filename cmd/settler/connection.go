package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/settler/database"
)

// dialectToDriverMapping maps dialects to the driver names registered by the driver_*.go files,
// which are conditionally compiled based on build tags. For example, for postgres we use
// github.com/jackc/pgx/v5/stdlib, and the driver name is "pgx". For sqlite3 we use
// modernc.org/sqlite, and the driver name is "sqlite".
var dialectToDriverMapping = map[database.Dialect]string{
	database.DialectPostgres:   "pgx",
	database.DialectRedshift:   "pgx",
	database.DialectMySQL:      "mysql",
	database.DialectTiDB:       "mysql",
	database.DialectSQLite3:    "sqlite",
	database.DialectMSSQL:      "sqlserver",
	database.DialectClickHouse: "clickhouse",
	database.DialectVertica:    "vertica",
	database.DialectTurso:      "libsql",
	database.DialectSpanner:    "spanner",
}

// connectors open dialects that need more than sql.Open. Driver files register them in init.
var connectors = map[database.Dialect]func(ctx context.Context, dsn string) (*sql.DB, error){}

func resolveDriverName(driver string, dialect database.Dialect) (string, error) {
	if strings.EqualFold(strings.TrimSpace(driver), "mymysql") {
		return "mymysql", nil
	}
	driverName, ok := dialectToDriverMapping[dialect]
	if !ok {
		return "", fmt.Errorf("no driver for dialect %q in this build", dialect)
	}
	return driverName, nil
}

func openDB(ctx context.Context, driver string, dialect database.Dialect, dbstring string) (*sql.DB, error) {
	if connect, ok := connectors[dialect]; ok {
		return connect(ctx, dbstring)
	}
	driverName, err := resolveDriverName(driver, dialect)
	if err != nil {
		return nil, err
	}
	if driverName == "mysql" {
		dbstring, err = normalizeMySQLDSN(dbstring)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize MySQL connection string: %w", err)
		}
	}
	db, err := sql.Open(driverName, dbstring)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return db, nil
}
