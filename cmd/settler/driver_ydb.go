//go:build !no_ydb

package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/settler/database"
	"github.com/ydb-platform/ydb-go-sdk/v3"
)

func init() {
	connectors[database.DialectYdB] = openYDB
}

// openYDB opens a database/sql handle over the native driver. Scripting mode lets a migration
// section run DDL, and numeric args map the revision placeholder $1.
func openYDB(ctx context.Context, dsn string) (*sql.DB, error) {
	nativeDriver, err := ydb.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ydb driver: %w", err)
	}
	connector, err := ydb.Connector(nativeDriver,
		ydb.WithDefaultQueryMode(ydb.ScriptingQueryMode),
		ydb.WithFakeTx(ydb.ScriptingQueryMode),
		ydb.WithAutoDeclare(),
		ydb.WithNumericArgs(),
	)
	if err != nil {
		_ = nativeDriver.Close(ctx)
		return nil, fmt.Errorf("failed to create ydb connector: %w", err)
	}
	return sql.OpenDB(connector), nil
}
