//go:build !no_mysql

package main

import (
	"github.com/go-sql-driver/mysql"
	_ "github.com/ziutek/mymysql/godrv"
)

// normalizeMySQLDSN parses the dsn used with the mysql driver and turns on multiStatements, so a
// migration section with several statements can be sent in one Exec. parseTime is set so that
// DATETIME values scan into time.Time.
func normalizeMySQLDSN(dsn string) (string, error) {
	config, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	config.ParseTime = true
	config.MultiStatements = true
	return config.FormatDSN(), nil
}
