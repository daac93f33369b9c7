//go:build no_mysql

package main

func normalizeMySQLDSN(dsn string) (string, error) {
	return dsn, nil
}
