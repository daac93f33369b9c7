package dialectquery

import (
	"fmt"
	"strings"
)

type Postgres struct{}

var _ Querier = (*Postgres)(nil)

func (p *Postgres) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		revision integer NOT NULL,
		PRIMARY KEY(revision)
	)`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) TableExists(tableName string) string {
	schemaName, tableName := parseTableIdentifier(tableName)
	if schemaName != "" {
		q := `SELECT EXISTS ( SELECT 1 FROM pg_tables WHERE schemaname = '%s' AND tablename = '%s' )`
		return fmt.Sprintf(q, schemaName, tableName)
	}
	q := `SELECT EXISTS ( SELECT 1 FROM pg_tables WHERE (current_schema() IS NULL OR schemaname = current_schema()) AND tablename = '%s' )`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s ORDER BY revision DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = $1`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES ($1)`
	return fmt.Sprintf(q, tableName)
}

// parseTableIdentifier splits "schema.table" into its parts. The schema is empty when the name is
// not qualified.
func parseTableIdentifier(name string) (schema, table string) {
	schema, table, found := strings.Cut(name, ".")
	if !found {
		return "", name
	}
	return schema, table
}
