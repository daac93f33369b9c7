package dialectquery

import "fmt"

type Redshift struct{}

var _ Querier = (*Redshift)(nil)

func (r *Redshift) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		revision integer NOT NULL,
		PRIMARY KEY(revision)
	)`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) TableExists(tableName string) string {
	schemaName, tableName := parseTableIdentifier(tableName)
	if schemaName != "" {
		q := `SELECT EXISTS ( SELECT 1 FROM pg_tables WHERE schemaname = '%s' AND tablename = '%s' )`
		return fmt.Sprintf(q, schemaName, tableName)
	}
	q := `SELECT EXISTS ( SELECT 1 FROM pg_tables WHERE schemaname = current_schema() AND tablename = '%s' )`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s ORDER BY revision DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = $1`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES ($1)`
	return fmt.Sprintf(q, tableName)
}
