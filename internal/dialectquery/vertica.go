package dialectquery

import "fmt"

type Vertica struct{}

var _ Querier = (*Vertica)(nil)

func (v *Vertica) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		revision INTEGER NOT NULL,
		PRIMARY KEY(revision)
	)`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) TableExists(tableName string) string {
	schemaName, tableName := parseTableIdentifier(tableName)
	if schemaName != "" {
		q := `SELECT COUNT(*) > 0 FROM v_catalog.tables WHERE table_schema = '%s' AND table_name = '%s'`
		return fmt.Sprintf(q, schemaName, tableName)
	}
	q := `SELECT COUNT(*) > 0 FROM v_catalog.tables WHERE table_name = '%s'`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s ORDER BY revision DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = ?`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES (?)`
	return fmt.Sprintf(q, tableName)
}
