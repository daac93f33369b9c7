package dialectquery

import "fmt"

type Mysql struct{}

var _ Querier = (*Mysql)(nil)

func (m *Mysql) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		revision integer NOT NULL,
		PRIMARY KEY(revision)
	)`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) TableExists(tableName string) string {
	q := `SELECT EXISTS ( SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = '%s' )`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s ORDER BY revision DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = ?`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES (?)`
	return fmt.Sprintf(q, tableName)
}
