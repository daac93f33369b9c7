package dialectquery

import "fmt"

type Sqlite3 struct{}

var _ Querier = (*Sqlite3)(nil)

func (s *Sqlite3) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		revision INTEGER NOT NULL PRIMARY KEY
	)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) TableExists(tableName string) string {
	q := `SELECT EXISTS ( SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = '%s' )`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s ORDER BY revision DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = ?`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES (?)`
	return fmt.Sprintf(q, tableName)
}
