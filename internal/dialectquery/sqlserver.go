package dialectquery

import "fmt"

type Sqlserver struct{}

var _ Querier = (*Sqlserver)(nil)

func (s *Sqlserver) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		revision INT NOT NULL PRIMARY KEY
	)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) TableExists(tableName string) string {
	q := `SELECT CASE WHEN OBJECT_ID('%s', 'U') IS NOT NULL THEN 1 ELSE 0 END`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) GetRevision(tableName string) string {
	q := `SELECT TOP 1 revision FROM %s ORDER BY revision DESC`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = @p1`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES (@p1)`
	return fmt.Sprintf(q, tableName)
}
