package dialectquery

import "fmt"

// Ydb keys the single row by a constant id and writes it with UPSERT, which replaces the row in
// one statement.
type Ydb struct{}

var _ Querier = (*Ydb)(nil)

func (c *Ydb) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		id Int32,
		revision Int64,
		PRIMARY KEY(id)
	)`
	return fmt.Sprintf(q, tableName)
}

// TableExists is not supported; YDB exposes its scheme through the SDK rather than SQL.
func (c *Ydb) TableExists(tableName string) string {
	return ""
}

func (c *Ydb) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s WHERE id = 0`
	return fmt.Sprintf(q, tableName)
}

func (c *Ydb) UpdateRevision(tableName string) string {
	q := `UPSERT INTO %s (id, revision) VALUES (0, $1)`
	return fmt.Sprintf(q, tableName)
}

func (c *Ydb) InsertRevision(tableName string) string {
	return c.UpdateRevision(tableName)
}
