package dialectquery

import "fmt"

type Clickhouse struct{}

var _ Querier = (*Clickhouse)(nil)

// CreateTable leaves the table without a sorting key so that revision can be updated in place.
func (c *Clickhouse) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		revision Int64
	)
	ENGINE = MergeTree
	ORDER BY tuple()`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) TableExists(tableName string) string {
	q := `SELECT count() > 0 FROM system.tables WHERE database = currentDatabase() AND name = '%s'`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

// UpdateRevision waits for the mutation to finish so that the following read sees it.
func (c *Clickhouse) UpdateRevision(tableName string) string {
	q := `ALTER TABLE %s UPDATE revision = $1 WHERE 1 = 1 SETTINGS mutations_sync = 2`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (revision) VALUES ($1)`
	return fmt.Sprintf(q, tableName)
}
