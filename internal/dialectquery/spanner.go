package dialectquery

import "fmt"

// Spanner does not allow a primary key column to be updated, so the single row is keyed by a
// constant id.
type Spanner struct{}

var _ Querier = (*Spanner)(nil)

func (s *Spanner) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		id INT64 NOT NULL,
		revision INT64 NOT NULL
	) PRIMARY KEY (id)`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) TableExists(tableName string) string {
	q := `SELECT COUNT(*) > 0 FROM information_schema.tables WHERE table_schema = '' AND table_name = '%s'`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) GetRevision(tableName string) string {
	q := `SELECT revision FROM %s WHERE id = 0`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) UpdateRevision(tableName string) string {
	q := `UPDATE %s SET revision = ? WHERE id = 0`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) InsertRevision(tableName string) string {
	q := `INSERT INTO %s (id, revision) VALUES (0, ?)`
	return fmt.Sprintf(q, tableName)
}
