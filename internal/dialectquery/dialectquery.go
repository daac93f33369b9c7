// Package dialectquery holds the SQL each supported database uses to read and write the revision
// table.
package dialectquery

// Querier returns dialect specific SQL for the revision table. The table holds zero or one row
// with an integer column, revision. Databases that cannot update a key column also carry a
// constant key.
type Querier interface {
	// CreateTable returns the SQL query string to create the revision table.
	CreateTable(tableName string) string

	// TableExists returns a query that yields a single boolean telling whether the revision table
	// exists. Returns an empty string if the database has no catalog query for this, in which
	// case callers probe the table by reading from it.
	TableExists(tableName string) string

	// GetRevision returns the SQL query string to read the stored revision. The query returns no
	// rows when nothing has been recorded.
	GetRevision(tableName string) string

	// UpdateRevision returns the SQL query string to overwrite the stored revision in place. The
	// revision is the only argument. It matches no row when nothing has been recorded.
	UpdateRevision(tableName string) string

	// InsertRevision returns the SQL query string to insert a revision. The revision is the only
	// argument.
	InsertRevision(tableName string) string
}
