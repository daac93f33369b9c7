package dialectquery

// Turso is libSQL, a fork of SQLite, and shares its revision table SQL.
type Turso struct {
	Sqlite3
}

var _ Querier = (*Turso)(nil)
