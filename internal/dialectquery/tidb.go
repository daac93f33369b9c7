package dialectquery

// Tidb speaks the MySQL protocol and shares its revision table SQL.
type Tidb struct {
	Mysql
}

var _ Querier = (*Tidb)(nil)
