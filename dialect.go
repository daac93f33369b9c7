package settler

import (
	"github.com/pressly/settler/database"
)

// Dialect is the type of database dialect. It is an alias for [database.Dialect].
type Dialect = database.Dialect

const (
	DialectCustom     Dialect = database.DialectCustom
	DialectClickHouse Dialect = database.DialectClickHouse
	DialectMSSQL      Dialect = database.DialectMSSQL
	DialectMySQL      Dialect = database.DialectMySQL
	DialectPostgres   Dialect = database.DialectPostgres
	DialectRedshift   Dialect = database.DialectRedshift
	DialectSQLite3    Dialect = database.DialectSQLite3
	DialectSpanner    Dialect = database.DialectSpanner
	DialectTiDB       Dialect = database.DialectTiDB
	DialectTurso      Dialect = database.DialectTurso
	DialectVertica    Dialect = database.DialectVertica
	DialectYdB        Dialect = database.DialectYdB
)
