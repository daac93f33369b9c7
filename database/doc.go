// Package database provides the Store that persists the applied revision, and an implementation for
// each supported database dialect.
//
// The revision table holds a single integer column named revision and at most one row. A missing
// row means no migration has been applied.
//
// It's possible to implement a custom Store for a database that is not supported. To do so,
// implement the [Store] interface and pass it to settler.NewManager with the WithStore option and
// [DialectCustom].
package database
