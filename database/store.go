package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/settler/internal/dialectquery"
)

var (
	// ErrRevisionNotFound must be returned by [Store.GetRevision] when the revision table exists
	// but holds no row.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrNotSupported must be returned by [Store.TableExists] when the database has no way to
	// check table existence. Callers fall back to probing the table.
	ErrNotSupported = errors.New("not supported")
)

// Store persists the applied revision in a single-row table. By defining a Store interface, we can
// support multiple databases with consistent functionality.
//
// Each database dialect requires a specific implementation of this interface. A dialect represents
// a set of SQL statements specific to a particular database system.
type Store interface {
	// Tablename is the revision table name. Must not be empty.
	Tablename() string

	// CreateTable creates the revision table, empty.
	CreateTable(ctx context.Context, db DBTxConn) error

	// TableExists reports whether the revision table exists. If the database does not support
	// this check, return [ErrNotSupported].
	TableExists(ctx context.Context, db DBTxConn) (bool, error)

	// GetRevision returns the stored revision. If the table exists but holds no row, this method
	// must return [ErrRevisionNotFound].
	GetRevision(ctx context.Context, db DBTxConn) (int64, error)

	// SetRevision records revision, updating the stored row in place or inserting it if the table
	// is empty. A failed write leaves the previous revision readable.
	SetRevision(ctx context.Context, db DBTxConn, revision int64) error
}

// NewStore returns a new [Store] backed by the given dialect.
func NewStore(dialect Dialect, tablename string) (Store, error) {
	if tablename == "" {
		return nil, errors.New("tablename must not be empty")
	}
	if dialect == "" {
		return nil, errors.New("dialect must not be empty")
	}
	if dialect == DialectCustom {
		return nil, errors.New("dialect must not be custom")
	}
	querier, err := lookupQuerier(dialect)
	if err != nil {
		return nil, err
	}
	return &store{
		tablename: tablename,
		querier:   querier,
	}, nil
}

type store struct {
	tablename string
	querier   dialectquery.Querier
}

var _ Store = (*store)(nil)

func (s *store) Tablename() string {
	return s.tablename
}

func (s *store) CreateTable(ctx context.Context, db DBTxConn) error {
	q := s.querier.CreateTable(s.tablename)
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to create revision table %q: %w", s.tablename, err)
	}
	return nil
}

func (s *store) TableExists(ctx context.Context, db DBTxConn) (bool, error) {
	q := s.querier.TableExists(s.tablename)
	if q == "" {
		return false, ErrNotSupported
	}
	var exists bool
	if err := db.QueryRowContext(ctx, q).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check if table %q exists: %w", s.tablename, err)
	}
	return exists, nil
}

func (s *store) GetRevision(ctx context.Context, db DBTxConn) (int64, error) {
	q := s.querier.GetRevision(s.tablename)
	var revision int64
	if err := db.QueryRowContext(ctx, q).Scan(&revision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrRevisionNotFound
		}
		return 0, fmt.Errorf("failed to get revision: %w", err)
	}
	return revision, nil
}

func (s *store) SetRevision(ctx context.Context, db DBTxConn, revision int64) error {
	q := s.querier.UpdateRevision(s.tablename)
	res, err := db.ExecContext(ctx, q, revision)
	if err != nil {
		return fmt.Errorf("failed to update revision to %d: %w", revision, err)
	}
	// MySQL counts changed rather than matched rows, and some drivers cannot count at all, so
	// zero is confirmed with a read before the first row is inserted.
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = s.GetRevision(ctx, db)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrRevisionNotFound) {
		return err
	}
	q = s.querier.InsertRevision(s.tablename)
	if _, err := db.ExecContext(ctx, q, revision); err != nil {
		return fmt.Errorf("failed to insert revision %d: %w", revision, err)
	}
	return nil
}
