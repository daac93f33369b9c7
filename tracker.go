package settler

import (
	"context"
	"errors"
	"fmt"

	"github.com/pressly/settler/database"
)

// RevisionTracker reads and writes the revision recorded in the database. The revision table is
// created on first use.
type RevisionTracker struct {
	store  database.Store
	db     database.DBTxConn
	logger Logger
}

// NewRevisionTracker returns a tracker that persists the revision through store, using db for
// every query. Progress is logged through the standard library logger.
func NewRevisionTracker(store database.Store, db database.DBTxConn) *RevisionTracker {
	return newRevisionTracker(store, db, &stdLogger{})
}

func newRevisionTracker(store database.Store, db database.DBTxConn, logger Logger) *RevisionTracker {
	return &RevisionTracker{
		store:  store,
		db:     db,
		logger: logger,
	}
}

// Get returns the recorded revision, or NoRevision if the table is new or empty.
func (t *RevisionTracker) Get(ctx context.Context) (int64, error) {
	if err := t.ensureTable(ctx); err != nil {
		return 0, err
	}
	rev, err := t.store.GetRevision(ctx, t.db)
	if err != nil {
		if errors.Is(err, database.ErrRevisionNotFound) {
			return NoRevision, nil
		}
		return 0, err
	}
	return rev, nil
}

// Set records rev as the applied revision, replacing any previous value, and returns it.
func (t *RevisionTracker) Set(ctx context.Context, rev int64) (int64, error) {
	if err := t.ensureTable(ctx); err != nil {
		return 0, err
	}
	if err := t.store.SetRevision(ctx, t.db, rev); err != nil {
		return 0, err
	}
	t.logger.Printf("At revision %d", rev)
	return rev, nil
}

// setTx writes rev on tx without checking for the table and without logging. The table must
// already exist; callers log once tx has committed.
func (t *RevisionTracker) setTx(ctx context.Context, tx database.DBTxConn, rev int64) error {
	return t.store.SetRevision(ctx, tx, rev)
}

func (t *RevisionTracker) ensureTable(ctx context.Context) error {
	exists, err := t.store.TableExists(ctx, t.db)
	if err != nil {
		if !errors.Is(err, database.ErrNotSupported) {
			return err
		}
		// No catalog query, so a successful read is the only evidence the table exists.
		_, err := t.store.GetRevision(ctx, t.db)
		exists = err == nil || errors.Is(err, database.ErrRevisionNotFound)
	}
	if exists {
		return nil
	}
	if err := t.store.CreateTable(ctx, t.db); err != nil {
		return fmt.Errorf("failed to provision revision table: %w", err)
	}
	return nil
}
