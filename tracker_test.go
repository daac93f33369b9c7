package settler_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pressly/settler"
	"github.com/pressly/settler/database"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestRevisionTracker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newDB(t)
	store, err := database.NewStore(database.DialectSQLite3, "migration")
	require.NoError(t, err)
	tracker := settler.NewRevisionTracker(store, db)

	require.False(t, tableExists(t, db, "migration"))
	rev, err := tracker.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, settler.NoRevision, rev)
	require.True(t, tableExists(t, db, "migration"))

	for _, want := range []int64{0, 5, 2} {
		got, err := tracker.Set(ctx, want)
		require.NoError(t, err)
		require.Equal(t, want, got)
		rev, err := tracker.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, want, rev)
	}
	require.Equal(t, 1, countRows(t, db, "migration"))

	// Back to nothing applied.
	_, err = tracker.Set(ctx, settler.NoRevision)
	require.NoError(t, err)
	rev, err = tracker.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, settler.NoRevision, rev)
}

func TestRevisionTrackerSetCreatesTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newDB(t)
	store, err := database.NewStore(database.DialectSQLite3, "revision_counter")
	require.NoError(t, err)
	tracker := settler.NewRevisionTracker(store, db)

	_, err = tracker.Set(ctx, 3)
	require.NoError(t, err)
	require.True(t, tableExists(t, db, "revision_counter"))
	rev, err := tracker.Get(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, rev)
}

func TestRevisionTrackerFailedWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newDB(t)
	store, err := database.NewStore(database.DialectSQLite3, "migration")
	require.NoError(t, err)
	tracker := settler.NewRevisionTracker(store, db)

	_, err = tracker.Set(ctx, 0)
	require.NoError(t, err)
	// Once a row exists the revision is updated in place and never inserted.
	failWrite(t, db, "migration", "INSERT", 1)
	_, err = tracker.Set(ctx, 1)
	require.NoError(t, err)

	failWrite(t, db, "migration", "UPDATE", 2)
	_, err = tracker.Set(ctx, 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
	rev, err := tracker.Get(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, rev)
	require.Equal(t, 1, countRows(t, db, "migration"))
}

// probeStore behaves like a database without a catalog query for table existence.
type probeStore struct {
	database.Store
	creates int
}

func (s *probeStore) TableExists(context.Context, database.DBTxConn) (bool, error) {
	return false, database.ErrNotSupported
}

func (s *probeStore) CreateTable(ctx context.Context, db database.DBTxConn) error {
	s.creates++
	return s.Store.CreateTable(ctx, db)
}

func TestRevisionTrackerProbe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newDB(t)
	inner, err := database.NewStore(database.DialectSQLite3, "migration")
	require.NoError(t, err)
	store := &probeStore{Store: inner}
	tracker := settler.NewRevisionTracker(store, db)

	rev, err := tracker.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, settler.NoRevision, rev)
	require.Equal(t, 1, store.creates)

	// Once the read succeeds the table is not created again.
	_, err = tracker.Set(ctx, 1)
	require.NoError(t, err)
	rev, err = tracker.Get(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, rev)
	require.Equal(t, 1, store.creates)
}

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "settler.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`, table).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// failWrite makes every op (INSERT or UPDATE) that writes rev into table fail.
func failWrite(t *testing.T, db *sql.DB, table, op string, rev int64) {
	t.Helper()
	q := fmt.Sprintf(`CREATE TRIGGER fail_%[2]s_%[3]d BEFORE %[2]s ON %[1]s
		WHEN NEW.revision = %[3]d
		BEGIN SELECT RAISE(ABORT, 'boom'); END`, table, op, rev)
	_, err := db.Exec(q)
	require.NoError(t, err)
}
