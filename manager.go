package settler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pressly/settler/database"
	"go.uber.org/multierr"
)

// Manager applies and reverts the migrations in one directory against one database. The migration
// set is reloaded from disk on every call, so files added between calls are picked up.
//
// A Manager is not safe for concurrent use, and two managers pointed at the same database do not
// coordinate. See the lock package for a session lock callers can take around operations.
type Manager struct {
	db      *sql.DB
	dir     string
	store   database.Store
	tracker *RevisionTracker
	cfg     config
}

// NewManager returns a manager for the migrations in dir. Trailing path separators in dir are
// removed.
//
// The dialect selects the SQL used for the revision table. To use a custom [database.Store],
// pass [database.DialectCustom] and the WithStore option.
func NewManager(dialect database.Dialect, db *sql.DB, dir string, opts ...ManagerOption) (*Manager, error) {
	if db == nil {
		return nil, errors.New("db must not be nil")
	}
	if dir == "" {
		return nil, errors.New("dir must not be empty")
	}
	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		cfg.logger = &stdLogger{}
	}
	if cfg.fsys == nil {
		cfg.fsys = osFS{}
	}
	var store database.Store
	if cfg.store != nil {
		if dialect != database.DialectCustom {
			return nil, fmt.Errorf("dialect must be %q when using a custom store, got %q",
				database.DialectCustom, dialect)
		}
		if cfg.tableName != "" {
			return nil, errors.New("table name must not be set when using a custom store")
		}
		store = cfg.store
	} else {
		if dialect == database.DialectCustom {
			return nil, errors.New("custom dialect requires a store, see WithStore")
		}
		if cfg.tableName == "" {
			cfg.tableName = DefaultTablename
		}
		var err error
		store, err = database.NewStore(dialect, cfg.tableName)
		if err != nil {
			return nil, err
		}
	}
	return &Manager{
		db:      db,
		dir:     trimDir(dir),
		store:   store,
		tracker: newRevisionTracker(store, db, cfg.logger),
		cfg:     cfg,
	}, nil
}

// trimDir removes trailing separators. A directory made only of separators becomes the root.
func trimDir(dir string) string {
	trimmed := strings.TrimRight(dir, "/"+string(os.PathSeparator))
	if trimmed == "" {
		return dir[:1]
	}
	return trimmed
}

// Dir returns the migrations directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Tracker returns the tracker that records the applied revision.
func (m *Manager) Tracker() *RevisionTracker {
	return m.tracker
}

// ListMigrations loads and returns the migrations on disk in ascending revision order.
func (m *Manager) ListMigrations() ([]*Migration, error) {
	set, err := m.load()
	if err != nil {
		return nil, err
	}
	return set.Migrations(), nil
}

// CurrentRevision returns the revision recorded in the database, or NoRevision.
func (m *Manager) CurrentRevision(ctx context.Context) (int64, error) {
	return m.tracker.Get(ctx)
}

// Check reports the database revision and the highest migration revision, and logs both.
func (m *Manager) Check(ctx context.Context) (*CheckResult, error) {
	set, err := m.load()
	if err != nil {
		return nil, err
	}
	current, err := m.tracker.Get(ctx)
	if err != nil {
		return nil, err
	}
	res := &CheckResult{
		DatabaseRevision:   current,
		MigrationsRevision: set.HighestRevision(),
	}
	m.cfg.logger.Printf("%s", res)
	return res, nil
}

// Update applies the do SQL of every migration above the database revision, in ascending order,
// recording each revision as it completes.
//
// When a migration fails, the returned error is an *ExecError (see errors.As) listing the steps
// that completed. The database is left at the last completed revision, so running Update again
// resumes from the failed migration.
func (m *Manager) Update(ctx context.Context) ([]*MigrationResult, error) {
	set, err := m.load()
	if err != nil {
		return nil, err
	}
	current, err := m.tracker.Get(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]*MigrationResult, 0)
	for rev := current + 1; rev <= set.HighestRevision(); rev++ {
		mig, err := set.Get(rev)
		if err != nil {
			return results, err
		}
		res, err := m.run(ctx, mig, false)
		if err != nil {
			var execErr *ExecError
			if errors.As(err, &execErr) {
				execErr.Applied = results
			}
			return results, err
		}
		results = append(results, res)
	}
	m.cfg.logger.Printf("Up to date!")
	return results, nil
}

// Undo reverts the migration at the database revision and records the revision below it. At
// NoRevision there is nothing to revert and Undo returns nil without an error.
func (m *Manager) Undo(ctx context.Context) (*MigrationResult, error) {
	set, err := m.load()
	if err != nil {
		return nil, err
	}
	current, err := m.tracker.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == NoRevision {
		m.cfg.logger.Printf("Already at oldest revision")
		return nil, nil
	}
	mig, err := set.Get(current)
	if err != nil {
		return nil, fmt.Errorf("database is at revision %d, highest migration in %s is %d: %w",
			current, m.dir, set.HighestRevision(), err)
	}
	return m.run(ctx, mig, true)
}

// New creates an empty migration after the highest revision and returns its path.
func (m *Manager) New(name string) (string, error) {
	set, err := m.load()
	if err != nil {
		return "", err
	}
	path, err := set.New(name)
	if err != nil {
		return "", err
	}
	m.cfg.logger.Printf("Created %s", path)
	return path, nil
}

// Status returns every migration on disk with its state relative to the database revision.
func (m *Manager) Status(ctx context.Context) ([]*MigrationStatus, error) {
	set, err := m.load()
	if err != nil {
		return nil, err
	}
	current, err := m.tracker.Get(ctx)
	if err != nil {
		return nil, err
	}
	status := make([]*MigrationStatus, 0, set.Len())
	for _, mig := range set.Migrations() {
		state := StatePending
		if mig.Revision <= current {
			state = StateApplied
		}
		status = append(status, &MigrationStatus{
			Migration: mig,
			State:     state,
		})
	}
	return status, nil
}

func (m *Manager) load() (*MigrationSet, error) {
	return LoadMigrationSet(m.cfg.fsys, m.dir, m.cfg.parser)
}

// run applies one migration in one direction and records the resulting revision.
func (m *Manager) run(ctx context.Context, mig *Migration, reverse bool) (*MigrationResult, error) {
	target := mig.Revision
	if reverse {
		target = mig.Revision - 1
	}
	query := mig.SQL(reverse)
	m.cfg.logger.Printf("Running migration: %s\n%s", mig.Filename, query)

	result := &MigrationResult{
		Migration: mig,
		Reverse:   reverse,
	}
	start := time.Now()
	var err error
	if m.cfg.noTx {
		err = m.runNoTx(ctx, mig, reverse, target)
	} else {
		err = m.runTx(ctx, mig, reverse, target)
	}
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return nil, err
	}
	m.cfg.logger.Printf("At revision %d", target)
	if m.cfg.verbose {
		m.cfg.logger.Printf("%s", result)
	}
	return result, nil
}

func (m *Manager) runTx(ctx context.Context, mig *Migration, reverse bool, target int64) (retErr error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if retErr != nil {
			retErr = multierr.Append(retErr, tx.Rollback())
		}
	}()
	if err := execSQL(ctx, tx, mig, reverse); err != nil {
		return err
	}
	if err := m.tracker.setTx(ctx, tx, target); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", mig.Filename, err)
	}
	return nil
}

func (m *Manager) runNoTx(ctx context.Context, mig *Migration, reverse bool, target int64) error {
	if err := execSQL(ctx, m.db, mig, reverse); err != nil {
		return err
	}
	return m.tracker.setTx(ctx, m.db, target)
}

// execSQL sends the section to the database as a single statement batch. An empty section is
// skipped but the revision is still recorded.
func execSQL(ctx context.Context, db database.DBTxConn, mig *Migration, reverse bool) error {
	query := mig.SQL(reverse)
	if query == "" {
		return nil
	}
	if _, err := db.ExecContext(ctx, query); err != nil {
		return &ExecError{
			Migration: mig,
			Reverse:   reverse,
			Err:       err,
		}
	}
	return nil
}
