package settler

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/settler/database"
)

// DefaultTablename is the revision table used when WithTableName is not given.
const DefaultTablename = "migration"

// ManagerOption is a configuration option for a Manager.
type ManagerOption interface {
	apply(*config) error
}

// WithLogger sets the logger the manager reports progress through.
//
// If WithLogger is not called, output goes to the standard library logger.
func WithLogger(l Logger) ManagerOption {
	return configFunc(func(c *config) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = l
		return nil
	})
}

// WithVerbose logs a timing line after each migration step.
func WithVerbose(b bool) ManagerOption {
	return configFunc(func(c *config) error {
		c.verbose = b
		return nil
	})
}

// WithTableName sets the name of the table that records the applied revision.
//
// If WithTableName is not called, the default value is "migration".
func WithTableName(name string) ManagerOption {
	return configFunc(func(c *config) error {
		if c.tableName != "" {
			return fmt.Errorf("table already set to %q", c.tableName)
		}
		if name == "" {
			return errors.New("table must not be empty")
		}
		c.tableName = name
		return nil
	})
}

// WithStore uses a custom store to persist the revision. The manager must be constructed with
// [database.DialectCustom].
func WithStore(store database.Store) ManagerOption {
	return configFunc(func(c *config) error {
		if c.store != nil {
			return errors.New("store already set")
		}
		if store == nil {
			return errors.New("store must not be nil")
		}
		if store.Tablename() == "" {
			return errors.New("store implementation must set the table name")
		}
		c.store = store
		return nil
	})
}

// WithFilesystem reads migrations from fsys instead of the OS filesystem. New still writes to the
// OS filesystem.
func WithFilesystem(fsys fs.FS) ManagerOption {
	return configFunc(func(c *config) error {
		if fsys == nil {
			return errors.New("filesystem must not be nil")
		}
		c.fsys = fsys
		return nil
	})
}

// WithMinSectionLength rejects migrations whose do or undo section, after comments and whitespace
// are removed, is shorter than n. Zero disables the check.
func WithMinSectionLength(n int) ManagerOption {
	return configFunc(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("minimum section length must not be negative: %d", n)
		}
		c.parser.MinSectionLength = n
		return nil
	})
}

// WithEnvSubstitution expands environment variable references in migration SQL.
func WithEnvSubstitution(b bool) ManagerOption {
	return configFunc(func(c *config) error {
		c.parser.EnvSubstitution = b
		return nil
	})
}

// WithExclude ignores files with the given base names in the migrations directory.
func WithExclude(names ...string) ManagerOption {
	return configFunc(func(c *config) error {
		c.parser.Exclude = append(c.parser.Exclude, names...)
		return nil
	})
}

// WithTransactions controls whether each migration step and its revision write share a
// transaction. Disable it for databases that cannot run DDL inside a transaction.
//
// If WithTransactions is not called, transactions are enabled.
func WithTransactions(b bool) ManagerOption {
	return configFunc(func(c *config) error {
		c.noTx = !b
		return nil
	})
}

type config struct {
	logger    Logger
	verbose   bool
	tableName string
	store     database.Store
	fsys      fs.FS
	parser    ParserOptions
	noTx      bool
}

type configFunc func(*config) error

func (f configFunc) apply(cfg *config) error {
	return f(cfg)
}
