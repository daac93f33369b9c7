package settler

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
)

// MigrationSet is the ordered, validated collection of migrations found in one directory. The
// revision of the migration at index i is always i.
type MigrationSet struct {
	dir        string
	migrations []*Migration
}

// LoadMigrationSet parses every file in dir, following symlinks, sorts the migrations by revision and checks
// that the revisions are exactly 0..N-1. Subdirectories and names listed in opts.Exclude are
// skipped. Any error aborts the load and no partial set is returned.
func LoadMigrationSet(fsys fs.FS, dir string, opts ParserOptions) (*MigrationSet, error) {
	if fsys == nil {
		fsys = osFS{}
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %q: %w", dir, err)
	}
	var migrations []*Migration
	for _, entry := range entries {
		if entry.IsDir() || slices.Contains(opts.Exclude, entry.Name()) {
			continue
		}
		name := path.Join(dir, entry.Name())
		// Symlinks are followed; one that resolves to a directory is skipped like a directory.
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := fs.Stat(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("failed to stat %q: %w", name, err)
			}
			if info.IsDir() {
				continue
			}
		}
		m, err := parseMigration(fsys, name, opts)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}
	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Revision < migrations[j].Revision
	})
	for i, m := range migrations {
		if m.Revision != int64(i) {
			return nil, &ContiguityError{
				Dir:      dir,
				Want:     int64(i),
				Got:      m.Revision,
				Filename: m.Filename,
			}
		}
	}
	return &MigrationSet{
		dir:        dir,
		migrations: migrations,
	}, nil
}

// Dir returns the directory the set was loaded from.
func (s *MigrationSet) Dir() string {
	return s.dir
}

// Len returns the number of migrations in the set.
func (s *MigrationSet) Len() int {
	return len(s.migrations)
}

// HighestRevision returns the revision of the last migration, or NoRevision if the set is empty.
func (s *MigrationSet) HighestRevision() int64 {
	return int64(len(s.migrations)) - 1
}

// Get returns the migration with the given revision.
func (s *MigrationSet) Get(revision int64) (*Migration, error) {
	if revision < 0 || revision >= int64(len(s.migrations)) {
		return nil, fmt.Errorf("%w: %d", ErrRevisionNotFound, revision)
	}
	return s.migrations[revision], nil
}

// Migrations returns a copy of the migrations in ascending revision order.
func (s *MigrationSet) Migrations() []*Migration {
	return slices.Clone(s.migrations)
}
