package settler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// newMigrationTemplate is the body of a freshly created migration.
const newMigrationTemplate = "-- @DO\n\n\n-- @UNDO\n"

// New writes an empty migration named {next:03d}_{name}.sql into the set's directory on the OS
// filesystem, where next is one past the highest revision. The set itself is not modified and the
// new file is not validated.
func (s *MigrationSet) New(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/"+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	filename := fmt.Sprintf("%03d_%s.sql", s.HighestRevision()+1, name)
	path := filepath.Join(filepath.FromSlash(s.dir), filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create migration file: %q already exists", path)
		}
		return "", fmt.Errorf("failed to create migration file: %w", err)
	}
	if _, err := f.WriteString(newMigrationTemplate); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write migration file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close migration file: %w", err)
	}
	return path, nil
}

// CreateMigration loads the migrations in dir from the OS filesystem and writes the next empty
// migration. The existing set must be valid.
func CreateMigration(dir, name string) (string, error) {
	set, err := LoadMigrationSet(osFS{}, dir, ParserOptions{})
	if err != nil {
		return "", err
	}
	return set.New(name)
}
