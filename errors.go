package settler

import (
	"errors"
	"fmt"
)

var (
	// ErrRevisionUnparsable is returned when the filename prefix before the first '_' is not an
	// integer.
	ErrRevisionUnparsable = errors.New("revision unparsable")

	// ErrRevisionNegative is returned when the filename prefix parses to a number less than zero.
	ErrRevisionNegative = errors.New("revision must not be negative")

	// ErrSeparatorMissing is returned when a migration file does not contain exactly one @UNDO
	// marker.
	ErrSeparatorMissing = errors.New("failed to separate do/undo sections")

	// ErrSectionTooShort is returned when a stripped do or undo section is shorter than the
	// configured minimum length.
	ErrSectionTooShort = errors.New("section too short")

	// ErrNonContiguousRevisions is returned when the sorted migration files do not number 0..N-1
	// without gaps or duplicates.
	ErrNonContiguousRevisions = errors.New("non-contiguous revisions")

	// ErrExecutionFailure is returned when the database reports an error while applying the do
	// or undo SQL of a migration.
	ErrExecutionFailure = errors.New("migration execution failed")

	// ErrRevisionNotFound is returned when a revision is not part of the migration set.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrInvalidName is returned when a new migration name is empty or contains a path
	// separator.
	ErrInvalidName = errors.New("invalid migration name")
)

// ParseError is returned when a single migration file cannot be parsed. Err wraps one of
// ErrRevisionUnparsable, ErrRevisionNegative, ErrSeparatorMissing or ErrSectionTooShort, or the
// underlying read error.
type ParseError struct {
	// Path is the path of the file inside the filesystem it was loaded from.
	Path string
	// Filename is the base name of the file.
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad migration %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ContiguityError is returned when the migration at a sorted position does not carry the
// revision expected for that position.
type ContiguityError struct {
	Dir string
	// Want is the revision expected at the position, Got the revision found there.
	Want, Got int64
	Filename  string
}

func (e *ContiguityError) Error() string {
	return fmt.Sprintf("%v in %s: expected revision %d, found %d (%s)",
		ErrNonContiguousRevisions, e.Dir, e.Want, e.Got, e.Filename)
}

func (e *ContiguityError) Is(target error) bool {
	return target == ErrNonContiguousRevisions
}

// ExecError is returned when a migration fails to apply, but some migrations in the same call may
// already have been applied and recorded.
type ExecError struct {
	// Migration is the migration that failed. Cannot be nil.
	Migration *Migration
	// Reverse is true when the undo SQL was being applied.
	Reverse bool
	// Applied are the steps that completed before the failure. May be empty.
	Applied []*MigrationResult
	// Err is the error reported by the database.
	Err error
}

func (e *ExecError) Error() string {
	direction := "do"
	if e.Reverse {
		direction = "undo"
	}
	return fmt.Sprintf("%v (%s %s, revision %d): %v",
		ErrExecutionFailure, direction, e.Migration.Filename, e.Migration.Revision, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func (e *ExecError) Is(target error) bool {
	return target == ErrExecutionFailure
}
