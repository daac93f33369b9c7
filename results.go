package settler

import (
	"fmt"
	"strconv"
	"time"
)

// CheckResult compares the revision recorded in the database with the highest revision on disk.
type CheckResult struct {
	DatabaseRevision   int64
	MigrationsRevision int64
}

// UpToDate reports whether the database is at or past the highest migration.
func (c *CheckResult) UpToDate() bool {
	return c.DatabaseRevision >= c.MigrationsRevision
}

func (c *CheckResult) String() string {
	return fmt.Sprintf("Database Revision: %s\nMigrations Revision: %s",
		formatRevision(c.DatabaseRevision), formatRevision(c.MigrationsRevision))
}

func formatRevision(rev int64) string {
	if rev == NoRevision {
		return "None"
	}
	return strconv.FormatInt(rev, 10)
}

// MigrationResult is the outcome of applying one migration in one direction.
type MigrationResult struct {
	Migration *Migration
	// Reverse is true when the undo SQL was applied.
	Reverse  bool
	Duration time.Duration
	// Error is any error that occurred while running the migration.
	Error error
}

func (r *MigrationResult) String() string {
	state := "OK"
	if r.Error != nil {
		state = "FAILED"
	}
	direction := "do"
	if r.Reverse {
		direction = "undo"
	}
	return fmt.Sprintf("%-6s %-4s %s (%s)", state, direction, r.Migration.Filename, truncateDuration(r.Duration))
}

// State represents the state of a migration.
type State string

const (
	// StatePending is a migration above the database revision.
	StatePending State = "pending"
	// StateApplied is a migration at or below the database revision.
	StateApplied State = "applied"
)

// MigrationStatus represents the status of a single migration.
type MigrationStatus struct {
	Migration *Migration
	State     State
}

func truncateDuration(d time.Duration) time.Duration {
	for _, v := range []time.Duration{
		time.Second,
		time.Millisecond,
		time.Microsecond,
	} {
		if d > v {
			return d.Round(v / time.Duration(100))
		}
	}
	return d
}
