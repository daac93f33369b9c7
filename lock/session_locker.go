// Package lock provides a session level lock that callers can hold around settler operations so
// that only one process migrates a database at a time. The settler manager itself never locks.
package lock

import (
	"context"
	"database/sql"
)

// SessionLocker is the interface to lock and unlock the database for the duration of a session. The
// session is defined as the duration of a single connection and both methods must be called on the
// same connection.
type SessionLocker interface {
	SessionLock(ctx context.Context, conn *sql.Conn) error
	SessionUnlock(ctx context.Context, conn *sql.Conn) error
}
