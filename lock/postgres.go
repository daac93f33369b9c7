package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// NewPostgresSessionLocker returns a SessionLocker that uses a Postgres session level advisory
// lock. The lock is released when the connection closes, even if SessionUnlock is never called.
//
// The lock is retried with a constant backoff; see WithLockTimeout and WithUnlockTimeout.
func NewPostgresSessionLocker(opts ...SessionLockerOption) (SessionLocker, error) {
	cfg := sessionLockerConfig{
		lockID: DefaultLockID,
		lockProbe: probe{
			periodSeconds:    time.Duration(DefaultLockPeriod) * time.Second,
			failureThreshold: DefaultLockFailureThreshold,
		},
		unlockProbe: probe{
			periodSeconds:    time.Duration(DefaultLockPeriod) * time.Second,
			failureThreshold: DefaultUnlockFailureThreshold,
		},
	}
	for _, opt := range opts {
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}
	return &postgresSessionLocker{
		lockID: cfg.lockID,
		retryLock: retry.WithMaxRetries(
			cfg.lockProbe.failureThreshold,
			retry.NewConstant(cfg.lockProbe.periodSeconds),
		),
		retryUnlock: retry.WithMaxRetries(
			cfg.unlockProbe.failureThreshold,
			retry.NewConstant(cfg.unlockProbe.periodSeconds),
		),
	}, nil
}

type postgresSessionLocker struct {
	lockID      int64
	retryLock   retry.Backoff
	retryUnlock retry.Backoff
}

var _ SessionLocker = (*postgresSessionLocker)(nil)

func (l *postgresSessionLocker) SessionLock(ctx context.Context, conn *sql.Conn) error {
	return retry.Do(ctx, l.retryLock, func(ctx context.Context) error {
		row := conn.QueryRowContext(ctx, tryAdvisoryLockSession(l.lockID))
		var locked bool
		if err := row.Scan(&locked); err != nil {
			return fmt.Errorf("failed to execute pg_try_advisory_lock: %w", err)
		}
		if locked {
			return nil
		}
		// Another session holds the lock. Keep retrying until it is released or the retries run
		// out.
		return retry.RetryableError(errors.New("failed to acquire lock"))
	})
}

func (l *postgresSessionLocker) SessionUnlock(ctx context.Context, conn *sql.Conn) error {
	return retry.Do(ctx, l.retryUnlock, func(ctx context.Context) error {
		var unlocked bool
		row := conn.QueryRowContext(ctx, advisoryUnlockSession(l.lockID))
		if err := row.Scan(&unlocked); err != nil {
			return fmt.Errorf("failed to execute pg_advisory_unlock: %w", err)
		}
		if unlocked {
			return nil
		}
		// pg_advisory_unlock returns false when this session does not hold the lock. Postgres
		// also releases every session lock when the connection ends.
		return retry.RetryableError(errors.New("failed to unlock session"))
	})
}

func tryAdvisoryLockSession(id int64) string {
	q := `SELECT pg_try_advisory_lock(%d)`
	return fmt.Sprintf(q, id)
}

func advisoryUnlockSession(id int64) string {
	q := `SELECT pg_advisory_unlock(%d)`
	return fmt.Sprintf(q, id)
}
