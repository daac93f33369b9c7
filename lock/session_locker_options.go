package lock

import (
	"errors"
	"time"
)

const (
	// DefaultLockID is the id used to lock the database for migrations. It is a crc64 hash of the
	// string "settler".
	//
	// crc64.Checksum([]byte("settler"), crc64.MakeTable(crc64.ECMA))
	DefaultLockID int64 = 9069561335663776918

	// Default retry behavior: try every 5 seconds, 60 times for the lock (5 minutes) and 12 times
	// for the unlock (1 minute).
	DefaultLockPeriod             uint64 = 5
	DefaultLockFailureThreshold   uint64 = 60
	DefaultUnlockFailureThreshold uint64 = 12
)

// SessionLockerOption is used to configure a SessionLocker.
type SessionLockerOption interface {
	apply(*sessionLockerConfig) error
}

// WithLockID sets the lock ID to use when locking the database.
//
// If WithLockID is not called, the DefaultLockID is used.
func WithLockID(lockID int64) SessionLockerOption {
	return sessionLockerConfigFunc(func(c *sessionLockerConfig) error {
		c.lockID = lockID
		return nil
	})
}

// WithLockTimeout sets how often, in seconds, the lock is retried and how many failed attempts
// are allowed before giving up.
func WithLockTimeout(period, failureThreshold uint64) SessionLockerOption {
	return sessionLockerConfigFunc(func(c *sessionLockerConfig) error {
		if period < 1 {
			return errors.New("period must be greater than 0, minimum is 1")
		}
		if failureThreshold < 1 {
			return errors.New("failure threshold must be greater than 0, minimum is 1")
		}
		c.lockProbe = probe{
			periodSeconds:    time.Duration(period) * time.Second,
			failureThreshold: failureThreshold,
		}
		return nil
	})
}

// WithUnlockTimeout sets how often, in seconds, the unlock is retried and how many failed
// attempts are allowed before giving up.
func WithUnlockTimeout(period, failureThreshold uint64) SessionLockerOption {
	return sessionLockerConfigFunc(func(c *sessionLockerConfig) error {
		if period < 1 {
			return errors.New("period must be greater than 0, minimum is 1")
		}
		if failureThreshold < 1 {
			return errors.New("failure threshold must be greater than 0, minimum is 1")
		}
		c.unlockProbe = probe{
			periodSeconds:    time.Duration(period) * time.Second,
			failureThreshold: failureThreshold,
		}
		return nil
	})
}

type sessionLockerConfig struct {
	lockID      int64
	lockProbe   probe
	unlockProbe probe
}

// probe is used to configure how often and how many times to retry a lock or unlock operation.
type probe struct {
	periodSeconds    time.Duration
	failureThreshold uint64
}

var _ SessionLockerOption = (sessionLockerConfigFunc)(nil)

type sessionLockerConfigFunc func(*sessionLockerConfig) error

func (f sessionLockerConfigFunc) apply(cfg *sessionLockerConfig) error {
	return f(cfg)
}
