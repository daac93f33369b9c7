package lock

import (
	"hash/crc64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultLockID(t *testing.T) {
	t.Parallel()
	want := crc64.Checksum([]byte("settler"), crc64.MakeTable(crc64.ECMA))
	require.EqualValues(t, want, DefaultLockID)
}

func TestSessionLockerOptions(t *testing.T) {
	t.Parallel()
	t.Run("defaults", func(t *testing.T) {
		locker, err := NewPostgresSessionLocker()
		require.NoError(t, err)
		pg, ok := locker.(*postgresSessionLocker)
		require.True(t, ok)
		require.Equal(t, DefaultLockID, pg.lockID)
	})
	t.Run("custom", func(t *testing.T) {
		locker, err := NewPostgresSessionLocker(
			WithLockID(123456789),
			WithLockTimeout(1, 4),
			WithUnlockTimeout(2, 3),
		)
		require.NoError(t, err)
		pg, ok := locker.(*postgresSessionLocker)
		require.True(t, ok)
		require.EqualValues(t, 123456789, pg.lockID)

		// Four retries one second apart, then the backoff stops.
		for range 4 {
			d, stop := pg.retryLock.Next()
			require.False(t, stop)
			require.Equal(t, time.Second, d)
		}
		_, stop := pg.retryLock.Next()
		require.True(t, stop)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := NewPostgresSessionLocker(WithLockTimeout(0, 10))
		require.Error(t, err)
		_, err = NewPostgresSessionLocker(WithLockTimeout(5, 0))
		require.Error(t, err)
		_, err = NewPostgresSessionLocker(WithUnlockTimeout(0, 10))
		require.Error(t, err)
		_, err = NewPostgresSessionLocker(WithUnlockTimeout(5, 0))
		require.Error(t, err)
	})
}

func TestAdvisoryQueries(t *testing.T) {
	t.Parallel()
	require.Equal(t, "SELECT pg_try_advisory_lock(42)", tryAdvisoryLockSession(42))
	require.Equal(t, "SELECT pg_advisory_unlock(42)", advisoryUnlockSession(42))
}
