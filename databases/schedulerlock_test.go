package databases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/databases/memdb"
)

func TestSchedulerLock(t *testing.T) {
	ctx := context.Background()
	locks := databases.NewSchedulerLockDatabase(memdb.New())

	ok, err := locks.TryAcquireLock(ctx, "digest", "web.1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locks.TryAcquireLock(ctx, "digest", "web.2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "held by web.1")

	ok, err = locks.TryAcquireLock(ctx, "digest", "web.1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "owner may renew")

	require.NoError(t, locks.ReleaseLock(ctx, "digest", "web.2"))
	ok, err = locks.TryAcquireLock(ctx, "digest", "web.2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "release by a non owner is a no-op")

	require.NoError(t, locks.ReleaseLock(ctx, "digest", "web.1"))
	ok, err = locks.TryAcquireLock(ctx, "digest", "web.2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSchedulerLockExpiredLeaseIsTakenOver(t *testing.T) {
	ctx := context.Background()
	locks := databases.NewSchedulerLockDatabase(memdb.New())

	ok, err := locks.TryAcquireLock(ctx, "digest", "web.1", -time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = locks.TryAcquireLock(ctx, "digest", "web.2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
