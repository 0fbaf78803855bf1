package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHooks struct {
	DefaultHooks
}

func testCreds(host string) Credentials {
	return Credentials{Host: host, Port: 22, Username: "admin", DeviceType: "generic"}
}

// countingFactory builds a bare BaseSession (never actually dialed) and
// counts how many times it was called, mirroring the teacher's
// countingSessionFactory pattern for pool unit tests.
func countingFactory(counter *int32) SessionFactory {
	return func(ctx context.Context, creds Credentials, opts AdvancedOptions) (*BaseSession, error) {
		atomic.AddInt32(counter, 1)
		return NewBaseSession(creds, opts, fakeHooks{}), nil
	}
}

func TestDefaultPoolConfig_IdleTimeoutIsTenMinutes(t *testing.T) {
	assert.Equal(t, 10*time.Minute, DefaultPoolConfig().IdleTimeout)
}

func TestPool_AcquireCreatesOnlyOnceForSameKey(t *testing.T) {
	var created int32
	pool := NewPool(countingFactory(&created), DefaultPoolConfig(), WithoutReaper())

	creds := testCreds("10.0.0.1")
	entry, err := pool.Acquire(context.Background(), creds, AdvancedOptions{})
	require.NoError(t, err)
	require.NotNil(t, entry)
	pool.Release(entry)

	entry2, err := pool.Acquire(context.Background(), creds, AdvancedOptions{})
	require.NoError(t, err)
	assert.Same(t, entry, entry2, "second acquire for the same key should reuse the entry")
	assert.Equal(t, int32(1), atomic.LoadInt32(&created))
}

func TestPool_AcquireDifferentKeysCreateDistinctEntries(t *testing.T) {
	var created int32
	pool := NewPool(countingFactory(&created), DefaultPoolConfig(), WithoutReaper())

	e1, err := pool.Acquire(context.Background(), testCreds("10.0.0.1"), AdvancedOptions{})
	require.NoError(t, err)
	e2, err := pool.Acquire(context.Background(), testCreds("10.0.0.2"), AdvancedOptions{})
	require.NoError(t, err)

	assert.NotSame(t, e1, e2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&created))
	assert.NotEqual(t, e1.ID(), e2.ID())
}

func TestPool_AcquireBusyEntryReturnsErrBusy(t *testing.T) {
	var created int32
	pool := NewPool(countingFactory(&created), DefaultPoolConfig(), WithoutReaper())

	creds := testCreds("10.0.0.1")
	_, err := pool.Acquire(context.Background(), creds, AdvancedOptions{})
	require.NoError(t, err)

	_, err = pool.Acquire(context.Background(), creds, AdvancedOptions{})
	assert.ErrorIs(t, err, ErrBusy)
}

func TestPool_ReleaseThenAcquireAgainSucceeds(t *testing.T) {
	pool := NewPool(countingFactory(new(int32)), DefaultPoolConfig(), WithoutReaper())
	creds := testCreds("10.0.0.1")

	entry, err := pool.Acquire(context.Background(), creds, AdvancedOptions{})
	require.NoError(t, err)
	pool.Release(entry)

	_, err = pool.Acquire(context.Background(), creds, AdvancedOptions{})
	assert.NoError(t, err)
}

func TestPool_DiscardRemovesEntry(t *testing.T) {
	var created int32
	pool := NewPool(countingFactory(&created), DefaultPoolConfig(), WithoutReaper())
	creds := testCreds("10.0.0.1")

	entry, err := pool.Acquire(context.Background(), creds, AdvancedOptions{})
	require.NoError(t, err)
	pool.Discard(context.Background(), entry)

	_, err = pool.Acquire(context.Background(), creds, AdvancedOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&created), "discard should force a fresh session on next acquire")
}

func TestPool_Stats(t *testing.T) {
	pool := NewPool(countingFactory(new(int32)), DefaultPoolConfig(), WithoutReaper())

	_, err := pool.Acquire(context.Background(), testCreds("10.0.0.1"), AdvancedOptions{})
	require.NoError(t, err)
	entry2, err := pool.Acquire(context.Background(), testCreds("10.0.0.2"), AdvancedOptions{})
	require.NoError(t, err)
	pool.Release(entry2)

	stats := pool.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.InUse)
}

func TestPool_ForceCleanupClosesEverythingAndRejectsNewAcquires(t *testing.T) {
	pool := NewPool(countingFactory(new(int32)), DefaultPoolConfig(), WithoutReaper())
	_, err := pool.Acquire(context.Background(), testCreds("10.0.0.1"), AdvancedOptions{})
	require.NoError(t, err)

	pool.ForceCleanup()

	_, err = pool.Acquire(context.Background(), testCreds("10.0.0.2"), AdvancedOptions{})
	assert.Error(t, err)
}

func TestPool_ReapEvictsIdleEntries(t *testing.T) {
	cfg := PoolConfig{IdleTimeout: 1 * time.Millisecond, AcquireTimeout: time.Second, ReapInterval: time.Hour}
	pool := NewPool(countingFactory(new(int32)), cfg, WithoutReaper())

	entry, err := pool.Acquire(context.Background(), testCreds("10.0.0.1"), AdvancedOptions{})
	require.NoError(t, err)
	pool.Release(entry)
	time.Sleep(5 * time.Millisecond)

	assert.False(t, pool.reap(), "reap should not report closed on a normal pass")
	assert.Equal(t, 0, pool.Stats().Total, "idle entry past IdleTimeout should have been reaped")
}
