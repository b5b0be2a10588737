package lock

import (
	"context"
	"testing"
	"time"

	"github.com/foreverwb/volquant/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrReturnsLocalLock(t *testing.T) {
	l := New(config.LockConfig{})
	_, ok := l.(*LocalLock)
	assert.True(t, ok)
}

func TestNew_AddrSetReturnsRedisLock(t *testing.T) {
	l := New(config.LockConfig{Addr: "localhost:6379"})
	_, ok := l.(*RedisLock)
	assert.True(t, ok)
}

func TestLocalLock_AcquireAndRelease(t *testing.T) {
	l := NewLocalLock()
	ctx := context.Background()

	h, err := l.Acquire(ctx, "report/SPX/2026-08-21")
	require.NoError(t, err)
	require.NoError(t, h.Release(ctx))
}

func TestLocalLock_SecondAcquireBlocksUntilFirstReleases(t *testing.T) {
	l := NewLocalLock()
	ctx := context.Background()

	h1, err := l.Acquire(ctx, "same-name")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		h2, err := l.Acquire(context.Background(), "same-name")
		require.NoError(t, err)
		close(acquired)
		_ = h2.Release(context.Background())
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire should not have returned before first Release")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, h1.Release(ctx))

	select {
	case <-acquired:
	case <-time.After(1 * time.Second):
		t.Fatal("second Acquire should have proceeded after Release")
	}
}

func TestLocalLock_AcquireRespectsContextCancellation(t *testing.T) {
	l := NewLocalLock()
	h1, err := l.Acquire(context.Background(), "ctx-name")
	require.NoError(t, err)
	defer h1.Release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "ctx-name")
	require.Error(t, err)
}

func TestRedisLock_AcquireSucceedsOnFirstSetNX(t *testing.T) {
	db, mock := redismock.NewClientMock()
	rl := &RedisLock{client: db, ttl: 30 * time.Second}

	mock.Regexp().ExpectSetNX("volquant:lock:report/SPX", `.+`, 30*time.Second).SetVal(true)

	h, err := rl.Acquire(context.Background(), "report/SPX")
	require.NoError(t, err)
	assert.NotNil(t, h)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_AcquireRetriesWhenAlreadyHeld(t *testing.T) {
	db, mock := redismock.NewClientMock()
	rl := &RedisLock{client: db, ttl: 30 * time.Second}

	mock.Regexp().ExpectSetNX("volquant:lock:busy", `.+`, 30*time.Second).SetVal(false)
	mock.Regexp().ExpectSetNX("volquant:lock:busy", `.+`, 30*time.Second).SetVal(true)

	h, err := rl.Acquire(context.Background(), "busy")
	require.NoError(t, err)
	assert.NotNil(t, h)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_ReleaseRunsCompareAndDeleteScript(t *testing.T) {
	db, mock := redismock.NewClientMock()
	rl := &RedisLock{client: db, ttl: 30 * time.Second}

	mock.Regexp().ExpectSetNX("volquant:lock:release-me", `.+`, 30*time.Second).SetVal(true)
	h, err := rl.Acquire(context.Background(), "release-me")
	require.NoError(t, err)

	mock.Regexp().ExpectEval(releaseScript, []string{"volquant:lock:release-me"}, `.+`).SetVal(int64(1))

	require.NoError(t, h.Release(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockKey_PrefixesName(t *testing.T) {
	assert.Equal(t, "volquant:lock:foo", lockKey("foo"))
}
