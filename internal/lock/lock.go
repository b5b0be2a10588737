// Package lock provides the cross-process output-file lock
// (SPEC_FULL §5.6): a single task-path run must hold exclusive access
// while it writes a decision file, so concurrent runs for the same
// symbol/expiration don't interleave writes. Grounded on
// sawpanic-cryptorun/internal/infrastructure/db's CacheSection/Redis
// config shape (Addr/DB/TLS naming) for the config fields; no file in
// the pack actually constructs a redis.Client, so the Redis-backed
// implementation itself follows go-redis/v9's documented SET-NX-PX
// lock idiom directly.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/foreverwb/volquant/internal/config"
)

// Locker is the narrow interface the pipeline needs: acquire a named
// lock for a bounded TTL; the returned Handle releases it.
type Locker interface {
	Acquire(ctx context.Context, name string) (Handle, error)
}

// Handle releases a previously acquired lock. Release is idempotent;
// calling it twice, or after the TTL has already expired, is not an
// error.
type Handle interface {
	Release(ctx context.Context) error
}

// New picks RedisLock when cfg.Addr is set, otherwise LocalLock.
func New(cfg config.LockConfig) Locker {
	if cfg.Addr == "" {
		return NewLocalLock()
	}
	return NewRedisLock(cfg)
}

// RedisLock implements Locker with Redis SET NX PX, so multiple engine
// processes (or hosts) contend for the same named lock correctly.
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLock does not dial cfg.Addr; go-redis connects lazily on
// first command, so this never blocks or fails at construction time.
func NewRedisLock(cfg config.LockConfig) *RedisLock {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLock{client: client, ttl: ttl}
}

type redisHandle struct {
	client *redis.Client
	key    string
	token  string
}

// Acquire blocks until the named lock is free or ctx is cancelled,
// polling with a short backoff since go-redis has no native blocking
// SET NX.
func (l *RedisLock) Acquire(ctx context.Context, name string) (Handle, error) {
	key := lockKey(name)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock acquire %s: %w", name, err)
		}
		if ok {
			return &redisHandle{client: l.client, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("redis lock acquire %s: %w", name, ctx.Err())
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// releaseScript deletes the key only if its value still matches the
// token this handle acquired, so a handle can never release a lock
// another holder has since taken after TTL expiry.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

func (h *redisHandle) Release(ctx context.Context) error {
	if err := h.client.Eval(ctx, releaseScript, []string{h.key}, h.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("redis lock release %s: %w", h.key, err)
	}
	return nil
}

func lockKey(name string) string {
	return "volquant:lock:" + name
}

// LocalLock implements Locker with an in-process mutex-per-name, used
// when no Redis address is configured (single-process deployments).
type LocalLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLock builds an empty LocalLock.
func NewLocalLock() *LocalLock {
	return &LocalLock{locks: make(map[string]*sync.Mutex)}
}

type localHandle struct {
	mu *sync.Mutex
}

// Acquire blocks on the named in-process mutex, or returns early if
// ctx is cancelled first.
func (l *LocalLock) Acquire(ctx context.Context, name string) (Handle, error) {
	mu := l.namedMutex(name)

	done := make(chan struct{})
	go func() {
		mu.Lock()
		close(done)
	}()

	select {
	case <-done:
		return &localHandle{mu: mu}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("local lock acquire %s: %w", name, ctx.Err())
	}
}

func (l *LocalLock) namedMutex(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	mu, ok := l.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[name] = mu
	}
	return mu
}

func (h *localHandle) Release(ctx context.Context) error {
	if h.mu == nil {
		return nil
	}
	mu := h.mu
	h.mu = nil
	mu.Unlock()
	return nil
}
