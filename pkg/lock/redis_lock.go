package lock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"boardfarm/pkg/logger"
)

const (
	lockTTL            = 30 * time.Second // lock TTL, guards against dead holders
	lockAcquireTimeout = 5 * time.Second
	lockRenewInterval  = 10 * time.Second
)

// releaseScript deletes the key only when it still holds our value, so one
// instance can never release a lock taken over by another.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// DistributedLock serializes a background job across service replicas.
type DistributedLock interface {
	// TryLock attempts to take the lock without blocking
	TryLock(ctx context.Context) (bool, error)

	// Unlock releases the lock
	Unlock(ctx context.Context) error

	// IsHeld reports whether this instance currently holds the lock
	IsHeld() bool
}

// RedisDistributedLock implements DistributedLock with Redis SET NX EX.
// With a nil client it degrades to single-instance mode: TryLock always
// succeeds locally.
type RedisDistributedLock struct {
	client    *redis.Client
	lockKey   string
	lockValue string // unique per instance, prevents releasing another holder's lock

	mu         sync.Mutex
	isHeld     bool
	acquiredAt time.Time
	stopRenew  chan struct{}
}

// NewRedisDistributedLock creates a Redis-backed distributed lock for the
// given key (e.g. "retention:pcstats-lock").
func NewRedisDistributedLock(client *redis.Client, lockKey string) *RedisDistributedLock {
	return &RedisDistributedLock{
		client:    client,
		lockKey:   lockKey,
		lockValue: fmt.Sprintf("%s-%d-%d", lockKey, time.Now().UnixNano(), rand.Int63()),
	}
}

// TryLock attempts to take the lock with a short timeout
func (l *RedisDistributedLock) TryLock(ctx context.Context) (bool, error) {
	if l.client == nil {
		logger.Warn("redis client is nil, skipping distributed lock (running in single-instance mode)")
		l.mu.Lock()
		l.isHeld = true
		l.mu.Unlock()
		return true, nil
	}

	acquireCtx, cancel := context.WithTimeout(ctx, lockAcquireTimeout)
	defer cancel()

	acquired, err := l.client.SetNX(acquireCtx, l.lockKey, l.lockValue, lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		logger.DebugCtx(ctx, "lock %s already held by another instance", l.lockKey)
		return false, nil
	}

	l.mu.Lock()
	l.isHeld = true
	l.acquiredAt = time.Now()
	l.stopRenew = make(chan struct{})
	stop := l.stopRenew
	l.mu.Unlock()

	go l.renewLoop(ctx, stop)

	logger.DebugCtx(ctx, "lock %s acquired", l.lockKey)
	return true, nil
}

// Unlock releases the lock
func (l *RedisDistributedLock) Unlock(ctx context.Context) error {
	l.mu.Lock()
	if !l.isHeld {
		l.mu.Unlock()
		return nil
	}
	l.isHeld = false
	if l.stopRenew != nil {
		close(l.stopRenew)
		l.stopRenew = nil
	}
	l.mu.Unlock()

	if l.client == nil {
		return nil
	}

	if err := l.client.Eval(ctx, releaseScript, []string{l.lockKey}, l.lockValue).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// IsHeld reports whether this instance currently holds the lock
func (l *RedisDistributedLock) IsHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isHeld
}

// renewLoop extends the TTL while the job is still running
func (l *RedisDistributedLock) renewLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(lockRenewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := l.client.Expire(ctx, l.lockKey, lockTTL).Result()
			if err != nil || !ok {
				logger.WarnCtx(ctx, "failed to renew lock %s: %v", l.lockKey, err)
				return
			}
		}
	}
}
