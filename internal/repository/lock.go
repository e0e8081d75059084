package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("o documento está ocupado, tente novamente")

// Locker grants exclusive access to the document. The returned func releases it and
// is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context) (func(), error)
}

type MemoryLocker struct {
	sem chan struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{sem: make(chan struct{}, 1)}
}

func (l *MemoryLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-l.sem }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
	}
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes writers across processes with a single SET NX key. The key
// expires after ttl so a crashed holder cannot block the household forever.
type RedisLocker struct {
	rdb           *redis.Client
	key           string
	ttl           time.Duration
	retryInterval time.Duration
}

func NewRedisLocker(rdb *redis.Client, key string, ttl, retryInterval time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:           rdb,
		key:           key,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

func (l *RedisLocker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
			}
			return nil, err
		}
		if ok {
			var once sync.Once
			return func() { once.Do(func() { l.release(token) }) }, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
		}
	}
}

func (l *RedisLocker) release(token string) {
	// the caller's context may already be done, release on our own deadline
	ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
	defer cancel()

	if err := releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Err(); err != nil {
		slog.Error("falha ao liberar o lock do documento", slog.String("key", l.key), slog.String("error", err.Error()))
	}
}
