package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/escala-acompanhantes/backend/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenStore builds the document store selected by STORAGE_BACKEND. The returned func releases it.
func OpenStore(cfg *config.Config) (DocumentStore, func(), error) {
	switch cfg.Storage.Backend {
	case "postgres":
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open does not connect
		if err := dbpool.PingContext(ctx); err != nil {
			dbpool.Close()
			return nil, nil, err
		}

		store := NewPostgresStore(dbpool, cfg.Storage.Document)
		if err := store.EnsureSchema(ctx); err != nil {
			dbpool.Close()
			return nil, nil, err
		}
		return store, func() { _ = dbpool.Close() }, nil
	default:
		store, err := NewFileStore(cfg.Storage.File)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

// OpenLocker builds the lock selected by LOCK_BACKEND.
func OpenLocker(cfg *config.Config) (Locker, func(), error) {
	if cfg.Lock.Backend != "redis" {
		return NewMemoryLocker(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	locker := NewRedisLocker(
		rdb,
		cfg.Lock.Key,
		time.Duration(cfg.Lock.TTL)*time.Second,
		time.Duration(cfg.Lock.RetryInterval)*time.Millisecond,
	)
	return locker, func() { _ = rdb.Close() }, nil
}
