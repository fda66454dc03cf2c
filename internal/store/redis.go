package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/sheetquiz/internal/quiz"
)

// RedisStore keeps snapshots under session:<id>:quiz_state with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *RedisStore) Close() error { return s.rdb.Close() }

func sessionKey(id string) string { return fmt.Sprintf("session:%s:quiz_state", id) }

func (s *RedisStore) Get(ctx context.Context, id string) (quiz.State, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return quiz.State{}, ErrNotFound
		}
		return quiz.State{}, err
	}
	var st quiz.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return quiz.State{}, err
	}
	return st, nil
}

func (s *RedisStore) Put(ctx context.Context, id string, st quiz.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(id), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}
