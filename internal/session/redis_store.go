package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	refreshPrefix = "session:refresh:"
	revokedPrefix = "session:revoked:"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshPrefix+token, userID, ttl).Err()
}

func (s *RedisStore) TakeRefresh(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, refreshPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return userID, err
}

func (s *RedisStore) DeleteRefresh(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshPrefix+token).Err()
}

func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, revokedPrefix+jti, 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ Store = (*RedisStore)(nil)
