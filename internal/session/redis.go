package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

type RedisStore struct {
	client           *redis.Client
	operationTimeout time.Duration
}

func NewRedisStore(client *redis.Client, operationTimeout time.Duration) *RedisStore {
	return &RedisStore{
		client:           client,
		operationTimeout: operationTimeout,
	}
}

func Key(id string) string {
	return fmt.Sprintf("session_%s", id)
}

func (s *RedisStore) Save(ctx context.Context, sess *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	return s.client.Set(ctx, Key(sess.ID), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	sess := &domain.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("反序列化会话失败: %w", err)
	}

	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	return s.client.Del(ctx, Key(id)).Err()
}
