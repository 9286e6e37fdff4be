// File: services/concierge/store_redis.go
package concierge

import (
	"context"
	"encoding/json"
	"time"

	"guestdesk/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "concierge:session:"

// RedisSessionStore keeps sessions in Redis with a TTL refreshed on every
// write, so idle conversations expire on their own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, key string, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, sessionKeyPrefix+key).Err()
}
