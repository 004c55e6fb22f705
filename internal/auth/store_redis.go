package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"oscahub/internal/platform/redis"
	id "oscahub/pkg/domain"
	"oscahub/pkg/platform/sentinel"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore persists sessions in redis with a TTL matching the
// token lifetime, so expired sessions clean themselves up.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.ID.String(), payload, ttl).Err()
}

func (s *RedisSessionStore) FindByID(ctx context.Context, sessionID id.SessionID) (Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID.String()).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return Session{}, sentinel.ErrNotFound
		}
		return Session{}, err
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID.String()).Err()
}
