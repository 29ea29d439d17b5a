package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in redis with a TTL, so sessions survive process
// restarts and expire on their own.
type RedisStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisStore connects to redis at addr and verifies the connection with a
// ping.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// Close releases the underlying redis client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Create opens a session for the member and returns its ID.
func (s *RedisStore) Create(ctx context.Context, memberID string) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        id,
		MemberID:  memberID,
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, redisKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set: %w", err)
	}
	return session, nil
}

// Get resolves a session ID.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
