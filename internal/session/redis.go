package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reserveaqui/webgateway/internal/domain"
)

const defaultConnectTimeout = 5 * time.Second

// ConnectConfig captures the settings for establishing a Redis connection.
type ConnectConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg ConnectConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore persists session state in Redis under
// session:<sid>:<field> keys, each expiring after the session TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. ttl bounds how long an idle session
// survives; every write renews it.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sid, field string) string {
	return fmt.Sprintf("session:%s:%s", sid, field)
}

func (s *RedisStore) Tokens(ctx context.Context, sid string) (TokenPair, error) {
	vals, err := s.client.MGet(ctx, s.key(sid, fieldAccessToken), s.key(sid, fieldRefreshToken)).Result()
	if err != nil {
		return TokenPair{}, fmt.Errorf("read tokens: %w", err)
	}

	access, _ := vals[0].(string)
	refresh, _ := vals[1].(string)

	if access == "" && refresh == "" {
		return TokenPair{}, domain.ErrNoSession
	}
	if access == "" || refresh == "" {
		// Partial pair: treat as absent and purge the leftover.
		_ = s.Purge(ctx, sid)
		return TokenPair{}, domain.ErrNoSession
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *RedisStore) SaveTokens(ctx context.Context, sid string, pair TokenPair) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sid, fieldAccessToken), pair.Access, s.ttl)
	pipe.Set(ctx, s.key(sid, fieldRefreshToken), pair.Refresh, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) SetAccess(ctx context.Context, sid, access string) error {
	if err := s.client.Set(ctx, s.key(sid, fieldAccessToken), access, s.ttl).Err(); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	return nil
}

func (s *RedisStore) Purge(ctx context.Context, sid string) error {
	err := s.client.Del(ctx,
		s.key(sid, fieldAccessToken),
		s.key(sid, fieldRefreshToken),
		s.key(sid, fieldUser),
	).Err()
	if err != nil {
		return fmt.Errorf("purge session: %w", err)
	}
	return nil
}

func (s *RedisStore) User(ctx context.Context, sid string) (*domain.User, error) {
	raw, err := s.client.Get(ctx, s.key(sid, fieldUser)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached user: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// A corrupt cache entry is dropped, not surfaced; the manager will
		// re-resolve identity from the upstream.
		_ = s.client.Del(ctx, s.key(sid, fieldUser)).Err()
		return nil, nil
	}
	return &u, nil
}

func (s *RedisStore) SaveUser(ctx context.Context, sid string, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode cached user: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid, fieldUser), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cached user: %w", err)
	}
	return nil
}

func (s *RedisStore) LastError(ctx context.Context, sid string) (string, error) {
	msg, err := s.client.Get(ctx, s.key(sid, fieldError)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session error: %w", err)
	}
	return msg, nil
}

func (s *RedisStore) SaveLastError(ctx context.Context, sid, msg string) error {
	if err := s.client.Set(ctx, s.key(sid, fieldError), msg, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session error: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearLastError(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid, fieldError)).Err(); err != nil {
		return fmt.Errorf("clear session error: %w", err)
	}
	return nil
}
