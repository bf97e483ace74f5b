package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const sessionKeyPrefix = "variant:session:"

// RedisSessionStore implements the edit session store on Redis so sessions
// survive restarts and can be resumed on any node. Sessions are stored as
// JSON snapshots under "variant:session:<id>" with a sliding TTL: every
// Get and Put refreshes the expiry.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store with its own Redis client
func NewRedisSessionStore(cfg *config.RedisConfig, ttl time.Duration) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, ttl), nil
}

// NewRedisSessionStoreWithClient creates a store with an existing Redis client
func NewRedisSessionStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get returns the session with the given ID. A missing key, a snapshot that
// fails to decode, or a tenant mismatch all surface as ErrSessionNotFound.
func (s *RedisSessionStore) Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*catalog.EditSession, error) {
	key := sessionKeyPrefix + sessionID.String()

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session catalog.EditSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, shared.ErrSessionNotFound
	}
	if session.TenantID != tenantID {
		return nil, shared.ErrSessionNotFound
	}

	// Sliding expiry: an active edit keeps its session alive.
	s.client.Expire(ctx, key, s.ttl)

	return &session, nil
}

// Put stores or replaces a session snapshot
func (s *RedisSessionStore) Put(ctx context.Context, session *catalog.EditSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	key := sessionKeyPrefix + session.ID.String()
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session; deleting a missing session is a no-op
func (s *RedisSessionStore) Delete(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	// Load first so a foreign tenant cannot delete the session.
	if _, err := s.Get(ctx, tenantID, sessionID); err != nil {
		if errors.Is(err, shared.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	key := sessionKeyPrefix + sessionID.String()
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ appcatalog.SessionStore = (*RedisSessionStore)(nil)
