package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brndagencynl/HETT-sub001/internal/configurator"
	"github.com/brndagencynl/HETT-sub001/pkg/redis"
)

// ErrNotFound is returned when a session has no stored configuration
// (expired TTL or never started).
var ErrNotFound = errors.New("session not found")

// Store keeps the in-progress wizard configuration per session id in Redis.
// The core stays stateless; this is the only place the mutable draft lives
// between requests, and it expires with the session TTL.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

func (s *Store) Save(ctx context.Context, sessionID string, cfg configurator.Configuration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := s.redis.Set(ctx, stateKey(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (configurator.Configuration, error) {
	data, err := s.redis.Get(ctx, stateKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return configurator.Configuration{}, ErrNotFound
		}
		return configurator.Configuration{}, fmt.Errorf("failed to get session state: %w", err)
	}

	var cfg configurator.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return configurator.Configuration{}, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	// Sliding expiration: an active wizard keeps its draft alive. Best
	// effort; a failed refresh only shortens the session.
	_, _ = s.redis.Expire(ctx, stateKey(sessionID), s.ttl)

	return cfg, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, stateKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}

func stateKey(sessionID string) string {
	return fmt.Sprintf("wizard:%s", sessionID)
}
